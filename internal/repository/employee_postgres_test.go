package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MisticalPy/solution-to-combat-burnout/internal/entity"
)

type execCall struct {
	sql  string
	args []any
}

type fakeDB struct {
	execCalls []execCall
	execErrs  map[int]error // index of Exec call -> error to return

	queryCalls []execCall
	queryRows  *fakeRows
	queryErr   error

	countValue int64
	pingErr    error
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	idx := len(f.execCalls)
	f.execCalls = append(f.execCalls, execCall{sql: sql, args: args})
	if err, ok := f.execErrs[idx]; ok {
		return pgconn.CommandTag{}, err
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (f *fakeDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.queryCalls = append(f.queryCalls, execCall{sql: sql, args: args})
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	if f.queryRows == nil {
		return &fakeRows{}, nil
	}
	return f.queryRows, nil
}

func (f *fakeDB) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	return fakeRow{count: f.countValue}
}

func (f *fakeDB) Ping(_ context.Context) error {
	return f.pingErr
}

type fakeRow struct {
	count int64
}

func (r fakeRow) Scan(dest ...any) error {
	if p, ok := dest[0].(*int64); ok {
		*p = r.count
	}
	return nil
}

// fakeRows serves pre-built employees through the pgx.Rows interface.
type fakeRows struct {
	employees []entity.Employee
	pos       int
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	return r.pos < len(r.employees)
}

func (r *fakeRows) Scan(dest ...any) error {
	emp := r.employees[r.pos]
	r.pos++

	*(dest[0].(*int64)) = emp.ID
	*(dest[1].(*string)) = emp.FIO
	*(dest[2].(**string)) = emp.LegalEntity
	*(dest[3].(**string)) = emp.Gender
	*(dest[4].(**string)) = emp.City
	*(dest[5].(**string)) = emp.Position
	*(dest[6].(**string)) = emp.Experience
	*(dest[7].(**int)) = emp.Age
	*(dest[8].(**string)) = emp.Subordinates
	*(dest[9].(**string)) = emp.JunePerformance
	*(dest[10].(**string)) = emp.JulyPerformance
	*(dest[11].(**string)) = emp.AugustPerformance
	*(dest[12].(**string)) = emp.SeptemberPerformance
	*(dest[13].(**string)) = emp.OctoberPerformance
	*(dest[14].(**string)) = emp.Certification
	*(dest[15].(**string)) = emp.Training
	*(dest[16].(**string)) = emp.LastVacation
	*(dest[17].(*bool)) = emp.SickLeave2025
	*(dest[18].(*bool)) = emp.Reprimand
	*(dest[19].(*bool)) = emp.CorporateActivities
	*(dest[20].(**string)) = emp.Notes
	*(dest[21].(*time.Time)) = emp.CreatedAt
	*(dest[22].(*time.Time)) = emp.UpdatedAt
	return nil
}

func testCtx() context.Context {
	return ctxzap.ToContext(context.Background(), zap.NewNop())
}

func strPtr(s string) *string { return &s }

func TestInsertManyCountsFailuresWithoutAborting(t *testing.T) {
	db := &fakeDB{execErrs: map[int]error{1: errors.New("duplicate key")}}
	repo := NewEmployeePostgres(db)

	employees := []entity.Employee{
		{FIO: "Иванов Иван"},
		{FIO: "Петров Петр"},
		{FIO: "Сидорова Анна"},
	}

	succeeded, failed := repo.InsertMany(testCtx(), employees)

	assert.Equal(t, 2, succeeded)
	assert.Equal(t, 1, failed)
	assert.Len(t, db.execCalls, 3)
}

func TestInsertManySkipsEmptyFIO(t *testing.T) {
	db := &fakeDB{}
	repo := NewEmployeePostgres(db)

	succeeded, failed := repo.InsertMany(testCtx(), []entity.Employee{
		{FIO: ""},
		{FIO: "Иванов Иван"},
	})

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, failed)
	assert.Len(t, db.execCalls, 1, "empty fio must not reach the database")
}

func TestFindByNameSingleToken(t *testing.T) {
	db := &fakeDB{queryRows: &fakeRows{employees: []entity.Employee{
		{ID: 1, FIO: "Иванов Иван", City: strPtr("Москва")},
	}}}
	repo := NewEmployeePostgres(db)

	found, err := repo.FindByName(testCtx(), "Иванов")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Иванов Иван", found[0].FIO)

	require.Len(t, db.queryCalls, 1)
	assert.Equal(t, []any{"Иванов"}, db.queryCalls[0].args)
	assert.Equal(t, 1, strings.Count(db.queryCalls[0].sql, "ILIKE"))
}

func TestFindByNameSplitsMultiTokenQuery(t *testing.T) {
	db := &fakeDB{queryRows: &fakeRows{}}
	repo := NewEmployeePostgres(db)

	_, err := repo.FindByName(testCtx(), "Иванов Иван Иванович")
	require.NoError(t, err)

	require.Len(t, db.queryCalls, 1)
	assert.Equal(t, []any{"Иванов", "Иван Иванович"}, db.queryCalls[0].args)
	assert.Equal(t, 2, strings.Count(db.queryCalls[0].sql, "ILIKE"))
}

func TestFindByNameBlankQuery(t *testing.T) {
	db := &fakeDB{}
	repo := NewEmployeePostgres(db)

	found, err := repo.FindByName(testCtx(), "   ")
	require.NoError(t, err)
	assert.Empty(t, found)
	assert.Empty(t, db.queryCalls, "blank query must not hit the database")
}

func TestCountEmployees(t *testing.T) {
	db := &fakeDB{countValue: 42}
	repo := NewEmployeePostgres(db)

	count, err := repo.CountEmployees(testCtx())
	require.NoError(t, err)
	assert.Equal(t, int64(42), count)
}

func TestPingWrapsStoreUnavailable(t *testing.T) {
	db := &fakeDB{pingErr: errors.New("connection refused")}
	repo := NewEmployeePostgres(db)

	err := repo.Ping(testCtx())
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrStoreUnavailable)
}
