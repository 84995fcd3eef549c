package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/MisticalPy/solution-to-combat-burnout/internal/entity"
)

// EmployeeRepository defines the interface for employee persistence
type EmployeeRepository interface {
	InsertMany(ctx context.Context, employees []entity.Employee) (succeeded, failed int)
	FindByName(ctx context.Context, query string) ([]entity.Employee, error)
	CountEmployees(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}

// DB is the subset of pgxpool.Pool the repository uses. Narrowed for tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

var _ EmployeeRepository = &EmployeePostgres{}

// EmployeePostgres implements EmployeeRepository using PostgreSQL
type EmployeePostgres struct {
	db DB
}

func NewEmployeePostgres(db DB) *EmployeePostgres {
	return &EmployeePostgres{db: db}
}

const insertEmployeeSQL = `
INSERT INTO employees (
    fio, legal_entity, gender, city, position, experience, age, subordinates,
    june_performance, july_performance, august_performance,
    september_performance, october_performance,
    certification, training, last_vacation,
    sick_leave_2025, reprimand, corporate_activities, notes,
    created_at, updated_at
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8,
    $9, $10, $11, $12, $13,
    $14, $15, $16,
    $17, $18, $19, $20,
    NOW(), NOW()
)`

const selectEmployeeColumns = `
    id, fio, legal_entity, gender, city, position, experience, age, subordinates,
    june_performance, july_performance, august_performance,
    september_performance, october_performance,
    certification, training, last_vacation,
    sick_leave_2025, reprimand, corporate_activities, notes,
    created_at, updated_at`

// InsertMany inserts each record in its own implicit transaction. A failing
// row is logged and counted; the rest of the batch continues.
func (r *EmployeePostgres) InsertMany(ctx context.Context, employees []entity.Employee) (succeeded, failed int) {
	for i, emp := range employees {
		if err := r.insertOne(ctx, &emp); err != nil {
			failed++
			ctxzap.Error(ctx, "employee insert failed",
				zap.Error(err),
				zap.String("fio", emp.FIO),
				zap.Int("row", i+1),
			)
			continue
		}
		succeeded++

		if (i+1)%10 == 0 {
			ctxzap.Info(ctx, "bulk insert progress",
				zap.Int("processed", i+1),
				zap.Int("total", len(employees)),
			)
		}
	}

	ctxzap.Info(ctx, "bulk insert finished",
		zap.Int("succeeded", succeeded),
		zap.Int("failed", failed),
	)

	return succeeded, failed
}

func (r *EmployeePostgres) insertOne(ctx context.Context, emp *entity.Employee) error {
	if emp.FIO == "" {
		return entity.ErrEmptyFIO
	}

	_, err := r.db.Exec(ctx, insertEmployeeSQL,
		emp.FIO, emp.LegalEntity, emp.Gender, emp.City, emp.Position,
		emp.Experience, emp.Age, emp.Subordinates,
		emp.JunePerformance, emp.JulyPerformance, emp.AugustPerformance,
		emp.SeptemberPerformance, emp.OctoberPerformance,
		emp.Certification, emp.Training, emp.LastVacation,
		emp.SickLeave2025, emp.Reprimand, emp.CorporateActivities, emp.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert employee: %w", err)
	}

	return nil
}

// FindByName does a fuzzy, case-insensitive substring match against fio.
// A single-token query matches any record containing the token. A multi-token
// query is split into the first token and the joined rest; the record must
// contain both substrings in any order. Deliberately a loose heuristic, not
// a name parser.
func (r *EmployeePostgres) FindByName(ctx context.Context, query string) ([]entity.Employee, error) {
	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return nil, nil
	}

	var (
		sql  string
		args []any
	)

	if len(tokens) == 1 {
		sql = `SELECT` + selectEmployeeColumns + `
FROM employees WHERE fio ILIKE '%' || $1 || '%' ORDER BY id`
		args = []any{tokens[0]}
	} else {
		first := tokens[0]
		rest := strings.Join(tokens[1:], " ")
		sql = `SELECT` + selectEmployeeColumns + `
FROM employees WHERE fio ILIKE '%' || $1 || '%' AND fio ILIKE '%' || $2 || '%' ORDER BY id`
		args = []any{first, rest}
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("find employees by name: %w", err)
	}
	defer rows.Close()

	var employees []entity.Employee
	for rows.Next() {
		var emp entity.Employee
		if err := rows.Scan(
			&emp.ID, &emp.FIO, &emp.LegalEntity, &emp.Gender, &emp.City,
			&emp.Position, &emp.Experience, &emp.Age, &emp.Subordinates,
			&emp.JunePerformance, &emp.JulyPerformance, &emp.AugustPerformance,
			&emp.SeptemberPerformance, &emp.OctoberPerformance,
			&emp.Certification, &emp.Training, &emp.LastVacation,
			&emp.SickLeave2025, &emp.Reprimand, &emp.CorporateActivities, &emp.Notes,
			&emp.CreatedAt, &emp.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan employee row: %w", err)
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employee rows: %w", err)
	}

	return employees, nil
}

// CountEmployees returns the total number of stored records.
func (r *EmployeePostgres) CountEmployees(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count employees: %w", err)
	}
	return count, nil
}

// Ping verifies the store is reachable before an ingestion run.
func (r *EmployeePostgres) Ping(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", entity.ErrStoreUnavailable, err)
	}
	return nil
}
