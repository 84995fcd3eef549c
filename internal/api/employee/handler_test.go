package employee

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MisticalPy/solution-to-combat-burnout/internal/entity"
)

type fakeRepo struct {
	employees []entity.Employee
	findErr   error
	count     int64
	lastQuery string
}

func (f *fakeRepo) FindByName(_ context.Context, query string) ([]entity.Employee, error) {
	f.lastQuery = query
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.employees, nil
}

func (f *fakeRepo) CountEmployees(_ context.Context) (int64, error) {
	return f.count, nil
}

func newTestRouter(repo *fakeRepo) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(repo))
	return r
}

func strPtr(s string) *string { return &s }

func TestSearchEmployees(t *testing.T) {
	repo := &fakeRepo{employees: []entity.Employee{
		{ID: 1, FIO: "Иванов Иван", City: strPtr("Москва")},
	}}
	router := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/employees?query=Иванов+Иван", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Иванов Иван", repo.lastQuery)

	var resp ListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "Иванов Иван", resp.Employees[0].FIO)
	require.NotNil(t, resp.Employees[0].City)
	assert.Equal(t, "Москва", *resp.Employees[0].City)
}

func TestSearchEmployeesRequiresQuery(t *testing.T) {
	router := newTestRouter(&fakeRepo{})

	req := httptest.NewRequest(http.MethodGet, "/employees", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchEmployeesRepositoryFailure(t *testing.T) {
	router := newTestRouter(&fakeRepo{findErr: errors.New("connection refused")})

	req := httptest.NewRequest(http.MethodGet, "/employees?query=Иванов", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCountEmployees(t *testing.T) {
	router := newTestRouter(&fakeRepo{count: 7})

	req := httptest.NewRequest(http.MethodGet, "/employees/count", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]int64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp["count"])
}
