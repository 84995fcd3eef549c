package employee

import (
	"context"

	"github.com/MisticalPy/solution-to-combat-burnout/internal/entity"
)

// EmployeeRepository is the read-only slice of the store the API needs.
type EmployeeRepository interface {
	FindByName(ctx context.Context, query string) ([]entity.Employee, error)
	CountEmployees(ctx context.Context) (int64, error)
}
