package employee

import (
	"github.com/MisticalPy/solution-to-combat-burnout/internal/entity"
)

// EmployeeResponse is the wire representation of an employee record.
type EmployeeResponse struct {
	ID          int64   `json:"id"`
	FIO         string  `json:"fio"`
	LegalEntity *string `json:"legal_entity,omitempty"`
	Gender      *string `json:"gender,omitempty"`
	City        *string `json:"city,omitempty"`
	Position    *string `json:"position,omitempty"`
	Experience  *string `json:"experience,omitempty"`
	Age         *int    `json:"age,omitempty"`
}

// ListResponse wraps a search result.
type ListResponse struct {
	Employees []EmployeeResponse `json:"employees"`
	Total     int                `json:"total"`
}

func toResponse(emp entity.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:          emp.ID,
		FIO:         emp.FIO,
		LegalEntity: emp.LegalEntity,
		Gender:      emp.Gender,
		City:        emp.City,
		Position:    emp.Position,
		Experience:  emp.Experience,
		Age:         emp.Age,
	}
}

func toListResponse(employees []entity.Employee) ListResponse {
	out := make([]EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		out = append(out, toResponse(emp))
	}
	return ListResponse{Employees: out, Total: len(out)}
}
