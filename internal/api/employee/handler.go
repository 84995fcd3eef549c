package employee

import (
	"net/http"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/MisticalPy/solution-to-combat-burnout/internal/pkg/logger"
	"github.com/MisticalPy/solution-to-combat-burnout/internal/pkg/response"
)

type Handler struct {
	repo EmployeeRepository
}

func NewHandler(repo EmployeeRepository) *Handler {
	return &Handler{repo: repo}
}

// SearchEmployees handles GET /employees?query=<name>
func (h *Handler) SearchEmployees(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SearchEmployees")

	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		response.Error(w, http.StatusBadRequest, "query parameter is required")
		return
	}

	employees, err := h.repo.FindByName(ctx, query)
	if err != nil {
		ctxzap.Error(ctx, "employee search failed",
			zap.Error(err),
			zap.String("query", query),
		)
		response.Error(w, http.StatusInternalServerError, "search failed")
		return
	}

	ctxzap.Info(ctx, "employee search done",
		zap.String("query", query),
		zap.Int("found", len(employees)),
	)

	response.Success(w, toListResponse(employees))
}

// CountEmployees handles GET /employees/count
func (h *Handler) CountEmployees(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CountEmployees")

	count, err := h.repo.CountEmployees(ctx)
	if err != nil {
		ctxzap.Error(ctx, "employee count failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "count failed")
		return
	}

	response.Success(w, map[string]int64{"count": count})
}
