package survey

import (
	"context"

	"github.com/MisticalPy/solution-to-combat-burnout/internal/entity"
)

type AnalysisConnector interface {
	GenerateQuestions(ctx context.Context) ([]string, error)
	GenerateAnalysis(ctx context.Context, employeeSummary string) (string, error)
}

// DatasetReader loads the employee spreadsheet for lazy ingestion.
type DatasetReader interface {
	Read(ctx context.Context) ([]entity.Employee, error)
}
