package excel

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/unidoc/unioffice/spreadsheet"
	"go.uber.org/zap"

	"github.com/MisticalPy/solution-to-combat-burnout/internal/entity"
)

// Reader loads employee records from an xlsx workbook. The first sheet is
// read, its first non-empty row is the header row; headers are matched
// against the fixed column mapping.
type Reader struct {
	path string
}

func NewReader(path string) *Reader {
	return &Reader{path: path}
}

// Read materializes the full record sequence from the workbook snapshot.
// Rows rejected by the mapper (blank, stray header) are dropped silently.
func (r *Reader) Read(ctx context.Context) ([]entity.Employee, error) {
	wb, err := spreadsheet.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", r.path, err)
	}
	defer wb.Close()

	sheets := wb.Sheets()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", r.path)
	}
	sheet := sheets[0]

	rows := sheet.Rows()
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet.Name())
	}

	var headers []string
	for _, cell := range rows[0].Cells() {
		headers = append(headers, cleanString(cell.GetFormattedValue()))
	}

	var employees []entity.Employee
	dropped := 0

	for _, row := range rows[1:] {
		values := make(map[string]string, len(headers))
		for i, cell := range row.Cells() {
			if i >= len(headers) {
				break
			}
			values[headers[i]] = cell.GetFormattedValue()
		}

		emp, ok := mapRow(headers, values)
		if !ok {
			dropped++
			continue
		}
		employees = append(employees, emp)
	}

	ctxzap.Info(ctx, "employee workbook read",
		zap.String("path", r.path),
		zap.Int("rows", len(employees)),
		zap.Int("dropped", dropped),
	)

	return employees, nil
}
