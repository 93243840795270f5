package normalizer

import (
	"fmt"
	"strings"

	"github.com/unidoc/unioffice/spreadsheet"
)

// extractXLSX reads the first sheet only: each row becomes one line of
// comma-joined cell values, rows joined by newlines. Embedded commas
// are not escaped; this is a known lossy conversion kept for
// compatibility with existing consumers.
func (n *Normalizer) extractXLSX(path string) (string, error) {
	wb, err := spreadsheet.Open(path)
	if err != nil {
		return "", fmt.Errorf("open xlsx: %w", err)
	}
	defer wb.Close()

	sheets := wb.Sheets()
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook has no sheets")
	}

	var lines []string
	for _, row := range sheets[0].Rows() {
		cells := row.Cells()
		values := make([]string, 0, len(cells))
		for _, cell := range cells {
			values = append(values, cell.GetFormattedValue())
		}
		lines = append(lines, strings.Join(values, ","))
	}

	return strings.Join(lines, "\n"), nil
}
