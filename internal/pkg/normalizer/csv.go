package normalizer

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
)

// extractCSV parses delimited text with the first row as field names
// and re-serializes the records as an indented JSON dump, one object
// per data row.
func (n *Normalizer) extractCSV(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("parse csv: %w", err)
	}

	if len(records) == 0 {
		return "[]", nil
	}

	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}

	dump, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize csv records: %w", err)
	}

	return string(dump), nil
}
