package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
)

// ValidationResult distinguishes hard failures (unparseable input) from
// warnings about individual records. Warnings never block an import.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// parseCSV reads a header row plus data rows. Rows whose field count differs
// from the header are dropped without comment, matching how partially
// corrupted files are expected to behave.
func parseCSV(content []byte) ([]string, [][]string, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: missing header row: %v", ErrInvalidImport, err)
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidImport, err)
		}
		if len(row) != len(header) {
			continue
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

func validateBundle(bundle Bundle) []string {
	var warnings []string

	for i, t := range bundle.Transactions {
		if !t.Type.IsValid() {
			warnings = append(warnings, fmt.Sprintf("transaction %d: unrecognized type %q", i+1, t.Type))
		}
		if t.Amount.IsZero() {
			warnings = append(warnings, fmt.Sprintf("transaction %d: missing or zero amount", i+1))
		}
		if t.Date.IsZero() {
			warnings = append(warnings, fmt.Sprintf("transaction %d: missing date", i+1))
		}
	}

	for i, c := range bundle.Categories {
		if c.Name == "" {
			warnings = append(warnings, fmt.Sprintf("category %d: missing name", i+1))
		}
		if !c.Type.IsValid() {
			warnings = append(warnings, fmt.Sprintf("category %d: unrecognized type %q", i+1, c.Type))
		}
	}

	for i, b := range bundle.Budgets {
		if b.Amount.IsZero() {
			warnings = append(warnings, fmt.Sprintf("budget %d: missing or zero amount", i+1))
		}
		if !b.Period.IsValid() {
			warnings = append(warnings, fmt.Sprintf("budget %d: unrecognized period %q", i+1, b.Period))
		}
	}

	return warnings
}
