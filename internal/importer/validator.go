package importer

import "fmt"

// FieldValidator checks one field of a mapped row. A non-nil error marks
// the row invalid; the error message is reported to the caller verbatim.
type FieldValidator func(value Cell, row MappedRow) error

// InvalidRow is one rejected row with its original position and reasons
type InvalidRow struct {
	RowIndex int       `json:"row_index"`
	Data     MappedRow `json:"data"`
	Errors   []string  `json:"errors"`
}

// ValidationResult partitions a batch into valid and invalid rows
type ValidationResult struct {
	Valid       bool         `json:"valid"`
	Message     string       `json:"message"`
	ValidRows   []MappedRow  `json:"valid_rows"`
	InvalidRows []InvalidRow `json:"invalid_rows"`
}

// Validate checks every mapped row against the required-field list and
// the per-field validators. Rows are never mutated; both partitions keep
// the original order, and invalid rows carry their original index. An
// empty batch is itself invalid: importing an empty file must surface as
// a hard failure, not a silent success.
func Validate(rows []MappedRow, required []string, validators map[string]FieldValidator) ValidationResult {
	result := ValidationResult{
		ValidRows:   []MappedRow{},
		InvalidRows: []InvalidRow{},
	}

	if len(rows) == 0 {
		result.Message = "No data to validate"
		return result
	}

	for i, row := range rows {
		var errs []string

		for _, field := range required {
			value, ok := row[field]
			if !ok || value.IsEmpty() {
				errs = append(errs, fmt.Sprintf("Missing required field: %s", field))
			}
		}

		for field, validate := range validators {
			if err := validate(row[field], row); err != nil {
				errs = append(errs, err.Error())
			}
		}

		if len(errs) > 0 {
			result.InvalidRows = append(result.InvalidRows, InvalidRow{
				RowIndex: i,
				Data:     row,
				Errors:   errs,
			})
		} else {
			result.ValidRows = append(result.ValidRows, row)
		}
	}

	result.Valid = len(result.InvalidRows) == 0
	if result.Valid {
		result.Message = fmt.Sprintf("All %d rows are valid", len(rows))
	} else {
		result.Message = fmt.Sprintf("%d of %d rows failed validation", len(result.InvalidRows), len(rows))
	}

	return result
}
