package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"salesreport-web/internal/logger"
)

// MapOptions designates fields that need type coercion after mapping
type MapOptions struct {
	DateFields    []string
	NumericFields []string
}

// MapToSchema applies a source-column to target-field mapping to every
// parsed row. Columns absent from the mapping are dropped, so unexpected
// input columns never reach the repository layer. Date fields are
// normalized to YYYY-MM-DD; an unparseable date keeps its original value
// and only logs a warning (the validator is the gate for bad dates).
// Numeric fields are coerced to float64 with 0 on failure.
func MapToSchema(rows []RawRow, mapping map[string]string, opts MapOptions) []MappedRow {
	mapped := make([]MappedRow, 0, len(rows))
	if len(mapping) == 0 {
		return mapped
	}

	dateFields := toSet(opts.DateFields)
	numericFields := toSet(opts.NumericFields)
	log := logger.GetLogger()

	for i, row := range rows {
		out := make(MappedRow, len(mapping))
		for src, dst := range mapping {
			cell, ok := row[src]
			if !ok {
				continue
			}

			switch {
			case dateFields[dst]:
				if cell.IsEmpty() {
					out[dst] = cell
					break
				}
				if date, err := ParseDate(cell.Text()); err == nil {
					out[dst] = StringCell(date.Format("2006-01-02"))
				} else {
					log.Warnf("row %d: field %s: %v, keeping original value", i, dst, err)
					out[dst] = cell
				}
			case numericFields[dst]:
				// empty stays empty so required-field checks still fire
				if cell.Kind == CellNumber || cell.IsEmpty() {
					out[dst] = cell
				} else {
					out[dst] = NumberCell(ParseFloatLenient(cell.Text()))
				}
			default:
				out[dst] = cell
			}
		}
		mapped = append(mapped, out)
	}

	return mapped
}

func toSet(fields []string) map[string]bool {
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}

// ParseFloatLenient parses a numeric string tolerating thousand
// separators and dash-for-zero, returning 0 when unparseable
func ParseFloatLenient(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return 0
	}

	// Remove commas (thousand separators) if present
	s = strings.ReplaceAll(s, ",", "")

	result, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return result
}

var dateFormats = []string{
	"2006-01-02", // ISO standard
	"2006/01/02",
	"01/02/2006", // US format
	"01-02-06",
	"01/02/2006 3:04:05 PM",
	"01/02/06",
	"02.01.2006", // European with dots
	"Jan 02, 2006",
	"02 Jan 2006",
}

// ParseDate tries the date layouts seen in real sales exports
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", s)
}
