package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseOptions controls CSV parsing behavior
type ParseOptions struct {
	// NoHeader treats every line as data; columns are named col_0, col_1, ...
	NoHeader bool
	// DisableTypeInference keeps every cell a string
	DisableTypeInference bool
}

// ParseError describes one malformed input row. Parse collects these on
// the result instead of failing; the caller decides whether to abort.
type ParseError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

func (e ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// ParseResult is the outcome of parsing one CSV document
type ParseResult struct {
	Headers []string
	Rows    []RawRow
	Errors  []ParseError
}

// Parse reads UTF-8 CSV into ordered row records. The first non-empty
// line is the header unless opts.NoHeader is set. Header cells are
// trimmed (BOM stripped), fully empty lines are skipped, and numeric or
// boolean looking cells are inferred to their scalar kind. Rows whose
// column count disagrees with the header are reported as parse errors
// and excluded from Rows. Pure function of its input.
func Parse(r io.Reader, opts ParseOptions) *ParseResult {
	result := &ParseResult{Rows: []RawRow{}, Errors: []ParseError{}}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	line := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				result.Errors = append(result.Errors, ParseError{
					Line:    csvErr.Line,
					Message: csvErr.Err.Error(),
				})
				continue
			}
			result.Errors = append(result.Errors, ParseError{Line: line, Message: err.Error()})
			break
		}

		if isBlankRecord(record) {
			continue
		}

		if result.Headers == nil {
			if opts.NoHeader {
				result.Headers = positionalHeaders(len(record))
			} else {
				result.Headers = normalizeHeaders(record)
				continue
			}
		}

		if len(record) != len(result.Headers) {
			result.Errors = append(result.Errors, ParseError{
				Line:    line,
				Message: fmt.Sprintf("expected %d columns, got %d", len(result.Headers), len(record)),
			})
			continue
		}

		row := make(RawRow, len(record))
		for i, value := range record {
			row[result.Headers[i]] = inferCell(value, opts.DisableTypeInference)
		}
		result.Rows = append(result.Rows, row)
	}

	return result
}

// normalizeHeaders trims header names and strips a UTF-8 BOM from the
// first column, which spreadsheet exports routinely prepend
func normalizeHeaders(record []string) []string {
	headers := make([]string, len(record))
	for i, col := range record {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
	}
	return headers
}

func positionalHeaders(n int) []string {
	headers := make([]string, n)
	for i := range headers {
		headers[i] = fmt.Sprintf("col_%d", i)
	}
	return headers
}

func isBlankRecord(record []string) bool {
	for _, value := range record {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

// inferCell turns a raw string cell into its most specific scalar kind
func inferCell(value string, disabled bool) Cell {
	trimmed := strings.TrimSpace(value)
	if disabled || trimmed == "" {
		return StringCell(trimmed)
	}

	if num, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return NumberCell(num)
	}

	switch strings.ToLower(trimmed) {
	case "true":
		return BoolCell(true)
	case "false":
		return BoolCell(false)
	}

	return StringCell(trimmed)
}
