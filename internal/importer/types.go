package importer

import (
	"encoding/json"
	"strconv"
	"strings"
)

// CellKind tags the scalar kind held by a Cell
type CellKind int

const (
	CellString CellKind = iota
	CellNumber
	CellBool
)

// Cell is a single scalar value from a parsed row. It replaces the
// dynamically typed row records of a loosely typed import file with a
// tagged union: exactly one of Str/Num/Bool is meaningful per Kind.
type Cell struct {
	Kind CellKind
	Str  string
	Num  float64
	Bool bool
}

func StringCell(s string) Cell  { return Cell{Kind: CellString, Str: s} }
func NumberCell(f float64) Cell { return Cell{Kind: CellNumber, Num: f} }
func BoolCell(b bool) Cell      { return Cell{Kind: CellBool, Bool: b} }

// Text renders the cell as a string regardless of kind
func (c Cell) Text() string {
	switch c.Kind {
	case CellNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case CellBool:
		return strconv.FormatBool(c.Bool)
	default:
		return c.Str
	}
}

// Float returns the numeric value of the cell, 0 when not coercible
func (c Cell) Float() float64 {
	switch c.Kind {
	case CellNumber:
		return c.Num
	case CellBool:
		if c.Bool {
			return 1
		}
		return 0
	default:
		return ParseFloatLenient(c.Str)
	}
}

// IsEmpty reports whether the cell holds no usable value
func (c Cell) IsEmpty() bool {
	return c.Kind == CellString && strings.TrimSpace(c.Str) == ""
}

func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case CellNumber:
		return json.Marshal(c.Num)
	case CellBool:
		return json.Marshal(c.Bool)
	default:
		return json.Marshal(c.Str)
	}
}

// RawRow maps a column header to the scalar the parser inferred for it.
// Exists only between parsing and mapping.
type RawRow map[string]Cell

// MappedRow maps a target field name to its coerced value. Only fields
// named in the caller's mapping ever appear as keys.
type MappedRow map[string]Cell
