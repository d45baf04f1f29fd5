package importer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_AllValid(t *testing.T) {
	rows := []MappedRow{
		{"invoice_id": StringCell("INV1"), "item_net": NumberCell(100)},
		{"invoice_id": StringCell("INV2"), "item_net": NumberCell(200)},
	}

	result := Validate(rows, []string{"invoice_id", "item_net"}, nil)

	assert.True(t, result.Valid)
	assert.Equal(t, "All 2 rows are valid", result.Message)
	assert.Len(t, result.ValidRows, 2)
	assert.Empty(t, result.InvalidRows)
}

func TestValidate_MissingRequiredField(t *testing.T) {
	rows := []MappedRow{
		{"invoice_id": StringCell("INV1"), "item_net": NumberCell(100)},
		{"invoice_id": StringCell("INV2")},
		{"invoice_id": StringCell("INV3"), "item_net": StringCell("  ")},
	}

	result := Validate(rows, []string{"invoice_id", "item_net"}, nil)

	assert.False(t, result.Valid)
	assert.Equal(t, "2 of 3 rows failed validation", result.Message)
	require.Len(t, result.InvalidRows, 2)
	assert.Equal(t, 1, result.InvalidRows[0].RowIndex)
	assert.Contains(t, result.InvalidRows[0].Errors, "Missing required field: item_net")
	assert.Equal(t, 2, result.InvalidRows[1].RowIndex)
	assert.Contains(t, result.InvalidRows[1].Errors, "Missing required field: item_net")
}

func TestValidate_FieldValidatorMessageVerbatim(t *testing.T) {
	rows := []MappedRow{
		{"date": StringCell("not a date")},
	}
	validators := map[string]FieldValidator{
		"date": func(v Cell, _ MappedRow) error {
			return fmt.Errorf("Invalid date: %s", v.Text())
		},
	}

	result := Validate(rows, nil, validators)

	assert.False(t, result.Valid)
	require.Len(t, result.InvalidRows, 1)
	assert.Equal(t, []string{"Invalid date: not a date"}, result.InvalidRows[0].Errors)
}

func TestValidate_CrossFieldValidator(t *testing.T) {
	rows := []MappedRow{
		{"item_gross": NumberCell(100), "item_net": NumberCell(150)},
		{"item_gross": NumberCell(100), "item_net": NumberCell(90)},
	}
	validators := map[string]FieldValidator{
		"item_net": func(v Cell, row MappedRow) error {
			if v.Float() > row["item_gross"].Float() {
				return fmt.Errorf("item_net exceeds item_gross")
			}
			return nil
		},
	}

	result := Validate(rows, nil, validators)

	assert.False(t, result.Valid)
	require.Len(t, result.InvalidRows, 1)
	assert.Equal(t, 0, result.InvalidRows[0].RowIndex)
	assert.Len(t, result.ValidRows, 1)
}

func TestValidate_EmptyBatchIsHardFailure(t *testing.T) {
	result := Validate(nil, []string{"invoice_id"}, nil)

	assert.False(t, result.Valid)
	assert.Equal(t, "No data to validate", result.Message)
	assert.Empty(t, result.ValidRows)
	assert.Empty(t, result.InvalidRows)
}

func TestValidate_PreservesOrder(t *testing.T) {
	rows := []MappedRow{
		{"id": StringCell("A")},
		{"id": StringCell("")},
		{"id": StringCell("C")},
		{"id": StringCell("")},
		{"id": StringCell("E")},
	}

	result := Validate(rows, []string{"id"}, nil)

	require.Len(t, result.ValidRows, 3)
	assert.Equal(t, "A", result.ValidRows[0]["id"].Text())
	assert.Equal(t, "C", result.ValidRows[1]["id"].Text())
	assert.Equal(t, "E", result.ValidRows[2]["id"].Text())

	require.Len(t, result.InvalidRows, 2)
	assert.Equal(t, 1, result.InvalidRows[0].RowIndex)
	assert.Equal(t, 3, result.InvalidRows[1].RowIndex)
}
