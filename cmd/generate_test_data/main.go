package main

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// Generates sample import files under storage/uploads for manual testing
// of the import endpoints.
func main() {
	if err := writeSalesFixture(); err != nil {
		fmt.Printf("Error creating sales fixture: %v\n", err)
		return
	}
	if err := writeMasterDataFixture(); err != nil {
		fmt.Printf("Error creating master data fixture: %v\n", err)
		return
	}
}

func writeSalesFixture() error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sales Data"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}

	headers := []string{
		"Invoice ID", "Date", "Customer Code", "Sales Unit", "Material Code",
		"Quantity", "Unit Price", "Discount", "Item Tax", "Item Gross", "Item Net",
	}
	for i, header := range headers {
		f.SetCellValue(sheetName, fmt.Sprintf("%s1", colName(i)), header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", colName(len(headers)-1)), headerStyle)

	// INV-2026-0001 appears twice: the second occurrence exercises the
	// update path of the upsert. The 0004 row has a blank Item Net so a
	// full-file import fails validation with the field-required message.
	testData := [][]interface{}{
		{"INV-2026-0001", "2026-01-05", "CUST-001", "UNIT-A", "MAT-100", 10, 250000, 0, 27500, 2500000, 2527500},
		{"INV-2026-0002", "2026-01-08", "CUST-002", "UNIT-B", "MAT-200", 2, 1200000, 120000, 250800, 2280000, 2530800},
		{"INV-2026-0003", "2026-01-12", "CUST-001", "UNIT-A", "MAT-200", 1, 1200000, 0, 132000, 1200000, 1332000},
		{"INV-2026-0001", "2026-01-05", "CUST-001", "UNIT-A", "MAT-100", 12, 250000, 0, 33000, 3000000, 3033000},
		{"INV-2026-0004", "2026-02-02", "CUST-003", "UNIT-A", "MAT-100", 5, 250000, 0, 13750, 1250000, ""},
	}
	for rowIdx, rowData := range testData {
		row := rowIdx + 2
		for colIdx, value := range rowData {
			f.SetCellValue(sheetName, fmt.Sprintf("%s%d", colName(colIdx), row), value)
		}
	}

	for i := range headers {
		col := colName(i)
		f.SetColWidth(sheetName, col, col, 16)
	}

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	outputPath := filepath.Join("storage", "uploads", "test_sales_import.xlsx")
	if err := f.SaveAs(outputPath); err != nil {
		return err
	}
	fmt.Printf("Sales fixture created: %s (%d rows)\n", outputPath, len(testData))
	return nil
}

func writeMasterDataFixture() error {
	f := excelize.NewFile()
	defer f.Close()

	type sheet struct {
		name    string
		headers []string
		rows    [][]interface{}
	}
	sheets := []sheet{
		{
			name:    "Products",
			headers: []string{"Product Code", "Product Name", "Category", "Unit Price"},
			rows: [][]interface{}{
				{"MAT-100", "Thermal Paper Roll 80mm", "Consumables", 250000},
				{"MAT-200", "Receipt Printer RP-330", "Hardware", 1200000},
			},
		},
		{
			name:    "Customers",
			headers: []string{"Customer Code", "Customer Name", "City", "Segment"},
			rows: [][]interface{}{
				{"CUST-001", "PT Maju Bersama", "Jakarta", "Retail"},
				{"CUST-002", "CV Sumber Rejeki", "Surabaya", "Wholesale"},
				{"CUST-003", "Toko Berkah", "Bandung", "Retail"},
			},
		},
		{
			name:    "Sales Targets",
			headers: []string{"Sales Unit", "Period", "Target Amount"},
			rows: [][]interface{}{
				{"UNIT-A", "2026-01", 50000000},
				{"UNIT-B", "2026-01", 35000000},
				{"UNIT-A", "2026-02", 55000000},
			},
		},
	}

	for si, s := range sheets {
		index, err := f.NewSheet(s.name)
		if err != nil {
			return err
		}
		for i, header := range s.headers {
			f.SetCellValue(s.name, fmt.Sprintf("%s1", colName(i)), header)
		}
		for rowIdx, rowData := range s.rows {
			row := rowIdx + 2
			for colIdx, value := range rowData {
				f.SetCellValue(s.name, fmt.Sprintf("%s%d", colName(colIdx), row), value)
			}
		}
		if si == 0 {
			f.SetActiveSheet(index)
		}
	}
	f.DeleteSheet("Sheet1")

	outputPath := filepath.Join("storage", "uploads", "test_master_data.xlsx")
	if err := f.SaveAs(outputPath); err != nil {
		return err
	}
	fmt.Printf("Master data fixture created: %s\n", outputPath)
	return nil
}

func colName(index int) string {
	result := ""
	for index >= 0 {
		result = string(rune('A'+(index%26))) + result
		index = index/26 - 1
	}
	return result
}
