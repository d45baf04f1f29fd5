package service

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"salesreport-web/internal/models"

	"github.com/xuri/excelize/v2"
)

// ExcelService handles the XLSX side of the import/export surface.
// Uploaded workbooks are flattened to CSV bytes so they run through the
// same parse/map/validate pipeline as plain CSV uploads.
type ExcelService struct{}

func NewExcelService() *ExcelService {
	return &ExcelService{}
}

// ReadSheetAsCSV reads the first sheet of an XLSX file and re-encodes it
// as CSV. Cell values come back from excelize as display strings, which
// is the same shape the CSV parser starts from.
func (s *ExcelService) ReadSheetAsCSV(filePath string) ([]byte, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportSales writes sales records to an XLSX file
func (s *ExcelService) ExportSales(records []models.SalesRecord, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sales"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}

	headers := []string{
		"Invoice ID", "Date", "Customer Code", "Sales Unit", "Material Code",
		"Quantity", "Unit Price", "Discount", "Item Tax", "Item Gross", "Item Net",
	}

	for i, header := range headers {
		cell := fmt.Sprintf("%s1", columnName(i))
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", columnName(len(headers)-1)), headerStyle)

	for rowIdx, rec := range records {
		row := rowIdx + 2
		values := []interface{}{
			rec.InvoiceID,
			rec.InvoiceDate,
			rec.CustomerCode,
			rec.SalesUnit,
			rec.MaterialCode,
			rec.Quantity,
			rec.UnitPrice,
			rec.Discount,
			rec.ItemTax,
			rec.ItemGross,
			rec.ItemNet,
		}
		for colIdx, value := range values {
			cell := fmt.Sprintf("%s%d", columnName(colIdx), row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	columnWidths := []float64{18, 14, 16, 14, 16, 12, 14, 12, 12, 14, 14}
	for i, width := range columnWidths {
		col := columnName(i)
		f.SetColWidth(sheetName, col, col, width)
	}

	numericStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 2})
	for col := 5; col < len(headers); col++ {
		name := columnName(col)
		f.SetColStyle(sheetName, name, numericStyle)
	}

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	return f.SaveAs(outputPath)
}

// templateLayout holds the header row and sample data for one import type
type templateLayout struct {
	sheetName string
	headers   []string
	sample    [][]interface{}
	notes     []string
}

func templateFor(importType string) (templateLayout, bool) {
	switch importType {
	case models.ImportTypeSales:
		return templateLayout{
			sheetName: "Sales Data",
			headers: []string{
				"Invoice ID", "Date", "Customer Code", "Sales Unit", "Material Code",
				"Quantity", "Unit Price", "Discount", "Item Tax", "Item Gross", "Item Net",
			},
			sample: [][]interface{}{
				{"INV-2026-0001", "2026-01-15", "CUST-001", "UNIT-A", "MAT-100", 10, 250000, 0, 27500, 2500000, 2527500},
				{"INV-2026-0002", "2026-01-16", "CUST-002", "UNIT-B", "MAT-200", 2, 1200000, 120000, 250800, 2280000, 2530800},
			},
			notes: []string{
				"Instructions:",
				"1. Invoice ID: unique invoice identifier. Re-importing the same ID updates the existing row.",
				"2. Date: transaction date in YYYY-MM-DD format.",
				"3. Customer Code / Sales Unit / Material Code: reference codes from master data.",
				"4. Amount columns accept plain numbers; thousand separators are tolerated.",
				"",
				"Note: Do not modify the header row. Fill data starting from row 2.",
			},
		}, true
	case models.ImportTypeProducts:
		return templateLayout{
			sheetName: "Products",
			headers:   []string{"Product Code", "Product Name", "Category", "Unit Price"},
			sample: [][]interface{}{
				{"MAT-100", "Thermal Paper Roll 80mm", "Consumables", 250000},
				{"MAT-200", "Receipt Printer RP-330", "Hardware", 1200000},
			},
			notes: []string{
				"Instructions:",
				"1. Product Code: unique code. Re-importing the same code updates the product.",
				"2. Product Name is required.",
			},
		}, true
	case models.ImportTypeCustomers:
		return templateLayout{
			sheetName: "Customers",
			headers:   []string{"Customer Code", "Customer Name", "City", "Segment"},
			sample: [][]interface{}{
				{"CUST-001", "PT Maju Bersama", "Jakarta", "Retail"},
				{"CUST-002", "CV Sumber Rejeki", "Surabaya", "Wholesale"},
			},
			notes: []string{
				"Instructions:",
				"1. Customer Code: unique code. Re-importing the same code updates the customer.",
				"2. Customer Name is required.",
			},
		}, true
	case models.ImportTypeTargets:
		return templateLayout{
			sheetName: "Sales Targets",
			headers:   []string{"Sales Unit", "Period", "Target Amount"},
			sample: [][]interface{}{
				{"UNIT-A", "2026-01", 50000000},
				{"UNIT-B", "2026-01", 35000000},
			},
			notes: []string{
				"Instructions:",
				"1. Period: YYYY-MM. One target per sales unit per period.",
				"2. Re-importing the same unit and period updates the target amount.",
			},
		}, true
	}
	return templateLayout{}, false
}

// GenerateImportTemplate creates a template Excel file for the given import type
func (s *ExcelService) GenerateImportTemplate(importType, outputPath string) error {
	layout, ok := templateFor(importType)
	if !ok {
		return fmt.Errorf("unsupported import type: %s", importType)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(layout.sheetName)
	if err != nil {
		return err
	}

	for i, header := range layout.headers {
		cell := fmt.Sprintf("%s1", columnName(i))
		f.SetCellValue(layout.sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	f.SetCellStyle(layout.sheetName, "A1", fmt.Sprintf("%s1", columnName(len(layout.headers)-1)), headerStyle)

	for rowIdx, rowData := range layout.sample {
		row := rowIdx + 2
		for colIdx, value := range rowData {
			cell := fmt.Sprintf("%s%d", columnName(colIdx), row)
			f.SetCellValue(layout.sheetName, cell, value)
		}
	}

	for i := range layout.headers {
		col := columnName(i)
		f.SetColWidth(layout.sheetName, col, col, 18)
	}

	notesStartRow := len(layout.sample) + 4
	for i, note := range layout.notes {
		cell := fmt.Sprintf("A%d", notesStartRow+i)
		f.SetCellValue(layout.sheetName, cell, note)
	}

	noteStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 10},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#F0F8FF"}, Pattern: 1},
	})
	f.SetCellStyle(layout.sheetName, fmt.Sprintf("A%d", notesStartRow), fmt.Sprintf("A%d", notesStartRow), noteStyle)

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	return f.SaveAs(outputPath)
}

func columnName(index int) string {
	result := ""
	for index >= 0 {
		result = string(rune('A'+(index%26))) + result
		index = index/26 - 1
	}
	return result
}
