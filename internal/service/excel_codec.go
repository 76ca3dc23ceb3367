package service

import (
	"fmt"
	"path/filepath"
	"strings"

	"fleet-admin/internal/models"

	"github.com/xuri/excelize/v2"
)

// IsAllowedWorkbook checks the upload against the extension
// allow-list before any parsing happens.
func IsAllowedWorkbook(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls":
		return true
	}
	return false
}

// ReadWorkbookRows opens a workbook and returns the raw rows of its
// first sheet, header row included.
func ReadWorkbookRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
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
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	return rows, nil
}

// GenerateImportErrorReport writes an Excel report of all findings of
// a run so the operator can fix the source spreadsheet offline.
func GenerateImportErrorReport(findings []models.ImportError, summary models.ImportSummary, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Import Errors"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}

	headers := []string{"Row Number", "Field", "Severity", "Message", "Invalid Value"}
	for i, header := range headers {
		cell := fmt.Sprintf("%s1", getColumnName(i))
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FFE6E6"}, Pattern: 1},
	})
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", getColumnName(len(headers)-1)), headerStyle)

	for rowIdx, finding := range findings {
		row := rowIdx + 2
		values := []interface{}{
			finding.Row,
			finding.Field,
			finding.Severity,
			finding.Message,
			finding.Value,
		}
		for colIdx, value := range values {
			cell := fmt.Sprintf("%s%d", getColumnName(colIdx), row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 22)
	f.SetColWidth(sheetName, "C", "C", 12)
	f.SetColWidth(sheetName, "D", "D", 60)
	f.SetColWidth(sheetName, "E", "E", 25)

	// Summary block below the findings
	summaryStartRow := len(findings) + 4
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryStartRow), "Import Summary")
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryStartRow+1), "Total Rows Processed:")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryStartRow+1), summary.Total)
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryStartRow+2), "Rows Updated:")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryStartRow+2), summary.Updated)
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryStartRow+3), "Rows With Errors:")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryStartRow+3), summary.Errors)
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryStartRow+4), "Rows With Warnings:")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryStartRow+4), summary.Warnings)

	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", summaryStartRow), fmt.Sprintf("A%d", summaryStartRow), summaryStyle)

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	return f.SaveAs(outputPath)
}

func getColumnName(index int) string {
	result := ""
	for index >= 0 {
		result = string(rune('A'+(index%26))) + result
		index = index/26 - 1
	}
	return result
}
