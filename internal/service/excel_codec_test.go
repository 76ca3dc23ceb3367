package service

import (
	"path/filepath"
	"testing"

	"fleet-admin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestIsAllowedWorkbook(t *testing.T) {
	assert.True(t, IsAllowedWorkbook("organes.xlsx"))
	assert.True(t, IsAllowedWorkbook("ORGANES.XLSX"))
	assert.True(t, IsAllowedWorkbook("legacy.xls"))
	assert.False(t, IsAllowedWorkbook("organes.csv"))
	assert.False(t, IsAllowedWorkbook("organes"))
	assert.False(t, IsAllowedWorkbook("organes.xlsx.exe"))
}

func TestReadWorkbookRows(t *testing.T) {
	dir := t.TempDir()

	t.Run("reads the first sheet with the header row", func(t *testing.T) {
		path := filepath.Join(dir, "ok.xlsx")
		f := excelize.NewFile()
		f.SetCellValue("Sheet1", "A1", "Nom*")
		f.SetCellValue("Sheet1", "B1", "Type organe*")
		f.SetCellValue("Sheet1", "A2", "Pump-12")
		f.SetCellValue("Sheet1", "B2", "Hydraulic")
		require.NoError(t, f.SaveAs(path))
		f.Close()

		rows, err := ReadWorkbookRows(path)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, []string{"Nom*", "Type organe*"}, rows[0])
		assert.Equal(t, []string{"Pump-12", "Hydraulic"}, rows[1])
	})

	t.Run("empty sheet is an error", func(t *testing.T) {
		path := filepath.Join(dir, "empty.xlsx")
		f := excelize.NewFile()
		require.NoError(t, f.SaveAs(path))
		f.Close()

		_, err := ReadWorkbookRows(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})

	t.Run("unreadable file is an error", func(t *testing.T) {
		_, err := ReadWorkbookRows(filepath.Join(dir, "missing.xlsx"))
		assert.Error(t, err)
	})
}

func TestGenerateImportErrorReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	findings := []models.ImportError{
		{Row: 2, Field: "Nom", Value: "Pump-99", Message: `organ "Pump-99" of type "Hydraulic" does not exist`, Severity: models.SeverityError},
		{Row: 3, Field: "Marque", Value: "", Message: "Marque left empty, existing value kept", Severity: models.SeverityWarning},
	}
	summary := models.ImportSummary{Total: 3, Updated: 2, Errors: 1, Warnings: 1}

	require.NoError(t, GenerateImportErrorReport(findings, summary, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Import Errors")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 2)
	assert.Equal(t, []string{"Row Number", "Field", "Severity", "Message", "Invalid Value"}, rows[0])
	assert.Equal(t, "2", rows[1][0])
	assert.Equal(t, "Nom", rows[1][1])
	assert.Equal(t, "error", rows[1][2])

	// Summary block sits a few rows under the findings.
	total, err := f.GetCellValue("Import Errors", "B7")
	require.NoError(t, err)
	assert.Equal(t, "3", total)
}

func TestGetColumnName(t *testing.T) {
	assert.Equal(t, "A", getColumnName(0))
	assert.Equal(t, "K", getColumnName(10))
	assert.Equal(t, "Z", getColumnName(25))
	assert.Equal(t, "AA", getColumnName(26))
	assert.Equal(t, "AZ", getColumnName(51))
}
