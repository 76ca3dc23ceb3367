// genworkbook writes a small organ update workbook for manual testing
// of the import endpoint.
package main

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

func main() {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Organes"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		fmt.Printf("Error creating sheet: %v\n", err)
		os.Exit(1)
	}

	headers := []string{
		"Nom*", "Type organe*", "Marque", "Modele", "Numero de serie",
		"Date mise en service", "Cout", "Criticite", "Actif",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheetName, "A1", lastHeader, headerStyle)

	// Rows exercise the interesting paths: a clean update, a no-op,
	// an unknown reference, and a missing required field.
	testData := [][]interface{}{
		{"Pompe hydraulique P-101", "Hydraulique", "ACME", "HX-200", "SN-4411", "2023-05-12", "1250.50", "haute", "oui"},
		{"Pompe hydraulique P-101", "Hydraulique", "ACME", "HX-200", "SN-4411", "2023-05-12", "1250.50", "haute", "oui"},
		{"Filtre huile F-220", "TypeInconnu", "Fleetguard", "", "", "", "89.90", "basse", "non"},
		{"", "Electrique", "Bosch", "", "", "", "", "", ""},
	}
	for rowIdx, rowData := range testData {
		for colIdx, value := range rowData {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	outPath := "organ_update_test.xlsx"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}
	if err := f.SaveAs(outPath); err != nil {
		fmt.Printf("Error saving workbook: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", outPath)
}
