package service

import (
	"context"
	"fmt"
	"strings"

	"fleet-admin/internal/models"

	"github.com/xuri/excelize/v2"
)

// TemplateFileName is the fixed download name of the update template.
const TemplateFileName = "organes_update_template.xlsx"

// TemplateService builds the annotated example spreadsheet for organ
// updates: the expected header row, a handful of the tenant's real
// organs as sample rows, and a second sheet enumerating the currently
// valid reference values so the guidance never goes stale.
type TemplateService struct {
	organs     OrganStore
	refs       ReferenceStore
	sampleRows int
}

func NewTemplateService(organs OrganStore, refs ReferenceStore, sampleRows int) *TemplateService {
	if sampleRows < 1 {
		sampleRows = 5
	}
	return &TemplateService{organs: organs, refs: refs, sampleRows: sampleRows}
}

// TemplateHeaders is the header row the import pipeline expects. The
// sample rows written under it must themselves survive a re-import
// with zero errors.
func TemplateHeaders() []string {
	return []string{
		"Nom*", "Type organe*", "Nouveau type organe", "Site", "Marque", "Modele",
		"Numero de serie", "Date mise en service", "Cout", "Criticite", "Actif",
	}
}

// Build assembles the template workbook in memory.
func (t *TemplateService) Build(ctx context.Context, tenantID int64) (*excelize.File, error) {
	resolver, err := PreloadReferences(ctx, t.refs, tenantID, models.RefOrganTypes, models.RefSites)
	if err != nil {
		return nil, fmt.Errorf("failed to preload reference tables: %w", err)
	}

	// Read-only sampling, scoped to the requesting tenant only.
	samples, err := t.organs.SampleByTenant(ctx, tenantID, t.sampleRows)
	if err != nil {
		return nil, fmt.Errorf("failed to sample organs: %w", err)
	}

	f := excelize.NewFile()
	sheetName := "Organes"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, err
	}

	headers := TemplateHeaders()
	for i, header := range headers {
		cell := fmt.Sprintf("%s1", getColumnName(i))
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", getColumnName(len(headers)-1)), headerStyle)

	for rowIdx, organ := range samples {
		row := rowIdx + 2
		values := sampleRowValues(organ, resolver)
		for colIdx, value := range values {
			cell := fmt.Sprintf("%s%d", getColumnName(colIdx), row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	f.SetColWidth(sheetName, "A", "B", 22)
	f.SetColWidth(sheetName, "C", "H", 20)
	f.SetColWidth(sheetName, "I", "K", 14)

	t.writeGuidanceSheet(f, resolver)

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	return f, nil
}

// Export writes every organ of the tenant as a workbook using the
// template layout, so an export can be edited and re-imported as-is.
func (t *TemplateService) Export(ctx context.Context, tenantID int64, outputPath string) error {
	resolver, err := PreloadReferences(ctx, t.refs, tenantID, models.RefOrganTypes, models.RefSites)
	if err != nil {
		return fmt.Errorf("failed to preload reference tables: %w", err)
	}

	organs, err := t.organs.GetAllByTenant(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("failed to load organs: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Organes"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}

	headers := TemplateHeaders()
	for i, header := range headers {
		f.SetCellValue(sheetName, fmt.Sprintf("%s1", getColumnName(i)), header)
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", getColumnName(len(headers)-1)), headerStyle)

	for rowIdx, organ := range organs {
		row := rowIdx + 2
		for colIdx, value := range sampleRowValues(organ, resolver) {
			f.SetCellValue(sheetName, fmt.Sprintf("%s%d", getColumnName(colIdx), row), value)
		}
	}

	f.SetColWidth(sheetName, "A", "B", 22)
	f.SetColWidth(sheetName, "C", "H", 20)
	f.SetColWidth(sheetName, "I", "K", 14)

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	return f.SaveAs(outputPath)
}

// Generate writes the template workbook to outputPath.
func (t *TemplateService) Generate(ctx context.Context, tenantID int64, outputPath string) error {
	f, err := t.Build(ctx, tenantID)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(outputPath)
}

// sampleRowValues renders one organ the way the import expects to read
// it back: fixed date format, decimal cost, oui/non booleans.
func sampleRowValues(organ models.Organ, resolver *ReferenceResolver) []interface{} {
	site := ""
	if organ.SiteID != nil {
		site = resolver.NameOf(models.RefSites, *organ.SiteID)
	}
	date := ""
	if organ.DateMiseService != nil {
		date = organ.DateMiseService.Format(DateLayout)
	}
	actif := "non"
	if organ.Actif {
		actif = "oui"
	}

	return []interface{}{
		organ.Name,
		resolver.NameOf(models.RefOrganTypes, organ.OrganTypeID),
		"", // Nouveau type organe: only filled to change the type
		site,
		organ.Marque,
		organ.Modele,
		organ.NumeroSerie,
		date,
		organ.Cout.String(),
		organ.Criticite,
		actif,
	}
}

// writeGuidanceSheet adds the per-column instructions on a separate
// sheet so the data sheet stays directly re-importable.
func (t *TemplateService) writeGuidanceSheet(f *excelize.File, resolver *ReferenceResolver) {
	sheetName := "Instructions"
	if _, err := f.NewSheet(sheetName); err != nil {
		return
	}

	lines := []string{
		"Organ update template - columns marked * are required.",
		"",
		"Nom*: name of the existing organ to update.",
		"Type organe*: current type of the organ, used together with Nom to find it.",
		fmt.Sprintf("  Valid types: %s", strings.Join(resolver.KnownValues(models.RefOrganTypes), ", ")),
		"Nouveau type organe: fill only to move the organ to another type.",
		fmt.Sprintf("Site: %s", strings.Join(resolver.KnownValues(models.RefSites), ", ")),
		"Marque / Modele / Numero de serie: free text, empty cells keep the current value.",
		"Date mise en service: YYYY-MM-DD.",
		"Cout: number, no currency symbol.",
		fmt.Sprintf("Criticite: %s", strings.Join(models.ValidCriticites, ", ")),
		"Actif: oui/non, true/false, yes/no or 1/0.",
		"",
		"Do not modify the header row. Fill data starting from row 2.",
	}

	for i, line := range lines {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", i+1), line)
	}
	f.SetColWidth(sheetName, "A", "A", 100)
}
