package service

import (
	"context"
	"testing"

	"fleet-admin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateServiceBuild(t *testing.T) {
	organs, refs := testOrgans(), testReferences()
	svc := NewTemplateService(organs, refs, 5)

	f, err := svc.Build(context.Background(), 1)
	require.NoError(t, err)
	defer f.Close()

	t.Run("data sheet is first and carries the expected layout", func(t *testing.T) {
		sheets := f.GetSheetList()
		require.NotEmpty(t, sheets)
		assert.Equal(t, "Organes", sheets[0])
		assert.Contains(t, sheets, "Instructions")
		assert.NotContains(t, sheets, "Sheet1")

		rows, err := f.GetRows("Organes")
		require.NoError(t, err)
		require.Len(t, rows, 3, "header plus one sample row per organ")
		assert.Equal(t, TemplateHeaders(), rows[0])
		assert.Equal(t, "Pump-12", rows[1][0])
		assert.Equal(t, "Hydraulic", rows[1][1])
		assert.Equal(t, "Paris", rows[1][3])
	})

	t.Run("re-importing the template rows produces no errors", func(t *testing.T) {
		rows, err := f.GetRows("Organes")
		require.NoError(t, err)

		runs := &fakeRunStore{}
		importer := newTestImport(organs, refs, runs)
		result, err := importer.Run(context.Background(), 1, 42, TemplateFileName, rows)
		require.NoError(t, err)

		assert.Equal(t, result.Summary.Total, result.Summary.Updated)
		assert.Zero(t, result.Summary.Errors)
		for _, finding := range result.Errors {
			assert.Equal(t, models.SeverityWarning, finding.Severity, "round trip must only warn: %s", finding.Message)
		}
		assert.Empty(t, organs.updates, "template rows mirror the stored state, nothing should change")
	})

	t.Run("instructions enumerate the live reference values", func(t *testing.T) {
		rows, err := f.GetRows("Instructions")
		require.NoError(t, err)

		var all string
		for _, row := range rows {
			if len(row) > 0 {
				all += row[0] + "\n"
			}
		}
		assert.Contains(t, all, "Hydraulic")
		assert.Contains(t, all, "Electrique")
		assert.Contains(t, all, "Paris")
		assert.Contains(t, all, "YYYY-MM-DD")
	})
}

func TestTemplateServiceExport(t *testing.T) {
	organs, refs := testOrgans(), testReferences()
	svc := NewTemplateService(organs, refs, 5)

	path := t.TempDir() + "/organes_export.xlsx"
	require.NoError(t, svc.Export(context.Background(), 1, path))

	rows, err := ReadWorkbookRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, TemplateHeaders(), rows[0])

	// An untouched export must re-import cleanly as a pure no-op.
	runs := &fakeRunStore{}
	importer := newTestImport(organs, refs, runs)
	result, err := importer.Run(context.Background(), 1, 42, "organes_export.xlsx", rows)
	require.NoError(t, err)
	assert.Zero(t, result.Summary.Errors)
	assert.Equal(t, result.Summary.Total, result.Summary.Updated)
	assert.Empty(t, organs.updates)
}
