package service

import (
	"context"
	"testing"

	"fleet-admin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResolver(t *testing.T) *ReferenceResolver {
	t.Helper()
	store := &fakeReferenceStore{tables: map[string][]models.Reference{
		models.RefOrganTypes: {
			{ID: 1, TenantID: 1, Name: "Hydraulic"},
			{ID: 2, TenantID: 1, Name: "Electrique"},
		},
		models.RefSites: {
			{ID: 10, TenantID: 1, Name: "Paris"},
		},
	}}
	resolver, err := PreloadReferences(context.Background(), store, 1, models.RefOrganTypes, models.RefSites)
	require.NoError(t, err)
	return resolver
}

func record(rowIndex int, fields map[string]string) models.CandidateRecord {
	return models.CandidateRecord{RowIndex: rowIndex, Fields: fields}
}

func TestValidatorValidate(t *testing.T) {
	v := NewValidator(OrganFieldSpecs(), testResolver(t))

	t.Run("complete valid row has no findings", func(t *testing.T) {
		findings := v.Validate(record(0, map[string]string{
			FieldNom:             "Pump-12",
			FieldTypeOrgane:      "Hydraulic",
			FieldSite:            "Paris",
			FieldMarque:          "ACME",
			FieldModele:          "X200",
			FieldNumeroSerie:     "SN-001",
			FieldDateMiseService: "2023-06-15",
			FieldCout:            "1250.50",
			FieldCriticite:       "haute",
			FieldActif:           "oui",
		}))
		assert.Empty(t, findings)
	})

	t.Run("missing required fields", func(t *testing.T) {
		findings := v.Validate(record(0, map[string]string{
			FieldNom:        "",
			FieldTypeOrgane: "",
		}))
		require.Len(t, findings, 2)
		assert.Equal(t, "Nom is required", findings[0].Message)
		assert.Equal(t, "Type organe is required", findings[1].Message)
		assert.True(t, HasBlocking(findings))
	})

	t.Run("empty mapped optional field is a warning, not an error", func(t *testing.T) {
		findings := v.Validate(record(0, map[string]string{
			FieldNom:        "Pump-12",
			FieldTypeOrgane: "Hydraulic",
			FieldMarque:     "",
		}))
		require.Len(t, findings, 1)
		assert.Equal(t, models.SeverityWarning, findings[0].Severity)
		assert.Contains(t, findings[0].Message, "existing value kept")
		assert.False(t, HasBlocking(findings))
	})

	t.Run("unmapped optional field produces nothing", func(t *testing.T) {
		findings := v.Validate(record(0, map[string]string{
			FieldNom:        "Pump-12",
			FieldTypeOrgane: "Hydraulic",
		}))
		assert.Empty(t, findings)
	})

	t.Run("unknown reference lists the valid values", func(t *testing.T) {
		findings := v.Validate(record(0, map[string]string{
			FieldNom:        "Pump-12",
			FieldTypeOrgane: "Pneumatic",
		}))
		require.Len(t, findings, 1)
		assert.Equal(t, "Type organe", findings[0].Field)
		assert.Contains(t, findings[0].Message, `unknown Type organe "Pneumatic"`)
		assert.Contains(t, findings[0].Message, "Electrique, Hydraulic")
	})

	t.Run("reference matching is case-insensitive", func(t *testing.T) {
		findings := v.Validate(record(0, map[string]string{
			FieldNom:        "Pump-12",
			FieldTypeOrgane: "HYDRAULIC",
		}))
		assert.Empty(t, findings)
	})

	t.Run("typed value rules", func(t *testing.T) {
		cases := []struct {
			name    string
			field   string
			value   string
			message string
		}{
			{"bad decimal", FieldCout, "abc", "Cout must be a number"},
			{"bad date format", FieldDateMiseService, "15/06/2023", "Date mise en service must be a date in YYYY-MM-DD format"},
			{"bad boolean", FieldActif, "peut-etre", "Actif must be one of: oui/non, true/false, yes/no, 1/0"},
			{"bad enum", FieldCriticite, "urgente", "Criticite must be one of: haute, moyenne, basse"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				findings := v.Validate(record(0, map[string]string{
					FieldNom:        "Pump-12",
					FieldTypeOrgane: "Hydraulic",
					tc.field:        tc.value,
				}))
				require.Len(t, findings, 1)
				assert.Equal(t, tc.message, findings[0].Message)
				assert.Equal(t, models.SeverityError, findings[0].Severity)
			})
		}
	})

	t.Run("all rules run, one row can carry several findings", func(t *testing.T) {
		findings := v.Validate(record(0, map[string]string{
			FieldNom:        "",
			FieldTypeOrgane: "Hydraulic",
			FieldCout:       "not-a-number",
			FieldActif:      "maybe",
		}))
		assert.Len(t, findings, 3)
	})

	t.Run("findings carry the 1-based sheet row", func(t *testing.T) {
		findings := v.Validate(record(4, map[string]string{
			FieldNom:        "",
			FieldTypeOrgane: "Hydraulic",
		}))
		require.Len(t, findings, 1)
		assert.Equal(t, 6, findings[0].Row)
	})
}

func TestParseDecimal(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"1250.50", "1250.5", true},
		{" 1 250.50 ", "1250.5", true},
		{"1,250.50", "1250.5", true},
		{"12,50", "12.5", true},
		{"1 250,50", "1250.5", true},
		{"1,250,000", "1250000", true},
		{"-42", "-42", true},
		{"abc", "", false},
		{"1.2.3", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		d, err := ParseDecimal(tc.in)
		if tc.ok {
			require.NoError(t, err, "input %q", tc.in)
			assert.Equal(t, tc.want, d.String(), "input %q", tc.in)
		} else {
			assert.Error(t, err, "input %q", tc.in)
		}
	}
}

func TestParseBooleanToken(t *testing.T) {
	truthy := []string{"oui", "OUI", "true", "yes", "1", "vrai"}
	for _, in := range truthy {
		b, ok := ParseBooleanToken(in)
		assert.True(t, ok, "input %q", in)
		assert.True(t, b, "input %q", in)
	}

	falsy := []string{"non", "false", "NO", "0", "faux"}
	for _, in := range falsy {
		b, ok := ParseBooleanToken(in)
		assert.True(t, ok, "input %q", in)
		assert.False(t, b, "input %q", in)
	}

	_, ok := ParseBooleanToken("peut-etre")
	assert.False(t, ok)
}
