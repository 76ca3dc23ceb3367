package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHeaderMap(t *testing.T) {
	rules := OrganHeaderRules()

	t.Run("maps decorated headers to canonical fields", func(t *testing.T) {
		headers := []string{"Nom*", "Type organe*", "Marque", "Numero de serie", "Cout (EUR)"}
		m := BuildHeaderMap(headers, rules)

		require.Equal(t, 5, len(m))
		assert.Equal(t, 0, m[FieldNom])
		assert.Equal(t, 1, m[FieldTypeOrgane])
		assert.Equal(t, 2, m[FieldMarque])
		assert.Equal(t, 3, m[FieldNumeroSerie])
		assert.Equal(t, 4, m[FieldCout])
	})

	t.Run("specific rule wins over generic rule", func(t *testing.T) {
		headers := []string{"Nouveau type organe", "Type organe*"}
		m := BuildHeaderMap(headers, rules)

		assert.Equal(t, 0, m[FieldNouveauType])
		assert.Equal(t, 1, m[FieldTypeOrgane])
	})

	t.Run("unknown headers are dropped silently", func(t *testing.T) {
		headers := []string{"Nom*", "Commentaire interne", "Colonne 12"}
		m := BuildHeaderMap(headers, rules)

		require.Equal(t, 1, len(m))
		assert.Equal(t, 0, m[FieldNom])
	})

	t.Run("first column wins when two columns match the same field", func(t *testing.T) {
		headers := []string{"Marque", "Marque (ancienne)"}
		m := BuildHeaderMap(headers, rules)

		require.Equal(t, 1, len(m))
		assert.Equal(t, 0, m[FieldMarque])
	})

	t.Run("deterministic under column permutation", func(t *testing.T) {
		original := []string{"Nom*", "Type organe*", "Marque", "Actif"}
		permuted := []string{"Actif", "Marque", "Nom*", "Type organe*"}

		m1 := BuildHeaderMap(original, rules)
		m2 := BuildHeaderMap(permuted, rules)

		require.Equal(t, len(m1), len(m2))
		for field := range m1 {
			_, ok := m2[field]
			assert.True(t, ok, "field %s recognized in one order but not the other", field)
		}
	})

	t.Run("empty headers are skipped", func(t *testing.T) {
		headers := []string{"", "Nom*", "  "}
		m := BuildHeaderMap(headers, rules)

		require.Equal(t, 1, len(m))
		assert.Equal(t, 1, m[FieldNom])
	})
}

func TestParseRow(t *testing.T) {
	rules := OrganHeaderRules()
	m := BuildHeaderMap([]string{"Nom*", "Type organe*", "Marque"}, rules)

	t.Run("short rows are padded, not rejected", func(t *testing.T) {
		rec := ParseRow([]string{"Pump-12"}, m, 0)

		assert.Equal(t, "Pump-12", rec.Fields[FieldNom])
		assert.Equal(t, "", rec.Fields[FieldTypeOrgane])
		assert.Equal(t, "", rec.Fields[FieldMarque])
	})

	t.Run("empty row still produces a candidate record", func(t *testing.T) {
		rec := ParseRow(nil, m, 3)

		assert.Equal(t, 3, rec.RowIndex)
		assert.Equal(t, 5, rec.SheetRow())
		assert.Len(t, rec.Fields, 3)
	})

	t.Run("cell values are trimmed", func(t *testing.T) {
		rec := ParseRow([]string{"  Pump-12  ", "Hydraulic", " ACME "}, m, 0)

		assert.Equal(t, "Pump-12", rec.Fields[FieldNom])
		assert.Equal(t, "ACME", rec.Fields[FieldMarque])
	})
}
