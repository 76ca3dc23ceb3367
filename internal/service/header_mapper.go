package service

import "strings"

// HeaderRule maps operator-authored header text to a canonical field
// key. Rules are evaluated in slice order, so a more specific rule
// ("nouveau" and "type") must come before the generic one ("type") or
// the generic rule steals the column.
type HeaderRule struct {
	Field string
	Match func(header string) bool
}

// HeaderMap is the result of mapping a header row: canonical field key
// to the 0-based column index it was found at. Built once per run,
// read-only afterward.
type HeaderMap map[string]int

// BuildHeaderMap assigns each column to the first rule matching its
// lower-cased, trimmed header. A column matched by any rule is
// consumed even when its field was already claimed by an earlier
// column; unrecognized headers are ignored without error.
func BuildHeaderMap(headers []string, rules []HeaderRule) HeaderMap {
	m := make(HeaderMap)
	for col, raw := range headers {
		header := strings.ToLower(strings.TrimSpace(raw))
		if header == "" {
			continue
		}
		for _, rule := range rules {
			if !rule.Match(header) {
				continue
			}
			if _, taken := m[rule.Field]; !taken {
				m[rule.Field] = col
			}
			break
		}
	}
	return m
}

// OrganHeaderRules returns the ordered mapping rules for organ update
// spreadsheets. Headers are free text; matching tolerates decorations
// like "*" or "(optionnel)" around the recognized words.
func OrganHeaderRules() []HeaderRule {
	return []HeaderRule{
		{Field: FieldNouveauType, Match: containsAll("nouveau", "type")},
		{Field: FieldTypeOrgane, Match: containsAny("type")},
		{Field: FieldNom, Match: containsAny("nom")},
		{Field: FieldNumeroSerie, Match: containsAny("serie", "série", "s/n")},
		{Field: FieldSite, Match: containsAny("site")},
		{Field: FieldMarque, Match: containsAny("marque")},
		{Field: FieldModele, Match: containsAny("modele", "modèle")},
		{Field: FieldDateMiseService, Match: containsAny("date")},
		{Field: FieldCout, Match: containsAny("cout", "coût", "prix")},
		{Field: FieldCriticite, Match: containsAny("critic")},
		{Field: FieldActif, Match: containsAny("actif", "active", "etat", "état")},
	}
}

func containsAll(subs ...string) func(string) bool {
	return func(header string) bool {
		for _, sub := range subs {
			if !strings.Contains(header, sub) {
				return false
			}
		}
		return true
	}
}

func containsAny(subs ...string) func(string) bool {
	return func(header string) bool {
		for _, sub := range subs {
			if strings.Contains(header, sub) {
				return true
			}
		}
		return false
	}
}
