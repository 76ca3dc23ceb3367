package service

import (
	"fmt"
	"strings"
	"time"

	"fleet-admin/internal/models"

	"github.com/shopspring/decimal"
)

// DateLayout is the only accepted date format. No locale guessing:
// anything else is a row error.
const DateLayout = "2006-01-02"

// Validator applies the per-field rules to one candidate record. All
// rules run even after one fails, so a row can surface several
// problems at once.
type Validator struct {
	specs []FieldSpec
	refs  *ReferenceResolver
}

func NewValidator(specs []FieldSpec, refs *ReferenceResolver) *Validator {
	return &Validator{specs: specs, refs: refs}
}

func (v *Validator) Validate(rec models.CandidateRecord) []models.ImportError {
	var findings []models.ImportError

	for _, spec := range v.specs {
		value, mapped := rec.Fields[spec.Key]

		if value == "" {
			if spec.Required {
				findings = append(findings, rowError(rec, spec, value,
					fmt.Sprintf("%s is required", spec.Label), models.SeverityError))
			} else if mapped {
				findings = append(findings, rowError(rec, spec, value,
					fmt.Sprintf("%s left empty, existing value kept", spec.Label), models.SeverityWarning))
			}
			continue
		}

		switch spec.Kind {
		case KindDecimal:
			if _, err := ParseDecimal(value); err != nil {
				findings = append(findings, rowError(rec, spec, value,
					fmt.Sprintf("%s must be a number", spec.Label), models.SeverityError))
			}
		case KindDate:
			if _, err := time.Parse(DateLayout, value); err != nil {
				findings = append(findings, rowError(rec, spec, value,
					fmt.Sprintf("%s must be a date in YYYY-MM-DD format", spec.Label), models.SeverityError))
			}
		case KindBool:
			if _, ok := ParseBooleanToken(value); !ok {
				findings = append(findings, rowError(rec, spec, value,
					fmt.Sprintf("%s must be one of: oui/non, true/false, yes/no, 1/0", spec.Label), models.SeverityError))
			}
		case KindEnum:
			if !containsFold(spec.Enum, value) {
				findings = append(findings, rowError(rec, spec, value,
					fmt.Sprintf("%s must be one of: %s", spec.Label, strings.Join(spec.Enum, ", ")), models.SeverityError))
			}
		case KindReference:
			if _, ok := v.refs.Resolve(spec.RefKind, value); !ok {
				findings = append(findings, rowError(rec, spec, value,
					fmt.Sprintf("unknown %s %q, valid values: %s", spec.Label, value,
						strings.Join(v.refs.KnownValues(spec.RefKind), ", ")), models.SeverityError))
			}
		}
	}

	return findings
}

// HasBlocking reports whether any finding is an error. Rows with only
// warnings still proceed to reconciliation.
func HasBlocking(findings []models.ImportError) bool {
	for _, f := range findings {
		if f.Severity == models.SeverityError {
			return true
		}
	}
	return false
}

func rowError(rec models.CandidateRecord, spec FieldSpec, value, message, severity string) models.ImportError {
	return models.ImportError{
		Row:      rec.SheetRow(),
		Field:    spec.Label,
		Value:    value,
		Message:  message,
		Severity: severity,
	}
}

// ParseDecimal accepts spreadsheet-style numbers. Spaces are stripped,
// then commas are disambiguated: alongside a dot they are thousand
// separators ("1,250.50"), a single comma alone is the French decimal
// comma ("12,50"), and several commas without a dot are grouping
// ("1,250,000"). Values stay decimal-exact; monetary amounts never
// pass through a float.
func ParseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	switch {
	case strings.Contains(s, ",") && strings.Contains(s, "."):
		s = strings.ReplaceAll(s, ",", "")
	case strings.Count(s, ",") == 1:
		s = strings.Replace(s, ",", ".", 1)
	case strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ",", "")
	}
	return decimal.NewFromString(s)
}

// ParseBooleanToken interprets the accepted truthy/falsy vocabulary,
// case-insensitively. The second return reports whether the token was
// recognized at all.
func ParseBooleanToken(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "oui", "yes", "vrai":
		return true, true
	case "false", "0", "non", "no", "faux":
		return false, true
	}
	return false, false
}

func containsFold(values []string, v string) bool {
	for _, candidate := range values {
		if strings.EqualFold(candidate, v) {
			return true
		}
	}
	return false
}
