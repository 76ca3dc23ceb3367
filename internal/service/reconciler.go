package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fleet-admin/internal/models"
)

// Reconciler matches a validated candidate against the stored organ
// identified by the natural key (name, organ type, tenant) and
// computes the minimal diff of columns that actually changed.
type Reconciler struct {
	organs   OrganStore
	refs     *ReferenceResolver
	tenantID int64
}

func NewReconciler(organs OrganStore, refs *ReferenceResolver, tenantID int64) *Reconciler {
	return &Reconciler{organs: organs, refs: refs, tenantID: tenantID}
}

// Reconcile resolves the target entity and builds the diff. The
// candidate must already have passed validation, so reference names
// resolve and typed values parse. An empty diff on a matched row means
// a no-op update; the caller still counts it as updated.
func (rc *Reconciler) Reconcile(ctx context.Context, rec models.CandidateRecord) (models.MatchResult, map[string]interface{}, []models.ImportError) {
	name := rec.Fields[FieldNom]
	typeName := rec.Fields[FieldTypeOrgane]
	typeID, _ := rc.refs.Resolve(models.RefOrganTypes, typeName)

	// The natural key is not store-enforced as unique, so confirm
	// uniqueness before fetching. Never silently pick one of several.
	count, err := rc.organs.CountByNaturalKey(ctx, rc.tenantID, name, typeID)
	if err != nil {
		return models.MatchResult{Status: models.MatchUnmatched}, nil, []models.ImportError{lookupError(rec, name, err)}
	}

	switch {
	case count == 0:
		return models.MatchResult{Status: models.MatchUnmatched}, nil, []models.ImportError{{
			Row:      rec.SheetRow(),
			Field:    "Nom",
			Value:    name,
			Message:  fmt.Sprintf("organ %q of type %q does not exist", name, typeName),
			Severity: models.SeverityError,
		}}
	case count > 1:
		return models.MatchResult{Status: models.MatchAmbiguous}, nil, []models.ImportError{{
			Row:      rec.SheetRow(),
			Field:    "Nom",
			Value:    name,
			Message:  fmt.Sprintf("%d organs match %q of type %q, resolve the duplicates before importing", count, name, typeName),
			Severity: models.SeverityError,
		}}
	}

	organ, err := rc.organs.FindByNaturalKey(ctx, rc.tenantID, name, typeID)
	if err != nil {
		return models.MatchResult{Status: models.MatchUnmatched}, nil, []models.ImportError{lookupError(rec, name, err)}
	}

	diff := rc.buildDiff(rec, organ)
	return models.MatchResult{Status: models.MatchMatched, EntityID: organ.ID}, diff, nil
}

// buildDiff compares every mapped, non-empty field against the stored
// organ. Only changed columns enter the diff so the write stays
// minimal and auditable. Empty cells keep the existing value.
func (rc *Reconciler) buildDiff(rec models.CandidateRecord, organ *models.Organ) map[string]interface{} {
	diff := make(map[string]interface{})

	if v := rec.Fields[FieldNouveauType]; v != "" {
		if id, ok := rc.refs.Resolve(models.RefOrganTypes, v); ok && id != organ.OrganTypeID {
			diff["organ_type_id"] = id
		}
	}
	if v := rec.Fields[FieldSite]; v != "" {
		if id, ok := rc.refs.Resolve(models.RefSites, v); ok {
			if organ.SiteID == nil || *organ.SiteID != id {
				diff["site_id"] = id
			}
		}
	}
	if v := rec.Fields[FieldMarque]; v != "" && v != organ.Marque {
		diff["marque"] = v
	}
	if v := rec.Fields[FieldModele]; v != "" && v != organ.Modele {
		diff["modele"] = v
	}
	if v := rec.Fields[FieldNumeroSerie]; v != "" && v != organ.NumeroSerie {
		diff["numero_serie"] = v
	}
	if v := rec.Fields[FieldDateMiseService]; v != "" {
		if t, err := time.Parse(DateLayout, v); err == nil {
			if organ.DateMiseService == nil || !organ.DateMiseService.Equal(t) {
				diff["date_mise_service"] = t
			}
		}
	}
	if v := rec.Fields[FieldCout]; v != "" {
		if d, err := ParseDecimal(v); err == nil && !d.Equal(organ.Cout) {
			diff["cout"] = d
		}
	}
	if v := rec.Fields[FieldCriticite]; v != "" {
		if normalized := strings.ToLower(v); normalized != organ.Criticite {
			diff["criticite"] = normalized
		}
	}
	if v := rec.Fields[FieldActif]; v != "" {
		if b, ok := ParseBooleanToken(v); ok && b != organ.Actif {
			diff["actif"] = b
		}
	}

	return diff
}

func lookupError(rec models.CandidateRecord, name string, err error) models.ImportError {
	return models.ImportError{
		Row:      rec.SheetRow(),
		Field:    "Nom",
		Value:    name,
		Message:  fmt.Sprintf("failed to look up organ: %v", err),
		Severity: models.SeverityError,
	}
}
