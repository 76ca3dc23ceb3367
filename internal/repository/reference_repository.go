package repository

import (
	"context"
	"fmt"

	"fleet-admin/internal/models"

	"github.com/jmoiron/sqlx"
)

// ReferenceRepository serves the tenant-scoped lookup tables the
// import pipeline resolves names against.
type ReferenceRepository struct {
	db *sqlx.DB
}

func NewReferenceRepository(db *sqlx.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

func (r *ReferenceRepository) LoadAll(ctx context.Context, tenantID int64, kind string) ([]models.Reference, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	var refs []models.Reference
	query := fmt.Sprintf("SELECT id, tenant_id, name FROM %s WHERE tenant_id = ? ORDER BY name", table)
	if err := r.db.SelectContext(ctx, &refs, query, tenantID); err != nil {
		return nil, err
	}
	return refs, nil
}

// tableFor keeps the kind→table mapping closed so no caller-supplied
// string ever reaches the query text.
func tableFor(kind string) (string, error) {
	switch kind {
	case models.RefOrganTypes:
		return "organ_types", nil
	case models.RefSites:
		return "sites", nil
	default:
		return "", fmt.Errorf("unknown reference kind: %s", kind)
	}
}
