package service

import (
	"context"

	"fleet-admin/internal/models"
)

// OrganStore is the slice of the entity store the import pipeline
// needs: natural-key resolution, partial updates, and read-only
// sampling for template generation.
type OrganStore interface {
	CountByNaturalKey(ctx context.Context, tenantID int64, name string, organTypeID int64) (int, error)
	FindByNaturalKey(ctx context.Context, tenantID int64, name string, organTypeID int64) (*models.Organ, error)
	UpdateFields(ctx context.Context, tenantID, id int64, fields map[string]interface{}) error
	SampleByTenant(ctx context.Context, tenantID int64, limit int) ([]models.Organ, error)
	GetAllByTenant(ctx context.Context, tenantID int64) ([]models.Organ, error)
}

// ReferenceStore loads one tenant-scoped lookup table in full.
type ReferenceStore interface {
	LoadAll(ctx context.Context, tenantID int64, kind string) ([]models.Reference, error)
}

// ImportRunStore persists the audit record of a completed run.
type ImportRunStore interface {
	Create(ctx context.Context, run *models.ImportRun) error
}
