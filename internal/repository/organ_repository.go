package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"fleet-admin/internal/models"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("record not found")

type OrganRepository struct {
	db *sqlx.DB
}

func NewOrganRepository(db *sqlx.DB) *OrganRepository {
	return &OrganRepository{db: db}
}

func (r *OrganRepository) FindAll(ctx context.Context, tenantID int64, limit, offset int, search string) ([]models.Organ, int, error) {
	var organs []models.Organ
	var total int

	countQuery := "SELECT COUNT(*) FROM organs WHERE tenant_id = ?"
	listQuery := "SELECT * FROM organs WHERE tenant_id = ?"
	args := []interface{}{tenantID}

	if search != "" {
		countQuery += " AND (name LIKE ? OR marque LIKE ? OR numero_serie LIKE ?)"
		listQuery += " AND (name LIKE ? OR marque LIKE ? OR numero_serie LIKE ?)"
		like := "%" + search + "%"
		args = append(args, like, like, like)
	}

	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	listQuery += " ORDER BY name LIMIT ? OFFSET ?"
	args = append(args, limit, offset)
	if err := r.db.SelectContext(ctx, &organs, listQuery, args...); err != nil {
		return nil, 0, err
	}

	return organs, total, nil
}

func (r *OrganRepository) FindByID(ctx context.Context, tenantID, id int64) (*models.Organ, error) {
	var organ models.Organ
	query := "SELECT * FROM organs WHERE tenant_id = ? AND id = ? LIMIT 1"
	err := r.db.GetContext(ctx, &organ, query, tenantID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &organ, nil
}

// CountByNaturalKey reports how many organs share the natural key
// (name, type) inside one tenant. The import pipeline refuses to pick
// a match when the count exceeds one.
func (r *OrganRepository) CountByNaturalKey(ctx context.Context, tenantID int64, name string, organTypeID int64) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM organs WHERE tenant_id = ? AND LOWER(name) = LOWER(?) AND organ_type_id = ?"
	if err := r.db.GetContext(ctx, &count, query, tenantID, name, organTypeID); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *OrganRepository) FindByNaturalKey(ctx context.Context, tenantID int64, name string, organTypeID int64) (*models.Organ, error) {
	var organ models.Organ
	query := "SELECT * FROM organs WHERE tenant_id = ? AND LOWER(name) = LOWER(?) AND organ_type_id = ? LIMIT 1"
	err := r.db.GetContext(ctx, &organ, query, tenantID, name, organTypeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &organ, nil
}

// UpdateFields applies a partial update containing only the changed
// columns. Columns are ordered so the generated SQL is stable.
func (r *OrganRepository) UpdateFields(ctx context.Context, tenantID, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	columns := make([]string, 0, len(fields))
	for col := range fields {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	sets := make([]string, 0, len(columns)+1)
	args := make([]interface{}, 0, len(columns)+2)
	for _, col := range columns {
		sets = append(sets, col+" = ?")
		args = append(args, fields[col])
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, tenantID, id)

	query := fmt.Sprintf("UPDATE organs SET %s WHERE tenant_id = ? AND id = ?", strings.Join(sets, ", "))
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// SampleByTenant returns up to limit organs used as illustrative rows
// in the generated import template.
func (r *OrganRepository) SampleByTenant(ctx context.Context, tenantID int64, limit int) ([]models.Organ, error) {
	var organs []models.Organ
	query := "SELECT * FROM organs WHERE tenant_id = ? ORDER BY id LIMIT ?"
	if err := r.db.SelectContext(ctx, &organs, query, tenantID, limit); err != nil {
		return nil, err
	}
	return organs, nil
}

func (r *OrganRepository) GetAllByTenant(ctx context.Context, tenantID int64) ([]models.Organ, error) {
	var organs []models.Organ
	query := "SELECT * FROM organs WHERE tenant_id = ? ORDER BY name"
	if err := r.db.SelectContext(ctx, &organs, query, tenantID); err != nil {
		return nil, err
	}
	return organs, nil
}

func (r *OrganRepository) Create(ctx context.Context, organ *models.Organ) error {
	query := `INSERT INTO organs (tenant_id, name, organ_type_id, site_id, marque, modele,
	          numero_serie, date_mise_service, cout, criticite, actif)
	          VALUES (:tenant_id, :name, :organ_type_id, :site_id, :marque, :modele,
	          :numero_serie, :date_mise_service, :cout, :criticite, :actif)`
	result, err := r.db.NamedExecContext(ctx, query, organ)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	organ.ID = id
	return nil
}

func (r *OrganRepository) Update(ctx context.Context, organ *models.Organ) error {
	query := `UPDATE organs SET name = :name, organ_type_id = :organ_type_id, site_id = :site_id,
	          marque = :marque, modele = :modele, numero_serie = :numero_serie,
	          date_mise_service = :date_mise_service, cout = :cout, criticite = :criticite,
	          actif = :actif, updated_at = NOW()
	          WHERE tenant_id = :tenant_id AND id = :id`
	_, err := r.db.NamedExecContext(ctx, query, organ)
	return err
}

func (r *OrganRepository) Delete(ctx context.Context, tenantID, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM organs WHERE tenant_id = ? AND id = ?", tenantID, id)
	return err
}
