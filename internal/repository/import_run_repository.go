package repository

import (
	"context"
	"database/sql"
	"errors"

	"fleet-admin/internal/models"

	"github.com/jmoiron/sqlx"
)

type ImportRunRepository struct {
	db *sqlx.DB
}

func NewImportRunRepository(db *sqlx.DB) *ImportRunRepository {
	return &ImportRunRepository{db: db}
}

func (r *ImportRunRepository) Create(ctx context.Context, run *models.ImportRun) error {
	query := `INSERT INTO import_runs (tenant_id, user_id, run_code, file_name, file_type,
	          total_rows, created_rows, updated_rows, error_rows, warning_rows,
	          status, error_message, details)
	          VALUES (:tenant_id, :user_id, :run_code, :file_name, :file_type,
	          :total_rows, :created_rows, :updated_rows, :error_rows, :warning_rows,
	          :status, :error_message, :details)`
	result, err := r.db.NamedExecContext(ctx, query, run)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	run.ID = id
	return nil
}

func (r *ImportRunRepository) FindByRunCode(ctx context.Context, tenantID int64, runCode string) (*models.ImportRun, error) {
	var run models.ImportRun
	query := "SELECT * FROM import_runs WHERE tenant_id = ? AND run_code = ? LIMIT 1"
	err := r.db.GetContext(ctx, &run, query, tenantID, runCode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *ImportRunRepository) FindByTenant(ctx context.Context, tenantID int64, limit, offset int) ([]models.ImportRun, int, error) {
	var runs []models.ImportRun
	var total int

	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM import_runs WHERE tenant_id = ?", tenantID); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM import_runs WHERE tenant_id = ? ORDER BY created_at DESC LIMIT ? OFFSET ?"
	if err := r.db.SelectContext(ctx, &runs, query, tenantID, limit, offset); err != nil {
		return nil, 0, err
	}

	return runs, total, nil
}
