package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"fleet-admin/internal/config"
	"fleet-admin/internal/handler"
	"fleet-admin/internal/repository"
	"fleet-admin/internal/service"
	"fleet-admin/internal/utils"

	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// ImportTaskHandler runs deferred organ imports enqueued by the API.
// The pipeline itself is identical to the synchronous path; only the
// transport differs.
type ImportTaskHandler struct {
	importService *service.ImportService
	logger        *logrus.Logger
	cfg           *config.Config
}

func NewImportTaskHandler(db *sqlx.DB, cfg *config.Config) *ImportTaskHandler {
	organRepo := repository.NewOrganRepository(db)
	referenceRepo := repository.NewReferenceRepository(db)
	runRepo := repository.NewImportRunRepository(db)
	logger := utils.GetLogger()

	return &ImportTaskHandler{
		importService: service.NewImportService(organRepo, referenceRepo, runRepo, logger, cfg.ApplyWorkers),
		logger:        logger,
		cfg:           cfg,
	}
}

func (h *ImportTaskHandler) Handle(ctx context.Context, task *asynq.Task) error {
	var payload handler.OrganImportPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid task payload: %w", err)
	}

	rows, err := service.ReadWorkbookRows(payload.FilePath)
	if err != nil {
		return fmt.Errorf("failed to read workbook %s: %w", payload.FilePath, err)
	}
	defer os.Remove(payload.FilePath)

	runCtx, cancel := context.WithTimeout(ctx, h.cfg.ImportTimeout)
	defer cancel()

	result, err := h.importService.Run(runCtx, payload.TenantID, payload.UserID, payload.FileName, rows)
	if err != nil {
		return fmt.Errorf("import run failed: %w", err)
	}

	h.logger.WithFields(logrus.Fields{
		"tenant_id": payload.TenantID,
		"file_name": payload.FileName,
		"updated":   result.Summary.Updated,
		"errors":    result.Summary.Errors,
	}).Info("deferred import completed")

	return nil
}
