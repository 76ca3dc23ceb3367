package worker

import (
	"fleet-admin/internal/config"
	"fleet-admin/internal/handler"

	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
)

func RegisterHandlers(mux *asynq.ServeMux, db *sqlx.DB, cfg *config.Config) {
	importHandler := NewImportTaskHandler(db, cfg)
	mux.HandleFunc(handler.TaskOrganImport, importHandler.Handle)
}
