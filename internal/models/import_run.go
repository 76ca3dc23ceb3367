package models

import (
	"encoding/json"
	"time"
)

// Import run statuses.
const (
	ImportStatusSuccess = "SUCCESS"
	ImportStatusPartial = "PARTIAL"
	ImportStatusFailed  = "FAILED"
)

// ImportRun is the audit record persisted once per import run. It is
// the only artifact of a run that outlives the request.
type ImportRun struct {
	ID           int64     `db:"id" json:"id"`
	TenantID     int64     `db:"tenant_id" json:"tenant_id"`
	UserID       int64     `db:"user_id" json:"user_id"`
	RunCode      string    `db:"run_code" json:"run_code"`
	FileName     string    `db:"file_name" json:"file_name"`
	FileType     string    `db:"file_type" json:"file_type"`
	TotalRows    int       `db:"total_rows" json:"total_rows"`
	CreatedRows  int       `db:"created_rows" json:"created_rows"`
	UpdatedRows  int       `db:"updated_rows" json:"updated_rows"`
	ErrorRows    int       `db:"error_rows" json:"error_rows"`
	WarningRows  int       `db:"warning_rows" json:"warning_rows"`
	Status       string    `db:"status" json:"status"`
	ErrorMessage string    `db:"error_message" json:"error_message"`
	Details      string    `db:"details" json:"details"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// ImportRunDetails is serialized into ImportRun.Details so the run
// can answer "what changed" without re-reading the spreadsheet.
type ImportRunDetails struct {
	UpdatedIDs []int64       `json:"updated_ids"`
	Errors     []ImportError `json:"errors"`
}

func (d ImportRunDetails) Encode() string {
	b, err := json.Marshal(d)
	if err != nil {
		return "{}"
	}
	return string(b)
}
