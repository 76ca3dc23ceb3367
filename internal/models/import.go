package models

// Severity of an ImportError. A row with only warnings is still
// applied; a row with at least one error is skipped entirely.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// ImportError describes one problem found on one spreadsheet row.
// Row is the 1-based row number as seen in the spreadsheet editor
// (body row index + 2, the first sheet row being the header).
type ImportError struct {
	Row      int    `json:"row"`
	Field    string `json:"field"`
	Value    string `json:"value"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// ImportSummary counts the outcome of a run. Every body row lands in
// exactly one of Updated or Errors; Created stays 0 in the update-only
// pipeline. Warnings counts rows that carried at least one warning.
type ImportSummary struct {
	Total    int `json:"total"`
	Created  int `json:"created"`
	Updated  int `json:"updated"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}

// CandidateRecord is one spreadsheet row after header mapping, before
// validation. Fields holds raw cell text keyed by canonical field key;
// only mapped columns appear. RowIndex is the 0-based body row index.
type CandidateRecord struct {
	RowIndex int
	Fields   map[string]string
}

// SheetRow returns the 1-based spreadsheet row number for messages.
func (r CandidateRecord) SheetRow() int {
	return r.RowIndex + 2
}

// Match statuses produced by the reconciler.
const (
	MatchMatched   = "matched"
	MatchUnmatched = "unmatched"
	MatchAmbiguous = "ambiguous"
)

// MatchResult is the outcome of resolving a candidate against the
// entity store by natural key.
type MatchResult struct {
	Status   string `json:"status"`
	EntityID int64  `json:"entity_id,omitempty"`
}

// ImportResult is the payload returned to the caller after a run.
type ImportResult struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    []int64       `json:"data"`
	Errors  []ImportError `json:"errors"`
	Summary ImportSummary `json:"summary"`
}
