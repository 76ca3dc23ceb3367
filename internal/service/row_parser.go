package service

import (
	"strings"

	"fleet-admin/internal/models"
)

// ParseRow turns one raw body row into a CandidateRecord using the
// header map. Rows shorter than the header row are padded with empty
// cells; emptiness is the validator's concern, not a parse failure.
func ParseRow(row []string, headers HeaderMap, bodyIndex int) models.CandidateRecord {
	fields := make(map[string]string, len(headers))
	for key, col := range headers {
		fields[key] = cellAt(row, col)
	}
	return models.CandidateRecord{RowIndex: bodyIndex, Fields: fields}
}

func cellAt(row []string, index int) string {
	if index < len(row) {
		return strings.TrimSpace(row[index])
	}
	return ""
}
