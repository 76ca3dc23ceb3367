package models

// Reference table kinds preloaded for an import run.
const (
	RefOrganTypes = "organ_types"
	RefSites      = "sites"
)

// Reference is one entry of a tenant-scoped lookup table
// (organ types, sites) used to resolve names in imported spreadsheets.
type Reference struct {
	ID       int64  `db:"id" json:"id"`
	TenantID int64  `db:"tenant_id" json:"tenant_id"`
	Name     string `db:"name" json:"name"`
}
