package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Criticite levels accepted for an organ.
var ValidCriticites = []string{"haute", "moyenne", "basse"}

// Organ is a spare-part organ mounted on the fleet. The pair
// (name, organ type) is unique per tenant and serves as the natural key
// for spreadsheet updates.
type Organ struct {
	ID              int64           `db:"id" json:"id"`
	TenantID        int64           `db:"tenant_id" json:"tenant_id"`
	Name            string          `db:"name" json:"name"`
	OrganTypeID     int64           `db:"organ_type_id" json:"organ_type_id"`
	SiteID          *int64          `db:"site_id" json:"site_id"`
	Marque          string          `db:"marque" json:"marque"`
	Modele          string          `db:"modele" json:"modele"`
	NumeroSerie     string          `db:"numero_serie" json:"numero_serie"`
	DateMiseService *time.Time      `db:"date_mise_service" json:"date_mise_service"`
	Cout            decimal.Decimal `db:"cout" json:"cout"`
	Criticite       string          `db:"criticite" json:"criticite"`
	Actif           bool            `db:"actif" json:"actif"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

type CreateOrganRequest struct {
	Name            string          `json:"name"`
	OrganTypeID     int64           `json:"organ_type_id"`
	SiteID          *int64          `json:"site_id"`
	Marque          string          `json:"marque"`
	Modele          string          `json:"modele"`
	NumeroSerie     string          `json:"numero_serie"`
	DateMiseService *time.Time      `json:"date_mise_service"`
	Cout            decimal.Decimal `json:"cout"`
	Criticite       string          `json:"criticite"`
	Actif           bool            `json:"actif"`
}
