package service

import "fleet-admin/internal/models"

// Canonical field keys recognized by the organ update import.
const (
	FieldNom             = "nom"
	FieldTypeOrgane      = "type_organe"
	FieldNouveauType     = "nouveau_type_organe"
	FieldSite            = "site"
	FieldMarque          = "marque"
	FieldModele          = "modele"
	FieldNumeroSerie     = "numero_serie"
	FieldDateMiseService = "date_mise_service"
	FieldCout            = "cout"
	FieldCriticite       = "criticite"
	FieldActif           = "actif"
)

type FieldKind int

const (
	KindText FieldKind = iota
	KindDecimal
	KindDate
	KindBool
	KindEnum
	KindReference
)

// FieldSpec declares how one canonical field is validated. Rules are
// independent of each other; the validator runs all of them for a row.
type FieldSpec struct {
	Key      string
	Label    string
	Required bool
	Kind     FieldKind
	Enum     []string
	RefKind  string
}

// OrganFieldSpecs returns the validation table for the organ update
// import. Nom and Type organe form the natural key and are required;
// everything else only overwrites the stored value when non-empty.
func OrganFieldSpecs() []FieldSpec {
	return []FieldSpec{
		{Key: FieldNom, Label: "Nom", Required: true, Kind: KindText},
		{Key: FieldTypeOrgane, Label: "Type organe", Required: true, Kind: KindReference, RefKind: models.RefOrganTypes},
		{Key: FieldNouveauType, Label: "Nouveau type organe", Kind: KindReference, RefKind: models.RefOrganTypes},
		{Key: FieldSite, Label: "Site", Kind: KindReference, RefKind: models.RefSites},
		{Key: FieldMarque, Label: "Marque", Kind: KindText},
		{Key: FieldModele, Label: "Modele", Kind: KindText},
		{Key: FieldNumeroSerie, Label: "Numero de serie", Kind: KindText},
		{Key: FieldDateMiseService, Label: "Date mise en service", Kind: KindDate},
		{Key: FieldCout, Label: "Cout", Kind: KindDecimal},
		{Key: FieldCriticite, Label: "Criticite", Kind: KindEnum, Enum: models.ValidCriticites},
		{Key: FieldActif, Label: "Actif", Kind: KindBool},
	}
}

func specByKey(specs []FieldSpec, key string) (FieldSpec, bool) {
	for _, s := range specs {
		if s.Key == key {
			return s, true
		}
	}
	return FieldSpec{}, false
}
