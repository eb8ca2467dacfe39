// Package address provides the Brazilian postal address entity.
// Addresses attach to an arbitrary owner via generic association and use
// the full soft-delete envelope and change tracking.
package address

import (
	"context"
	"regexp"
	"strings"

	"basekit/internal/core/apperror"
	"basekit/internal/core/entity"
)

// TypeTag identifies addresses in generic associations.
const TypeTag = "addresses"

var cepRE = regexp.MustCompile(`^\d{5}-?\d{3}$`)

// UF is a Brazilian federative unit code.
type UF string

// The 26 states plus the Distrito Federal.
var validUFs = map[UF]struct{}{
	"AC": {}, "AL": {}, "AP": {}, "AM": {}, "BA": {}, "CE": {}, "DF": {},
	"ES": {}, "GO": {}, "MA": {}, "MT": {}, "MS": {}, "MG": {}, "PA": {},
	"PB": {}, "PR": {}, "PE": {}, "PI": {}, "RJ": {}, "RN": {}, "RS": {},
	"RO": {}, "RR": {}, "SC": {}, "SP": {}, "SE": {}, "TO": {},
}

// Valid reports whether the code is a known UF.
func (u UF) Valid() bool {
	_, ok := validUFs[u]
	return ok
}

// Address is a postal address generically associated to any owner entity.
type Address struct {
	entity.Base

	CEP                *string `db:"cep" json:"cep,omitempty"`
	Logradouro         *string `db:"logradouro" json:"logradouro,omitempty"`
	Numero             *string `db:"numero" json:"numero,omitempty"`
	Bairro             *string `db:"bairro" json:"bairro,omitempty"`
	Localidade         *string `db:"localidade" json:"localidade,omitempty"`
	UF                 *UF     `db:"uf" json:"uf,omitempty"`
	InscricaoEstadual  *string `db:"inscricao_estadual" json:"inscricaoEstadual,omitempty"`
	InscricaoMunicipal *string `db:"inscricao_municipal" json:"inscricaoMunicipal,omitempty"`
	CodigoMunicipio    *string `db:"codigo_municipio" json:"codigoMunicipio,omitempty"`
	Complemento        *string `db:"complemento" json:"complemento,omitempty"`
	Observacao         *string `db:"observacao" json:"observacao,omitempty"`

	// Owner is the generic association to whatever entity this address
	// belongs to.
	entity.Ref
}

// New creates an address owned by the given entity, with the snapshot
// captured so later mutations diff against these initial values.
func New(owner entity.SoftDeletable) *Address {
	a := &Address{Base: entity.NewBase()}
	if owner != nil {
		a.Ref = entity.NewRef(owner)
	}
	entity.CaptureSnapshot(a)
	return a
}

// TypeTag implements entity.SoftDeletable.
func (a *Address) TypeTag() string {
	return TypeTag
}

// WatchedFields declares every address component for change tracking.
func (a *Address) WatchedFields() []entity.Field {
	return []entity.Field{
		{Name: "cep", Value: a.CEP},
		{Name: "logradouro", Value: a.Logradouro},
		{Name: "numero", Value: a.Numero},
		{Name: "bairro", Value: a.Bairro},
		{Name: "localidade", Value: a.Localidade},
		{Name: "uf", Value: a.UF},
		{Name: "inscricao_estadual", Value: a.InscricaoEstadual},
		{Name: "inscricao_municipal", Value: a.InscricaoMunicipal},
		{Name: "codigo_municipio", Value: a.CodigoMunicipio},
		{Name: "complemento", Value: a.Complemento},
		{Name: "observacao", Value: a.Observacao},
	}
}

// Validate implements entity.Validatable-style invariant checks.
func (a *Address) Validate(ctx context.Context) error {
	if a.UF != nil && *a.UF != "" && !a.UF.Valid() {
		return apperror.NewValidation("invalid UF code").
			WithDetail("field", "uf").
			WithDetail("value", string(*a.UF))
	}
	if a.CEP != nil && *a.CEP != "" && !cepRE.MatchString(*a.CEP) {
		return apperror.NewValidation("invalid CEP format").
			WithDetail("field", "cep")
	}
	return nil
}

// FullAddress renders the address as a single display line.
func (a *Address) FullAddress() string {
	var b strings.Builder
	if a.Logradouro != nil && *a.Logradouro != "" {
		b.WriteString(*a.Logradouro)
	}
	if a.Numero != nil && *a.Numero != "" {
		b.WriteString(", ")
		b.WriteString(*a.Numero)
	}
	if a.Bairro != nil && *a.Bairro != "" {
		b.WriteString(", ")
		b.WriteString(*a.Bairro)
	}
	if a.Localidade != nil && *a.Localidade != "" {
		b.WriteString(", ")
		b.WriteString(*a.Localidade)
	}
	if a.UF != nil && *a.UF != "" {
		b.WriteString(" - ")
		b.WriteString(string(*a.UF))
	}
	if a.Complemento != nil && *a.Complemento != "" {
		b.WriteString(" (")
		b.WriteString(*a.Complemento)
		b.WriteString(")")
	}
	return b.String()
}
