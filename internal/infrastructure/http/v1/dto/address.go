package dto

import (
	"basekit/internal/domain/address"
)

// AddressResponse is the API representation of an address.
type AddressResponse struct {
	EnvelopeResponse

	CEP                *string `json:"cep,omitempty"`
	Logradouro         *string `json:"logradouro,omitempty"`
	Numero             *string `json:"numero,omitempty"`
	Bairro             *string `json:"bairro,omitempty"`
	Localidade         *string `json:"localidade,omitempty"`
	UF                 *string `json:"uf,omitempty"`
	InscricaoEstadual  *string `json:"inscricaoEstadual,omitempty"`
	InscricaoMunicipal *string `json:"inscricaoMunicipal,omitempty"`
	CodigoMunicipio    *string `json:"codigoMunicipio,omitempty"`
	Complemento        *string `json:"complemento,omitempty"`
	Observacao         *string `json:"observacao,omitempty"`

	OwnerType *string `json:"ownerType,omitempty"`
	OwnerID   *string `json:"ownerId,omitempty"`

	FullAddress string `json:"fullAddress"`
}

// FromAddress creates AddressResponse from the domain entity.
func FromAddress(a *address.Address) AddressResponse {
	resp := AddressResponse{
		EnvelopeResponse:   FromEnvelope(a.ID, a.Lifecycle),
		CEP:                a.CEP,
		Logradouro:         a.Logradouro,
		Numero:             a.Numero,
		Bairro:             a.Bairro,
		Localidade:         a.Localidade,
		InscricaoEstadual:  a.InscricaoEstadual,
		InscricaoMunicipal: a.InscricaoMunicipal,
		CodigoMunicipio:    a.CodigoMunicipio,
		Complemento:        a.Complemento,
		Observacao:         a.Observacao,
		OwnerType:          a.ContentType,
		FullAddress:        a.FullAddress(),
	}
	if a.UF != nil {
		uf := string(*a.UF)
		resp.UF = &uf
	}
	if a.ObjectID != nil {
		oid := a.ObjectID.String()
		resp.OwnerID = &oid
	}
	return resp
}

// FromAddresses maps a slice of addresses.
func FromAddresses(items []*address.Address) []AddressResponse {
	out := make([]AddressResponse, 0, len(items))
	for _, a := range items {
		out = append(out, FromAddress(a))
	}
	return out
}

// AddressPayload carries the mutable address fields for create/update.
type AddressPayload struct {
	CEP                *string `json:"cep"`
	Logradouro         *string `json:"logradouro"`
	Numero             *string `json:"numero"`
	Bairro             *string `json:"bairro"`
	Localidade         *string `json:"localidade"`
	UF                 *string `json:"uf"`
	InscricaoEstadual  *string `json:"inscricaoEstadual"`
	InscricaoMunicipal *string `json:"inscricaoMunicipal"`
	CodigoMunicipio    *string `json:"codigoMunicipio"`
	Complemento        *string `json:"complemento"`
	Observacao         *string `json:"observacao"`
}

// Apply copies the present payload fields onto the entity. Absent fields
// are left untouched.
func (p AddressPayload) Apply(a *address.Address) {
	if p.CEP != nil {
		a.CEP = p.CEP
	}
	if p.Logradouro != nil {
		a.Logradouro = p.Logradouro
	}
	if p.Numero != nil {
		a.Numero = p.Numero
	}
	if p.Bairro != nil {
		a.Bairro = p.Bairro
	}
	if p.Localidade != nil {
		a.Localidade = p.Localidade
	}
	if p.UF != nil {
		uf := address.UF(*p.UF)
		a.UF = &uf
	}
	if p.InscricaoEstadual != nil {
		a.InscricaoEstadual = p.InscricaoEstadual
	}
	if p.InscricaoMunicipal != nil {
		a.InscricaoMunicipal = p.InscricaoMunicipal
	}
	if p.CodigoMunicipio != nil {
		a.CodigoMunicipio = p.CodigoMunicipio
	}
	if p.Complemento != nil {
		a.Complemento = p.Complemento
	}
	if p.Observacao != nil {
		a.Observacao = p.Observacao
	}
}

// CreateAddressRequest for creating addresses. The owner is optional; an
// unowned address is valid.
type CreateAddressRequest struct {
	AddressPayload
	OwnerType *string `json:"ownerType"`
	OwnerID   *string `json:"ownerId"`
}
