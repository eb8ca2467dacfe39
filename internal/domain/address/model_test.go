package address

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"basekit/internal/core/entity"
)

func strPtr(s string) *string { return &s }

func ufPtr(s string) *UF {
	u := UF(s)
	return &u
}

func TestUF_Valid(t *testing.T) {
	assert.True(t, UF("SP").Valid())
	assert.True(t, UF("DF").Valid())
	assert.False(t, UF("XX").Valid())
	assert.False(t, UF("sp").Valid())
	assert.False(t, UF("").Valid())
}

func TestAddress_Validate(t *testing.T) {
	ctx := context.Background()

	a := New(nil)
	assert.NoError(t, a.Validate(ctx))

	a.UF = ufPtr("SP")
	a.CEP = strPtr("01310-100")
	assert.NoError(t, a.Validate(ctx))

	a.CEP = strPtr("01310100")
	assert.NoError(t, a.Validate(ctx), "CEP without hyphen is accepted")

	a.CEP = strPtr("1310-100")
	assert.Error(t, a.Validate(ctx))

	a.CEP = strPtr("01310-100")
	a.UF = ufPtr("ZZ")
	assert.Error(t, a.Validate(ctx))
}

func TestAddress_WatchedFieldsOrder(t *testing.T) {
	a := New(nil)

	names := make([]string, 0)
	for _, f := range a.WatchedFields() {
		names = append(names, f.Name)
	}

	assert.Equal(t, []string{
		"cep", "logradouro", "numero", "bairro", "localidade", "uf",
		"inscricao_estadual", "inscricao_municipal", "codigo_municipio",
		"complemento", "observacao",
	}, names)
}

func TestAddress_NewCapturesSnapshot(t *testing.T) {
	a := New(nil)
	assert.True(t, a.SnapshotRef().Taken())
	assert.Equal(t, "", a.SnapshotRef().Diff(a))

	a.CEP = strPtr("01310-100")
	assert.Equal(t, "cep None -> 01310-100", a.SnapshotRef().Diff(a))
}

func TestAddress_NewWithOwner(t *testing.T) {
	owner := New(nil) // any soft-deletable works as owner
	a := New(owner)

	require.NotNil(t, a.ContentType)
	require.NotNil(t, a.ObjectID)
	assert.Equal(t, TypeTag, *a.ContentType)
	assert.Equal(t, owner.ID, *a.ObjectID)
	assert.True(t, a.Ref.Matches(owner))
}

func TestAddress_FullAddress(t *testing.T) {
	a := New(nil)
	assert.Equal(t, "", a.FullAddress())

	a.Logradouro = strPtr("Avenida Paulista")
	a.Numero = strPtr("1578")
	a.Bairro = strPtr("Bela Vista")
	a.Localidade = strPtr("São Paulo")
	a.UF = ufPtr("SP")
	a.Complemento = strPtr("andar 4")

	assert.Equal(t, "Avenida Paulista, 1578, Bela Vista, São Paulo - SP (andar 4)", a.FullAddress())
}

func TestAddress_DiffAfterMutation(t *testing.T) {
	a := New(nil)
	a.Logradouro = strPtr("Rua A")
	entity.CaptureSnapshot(a)

	a.Logradouro = strPtr("Rua B")
	a.Numero = strPtr("10")

	assert.Equal(t, "logradouro Rua A -> Rua B numero None -> 10", a.SnapshotRef().Diff(a))
}
