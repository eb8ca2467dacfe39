package postgres

import (
	"context"

	"basekit/internal/core/entity"
	"basekit/internal/domain"
	"basekit/internal/domain/address"
)

// Compile-time check that AddressRepo implements address.Repository.
var _ address.Repository = (*AddressRepo)(nil)

// AddressRepo persists addresses in the "addresses" table.
type AddressRepo struct {
	*SoftDeleteRepo[*address.Address]
}

// NewAddressRepo creates the address repository.
func NewAddressRepo(txm *TxManager) *AddressRepo {
	return &AddressRepo{
		SoftDeleteRepo: NewSoftDeleteRepo(
			txm,
			"addresses",
			func() *address.Address { return &address.Address{} },
			WithSearchColumns[*address.Address]("logradouro", "bairro", "localidade", "cep"),
		),
	}
}

// List returns active addresses.
func (r *AddressRepo) List(ctx context.Context, f domain.ListFilter) (domain.ListResult[*address.Address], error) {
	return r.Active().List(ctx, f)
}

// ListDeleted returns soft-deleted addresses.
func (r *AddressRepo) ListDeleted(ctx context.Context, f domain.ListFilter) (domain.ListResult[*address.Address], error) {
	return r.Deleted().List(ctx, f)
}

// ListAll returns addresses regardless of deletion state.
func (r *AddressRepo) ListAll(ctx context.Context, f domain.ListFilter) (domain.ListResult[*address.Address], error) {
	return r.Global().List(ctx, f)
}

// ListByOwner returns active addresses attached to one owner.
func (r *AddressRepo) ListByOwner(ctx context.Context, owner entity.Ref, f domain.ListFilter) (domain.ListResult[*address.Address], error) {
	return r.OwnedBy(owner).List(ctx, f)
}

// RestoreWhere bulk-restores deleted addresses matching the owner
// association in a single UPDATE.
func (r *AddressRepo) RestoreWhere(ctx context.Context, owner entity.Ref) (int64, error) {
	return r.Deleted().Restore(ctx, ownerConds(owner)...)
}
