package uowmock

import (
	"context"
	"errors"

	"opsplatform-backend/internal/domain/purchase"
	"opsplatform-backend/internal/domain/reimburse"
	"opsplatform-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn          func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinPurchaseTxFn  func(ctx context.Context, id string, fn func(r uow.Repos, p *purchase.Request) error) error
	WithinReimburseTxFn func(ctx context.Context, id string, fn func(r uow.Repos, rr *reimburse.Request) error) error
}

func New() *UoW { return &UoW{} }

// Passthrough runs every body directly against repos, loading the locked
// request through the matching repository.
func Passthrough(repos uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(ctx context.Context, fn func(uow.Repos) error) error {
			return fn(repos)
		},
		WithinPurchaseTxFn: func(ctx context.Context, id string, fn func(uow.Repos, *purchase.Request) error) error {
			p, err := repos.Purchases.GetByIDForUpdate(ctx, id)
			if err != nil {
				return err
			}
			return fn(repos, p)
		},
		WithinReimburseTxFn: func(ctx context.Context, id string, fn func(uow.Repos, *reimburse.Request) error) error {
			rr, err := repos.Reimburses.GetByIDForUpdate(ctx, id)
			if err != nil {
				return err
			}
			return fn(repos, rr)
		},
	}
}

func (m *UoW) Reset() { *m = UoW{} }

// Methods implementing UnitOfWork
func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinPurchaseTx(ctx context.Context, id string, fn func(r uow.Repos, p *purchase.Request) error) error {
	if m.WithinPurchaseTxFn != nil {
		return m.WithinPurchaseTxFn(ctx, id, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinReimburseTx(ctx context.Context, id string, fn func(r uow.Repos, rr *reimburse.Request) error) error {
	if m.WithinReimburseTxFn != nil {
		return m.WithinReimburseTxFn(ctx, id, fn)
	}
	return errUnimplemented
}
