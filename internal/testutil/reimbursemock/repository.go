package reimbursemock

import (
	"context"
	"errors"

	domain "opsplatform-backend/internal/domain/reimburse"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("reimbursemock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
// Writes default to success; reads default to errUnimplemented.
type Repo struct {
	CreateFn           func(ctx context.Context, r *domain.Request) error
	SaveFn             func(ctx context.Context, r *domain.Request) error
	DeleteFn           func(ctx context.Context, id string) error
	GetByIDFn          func(ctx context.Context, id string) (*domain.Request, error)
	GetByIDForUpdateFn func(ctx context.Context, id string) (*domain.Request, error)
	ListFn             func(ctx context.Context, scope domain.Scope) ([]domain.Request, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.Request) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, r *domain.Request) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Request, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id string) (*domain.Request, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) List(ctx context.Context, scope domain.Scope) ([]domain.Request, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, scope)
	}
	return nil, errUnimplemented
}
