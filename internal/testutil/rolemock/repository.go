package rolemock

import (
	"context"
	"errors"

	domain "opsplatform-backend/internal/domain/role"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("rolemock: method not implemented")

type Repo struct {
	CreateFn        func(ctx context.Context, r *domain.SystemRole) error
	SaveFn          func(ctx context.Context, r *domain.SystemRole) error
	DeleteFn        func(ctx context.Context, id string) error
	GetByIDFn       func(ctx context.Context, id string) (*domain.SystemRole, error)
	GetByCodeFn     func(ctx context.Context, code string) (*domain.SystemRole, error)
	ListFn          func(ctx context.Context) ([]domain.SystemRole, error)
	MaxOrderIndexFn func(ctx context.Context) (int, error)
	UpdateOrderFn   func(ctx context.Context, roles []domain.SystemRole) error
}

func (m *Repo) Create(ctx context.Context, r *domain.SystemRole) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, r *domain.SystemRole) error {
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

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.SystemRole, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByCode(ctx context.Context, code string) (*domain.SystemRole, error) {
	if m.GetByCodeFn != nil {
		return m.GetByCodeFn(ctx, code)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) List(ctx context.Context) ([]domain.SystemRole, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, errUnimplemented
}

func (m *Repo) MaxOrderIndex(ctx context.Context) (int, error) {
	if m.MaxOrderIndexFn != nil {
		return m.MaxOrderIndexFn(ctx)
	}
	return 0, nil
}

func (m *Repo) UpdateOrder(ctx context.Context, roles []domain.SystemRole) error {
	if m.UpdateOrderFn != nil {
		return m.UpdateOrderFn(ctx, roles)
	}
	return nil
}
