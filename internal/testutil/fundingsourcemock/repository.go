package fundingsourcemock

import (
	"context"
	"errors"

	domain "opsplatform-backend/internal/domain/fundingsource"

	"github.com/shopspring/decimal"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("fundingsourcemock: method not implemented")

type Repo struct {
	CreateFn           func(ctx context.Context, s *domain.Source) error
	SaveFn             func(ctx context.Context, s *domain.Source) error
	DeleteFn           func(ctx context.Context, id string) error
	GetByIDFn          func(ctx context.Context, id string) (*domain.Source, error)
	GetByIDForUpdateFn func(ctx context.Context, id string) (*domain.Source, error)
	ListFn             func(ctx context.Context) ([]domain.Source, error)
	MaxPositionFn      func(ctx context.Context) (int, error)
	UpdatePositionsFn  func(ctx context.Context, rows []domain.Source) error
	AddBalanceFn       func(ctx context.Context, id string, delta decimal.Decimal) error
}

func (m *Repo) Create(ctx context.Context, s *domain.Source) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, s)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, s *domain.Source) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, s)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Source, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id string) (*domain.Source, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) List(ctx context.Context) ([]domain.Source, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, errUnimplemented
}

func (m *Repo) MaxPosition(ctx context.Context) (int, error) {
	if m.MaxPositionFn != nil {
		return m.MaxPositionFn(ctx)
	}
	return 0, nil
}

func (m *Repo) UpdatePositions(ctx context.Context, rows []domain.Source) error {
	if m.UpdatePositionsFn != nil {
		return m.UpdatePositionsFn(ctx, rows)
	}
	return nil
}

func (m *Repo) AddBalance(ctx context.Context, id string, delta decimal.Decimal) error {
	if m.AddBalanceFn != nil {
		return m.AddBalanceFn(ctx, id, delta)
	}
	return nil
}
