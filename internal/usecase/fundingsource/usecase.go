package fundingsource

import (
	"context"

	"opsplatform-backend/internal/domain/access"
	domain "opsplatform-backend/internal/domain/fundingsource"
	"opsplatform-backend/internal/domain/uow"
	"opsplatform-backend/internal/domain/workflow"
	"opsplatform-backend/pkg/id"

	"github.com/shopspring/decimal"
)

type SaveInput struct {
	Name          string
	Type          domain.Type
	Provider      domain.Provider
	AccountNumber string
	// Balance is only taken on create; later changes go through TopUp and payments.
	Balance decimal.Decimal
}

type Usecase struct {
	repo domain.Repository
	uow  uow.UnitOfWork
}

func NewUsecase(repo domain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: repo, uow: tx}
}

func (u *Usecase) List(ctx context.Context, view domain.View) ([]domain.Source, error) {
	all, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Filter(all, view), nil
}

func (u *Usecase) Get(ctx context.Context, sourceID string) (*domain.Source, error) {
	return u.repo.GetByID(ctx, sourceID)
}

// Create appends the source at the end of the manual order, active and unarchived.
func (u *Usecase) Create(ctx context.Context, actor access.Actor, in SaveInput) (*domain.Source, error) {
	if !actor.TeamAccess {
		return nil, workflow.ErrForbidden
	}
	s := &domain.Source{
		ID:            id.NewID32(),
		Name:          in.Name,
		Type:          in.Type,
		Provider:      in.Provider,
		AccountNumber: in.AccountNumber,
		Balance:       workflow.Money(in.Balance),
		IsActive:      true,
	}
	v, err := s.Normalize()
	if err != nil {
		return nil, err
	}
	if err := workflow.Check(v); err != nil {
		return nil, err
	}
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		last, err := r.FundingSources.MaxPosition(ctx)
		if err != nil {
			return err
		}
		s.Position = last + 1
		return r.FundingSources.Create(ctx, s)
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (u *Usecase) Update(ctx context.Context, actor access.Actor, sourceID string, in SaveInput) (*domain.Source, error) {
	return u.mutate(ctx, actor, sourceID, func(s *domain.Source) error {
		s.Name = in.Name
		s.Type = in.Type
		s.Provider = in.Provider
		s.AccountNumber = in.AccountNumber
		v, err := s.Normalize()
		if err != nil {
			return err
		}
		return workflow.Check(v)
	})
}

func (u *Usecase) SetActive(ctx context.Context, actor access.Actor, sourceID string, active bool) (*domain.Source, error) {
	return u.mutate(ctx, actor, sourceID, func(s *domain.Source) error {
		s.IsActive = active
		return nil
	})
}

// SetArchived is independent of the active flag.
func (u *Usecase) SetArchived(ctx context.Context, actor access.Actor, sourceID string, archived bool) (*domain.Source, error) {
	return u.mutate(ctx, actor, sourceID, func(s *domain.Source) error {
		s.IsArchived = archived
		return nil
	})
}

func (u *Usecase) TopUp(ctx context.Context, actor access.Actor, sourceID string, amount decimal.Decimal) (*domain.Source, error) {
	return u.mutate(ctx, actor, sourceID, func(s *domain.Source) error {
		return s.TopUp(amount)
	})
}

func (u *Usecase) mutate(ctx context.Context, actor access.Actor, sourceID string, fn func(s *domain.Source) error) (*domain.Source, error) {
	if !actor.TeamAccess {
		return nil, workflow.ErrForbidden
	}
	var out *domain.Source
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		s, err := r.FundingSources.GetByIDForUpdate(ctx, sourceID)
		if err != nil {
			return err
		}
		if err := fn(s); err != nil {
			return err
		}
		if err := r.FundingSources.Save(ctx, s); err != nil {
			return err
		}
		out = s
		return nil
	})
	return out, err
}

func (u *Usecase) Delete(ctx context.Context, actor access.Actor, sourceID string) error {
	if !actor.TeamAccess {
		return workflow.ErrForbidden
	}
	return u.repo.Delete(ctx, sourceID)
}

// Move swaps the source with its neighbour inside view and persists just the
// two changed rows. At either edge nothing is written. The reordered view is
// returned.
func (u *Usecase) Move(ctx context.Context, actor access.Actor, sourceID string, view domain.View, dir domain.Direction) ([]domain.Source, error) {
	if !actor.TeamAccess {
		return nil, workflow.ErrForbidden
	}
	var out []domain.Source
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		all, err := r.FundingSources.List(ctx)
		if err != nil {
			return err
		}
		list := domain.Filter(all, view)
		found := false
		for _, s := range list {
			if s.ID == sourceID {
				found = true
				break
			}
		}
		if !found {
			return domain.ErrNotFound
		}
		if changed := domain.MoveAdjacent(list, sourceID, dir); len(changed) > 0 {
			if err := r.FundingSources.UpdatePositions(ctx, changed); err != nil {
				return err
			}
		}
		out = list
		return nil
	})
	return out, err
}
