package role

import (
	"context"
	"errors"
	"fmt"

	"opsplatform-backend/internal/domain/access"
	domain "opsplatform-backend/internal/domain/role"
	"opsplatform-backend/internal/domain/uow"
	"opsplatform-backend/internal/domain/workflow"
	"opsplatform-backend/pkg/id"
)

type SaveInput struct {
	Code        string
	Name        string
	Description string
	Status      domain.Status
}

type Usecase struct {
	repo domain.Repository
	uow  uow.UnitOfWork
}

func NewUsecase(repo domain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: repo, uow: tx}
}

func (u *Usecase) List(ctx context.Context) ([]domain.SystemRole, error) {
	return u.repo.List(ctx)
}

func (u *Usecase) Get(ctx context.Context, roleID string) (*domain.SystemRole, error) {
	return u.repo.GetByID(ctx, roleID)
}

// ensureUniqueCode fails when another role already owns code.
func ensureUniqueCode(ctx context.Context, repo domain.Repository, code, selfID string) error {
	existing, err := repo.GetByCode(ctx, code)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != selfID:
		return fmt.Errorf("%w: %s", domain.ErrDuplicateCode, code)
	}
	return nil
}

// Create appends the role at the end of the order.
func (u *Usecase) Create(ctx context.Context, actor access.Actor, in SaveInput) (*domain.SystemRole, error) {
	if !actor.CanManagePeople() {
		return nil, workflow.ErrForbidden
	}
	r := &domain.SystemRole{ID: id.NewID32(), Code: in.Code, Name: in.Name, Description: in.Description, Status: in.Status}
	if err := workflow.Check(r.Normalize()); err != nil {
		return nil, err
	}
	err := u.uow.WithinTx(ctx, func(tx uow.Repos) error {
		if err := ensureUniqueCode(ctx, tx.Roles, r.Code, ""); err != nil {
			return err
		}
		last, err := tx.Roles.MaxOrderIndex(ctx)
		if err != nil {
			return err
		}
		r.OrderIndex = last + 1
		return tx.Roles.Create(ctx, r)
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (u *Usecase) Update(ctx context.Context, actor access.Actor, roleID string, in SaveInput) (*domain.SystemRole, error) {
	if !actor.CanManagePeople() {
		return nil, workflow.ErrForbidden
	}
	var out *domain.SystemRole
	err := u.uow.WithinTx(ctx, func(tx uow.Repos) error {
		r, err := tx.Roles.GetByID(ctx, roleID)
		if err != nil {
			return err
		}
		r.Code, r.Name, r.Description, r.Status = in.Code, in.Name, in.Description, in.Status
		if err := workflow.Check(r.Normalize()); err != nil {
			return err
		}
		if err := ensureUniqueCode(ctx, tx.Roles, r.Code, r.ID); err != nil {
			return err
		}
		if err := tx.Roles.Save(ctx, r); err != nil {
			return err
		}
		out = r
		return nil
	})
	return out, err
}

// Delete removes the role together with its permission row.
func (u *Usecase) Delete(ctx context.Context, actor access.Actor, roleID string) error {
	if !actor.CanManagePeople() {
		return workflow.ErrForbidden
	}
	return u.uow.WithinTx(ctx, func(tx uow.Repos) error {
		if _, err := tx.Roles.GetByID(ctx, roleID); err != nil {
			return err
		}
		if err := tx.Permissions.Delete(ctx, roleID); err != nil {
			return err
		}
		return tx.Roles.Delete(ctx, roleID)
	})
}

// Reorder rewrites order_index of every role following ids.
func (u *Usecase) Reorder(ctx context.Context, actor access.Actor, ids []string) ([]domain.SystemRole, error) {
	if !actor.CanManagePeople() {
		return nil, workflow.ErrForbidden
	}
	var out []domain.SystemRole
	err := u.uow.WithinTx(ctx, func(tx uow.Repos) error {
		all, err := tx.Roles.List(ctx)
		if err != nil {
			return err
		}
		ordered, err := domain.Reorder(all, ids)
		if err != nil {
			return workflow.Check([]string{err.Error()})
		}
		if err := tx.Roles.UpdateOrder(ctx, ordered); err != nil {
			return err
		}
		out = ordered
		return nil
	})
	return out, err
}
