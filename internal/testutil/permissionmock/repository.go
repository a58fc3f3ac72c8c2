package permissionmock

import (
	"context"

	domain "opsplatform-backend/internal/domain/permission"
)

var _ domain.Repository = (*Repo)(nil)

// Repo defaults to an empty table: Get finds nothing and writes succeed.
type Repo struct {
	GetFn           func(ctx context.Context, roleID string) (*domain.RolePermission, error)
	ListFn          func(ctx context.Context) ([]domain.RolePermission, error)
	SetFlagFn       func(ctx context.Context, values domain.RolePermission, f domain.Flag) error
	SetVisibilityFn func(ctx context.Context, values domain.RolePermission) error
	DeleteFn        func(ctx context.Context, roleID string) error
}

func (m *Repo) Get(ctx context.Context, roleID string) (*domain.RolePermission, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, roleID)
	}
	return nil, nil
}

func (m *Repo) List(ctx context.Context) ([]domain.RolePermission, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *Repo) SetFlag(ctx context.Context, values domain.RolePermission, f domain.Flag) error {
	if m.SetFlagFn != nil {
		return m.SetFlagFn(ctx, values, f)
	}
	return nil
}

func (m *Repo) SetVisibility(ctx context.Context, values domain.RolePermission) error {
	if m.SetVisibilityFn != nil {
		return m.SetVisibilityFn(ctx, values)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, roleID string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, roleID)
	}
	return nil
}
