package permission

import (
	"context"
	"errors"
	"strings"

	"opsplatform-backend/internal/domain/access"
	domain "opsplatform-backend/internal/domain/permission"
	"opsplatform-backend/internal/domain/role"
	"opsplatform-backend/internal/domain/viewmode"
	"opsplatform-backend/internal/domain/workflow"
)

// Entry pairs a role with its permission, default-filled when absent.
type Entry struct {
	Role       role.SystemRole       `json:"role"`
	Permission domain.RolePermission `json:"permission"`
}

type VisibilityInput struct {
	Level *domain.Level
	Scope *domain.Scope
}

type Usecase struct {
	perms      domain.Repository
	roles      role.Repository
	policy     viewmode.Policy
	adminRoles map[string]bool
}

func NewUsecase(perms domain.Repository, roles role.Repository, policy viewmode.Policy, adminRoles []string) *Usecase {
	admins := make(map[string]bool, len(adminRoles))
	for _, c := range adminRoles {
		admins[role.NormalizeCode(c)] = true
	}
	return &Usecase{perms: perms, roles: roles, policy: policy, adminRoles: admins}
}

// load returns the stored row or the default for roleID.
func (u *Usecase) load(ctx context.Context, roleID string) (domain.RolePermission, error) {
	p, err := u.perms.Get(ctx, roleID)
	if err != nil {
		return domain.RolePermission{}, err
	}
	if p == nil {
		return domain.Default(roleID), nil
	}
	p.Persisted = true
	return *p, nil
}

// List returns one entry per role in role order.
func (u *Usecase) List(ctx context.Context) ([]Entry, error) {
	roles, err := u.roles.List(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := u.perms.List(ctx)
	if err != nil {
		return nil, err
	}
	byRole := make(map[string]domain.RolePermission, len(rows))
	for _, p := range rows {
		p.Persisted = true
		byRole[p.RoleID] = p
	}
	out := make([]Entry, 0, len(roles))
	for _, r := range roles {
		p, ok := byRole[r.ID]
		if !ok {
			p = domain.Default(r.ID)
		}
		out = append(out, Entry{Role: r, Permission: p})
	}
	return out, nil
}

func (u *Usecase) Get(ctx context.Context, roleID string) (*Entry, error) {
	r, err := u.roles.GetByID(ctx, roleID)
	if err != nil {
		return nil, err
	}
	p, err := u.load(ctx, roleID)
	if err != nil {
		return nil, err
	}
	return &Entry{Role: *r, Permission: p}, nil
}

// SetFlag writes one flag. The row is created from the defaults on first write.
func (u *Usecase) SetFlag(ctx context.Context, actor access.Actor, roleID string, flag domain.Flag, value bool) (*domain.RolePermission, error) {
	if !actor.CanManagePeople() {
		return nil, workflow.ErrForbidden
	}
	if _, err := u.roles.GetByID(ctx, roleID); err != nil {
		return nil, err
	}
	p, err := u.load(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if err := p.Set(flag, value); err != nil {
		return nil, err
	}
	if err := u.perms.SetFlag(ctx, p, flag); err != nil {
		return nil, err
	}
	p.Persisted = true
	return &p, nil
}

func (u *Usecase) SetVisibility(ctx context.Context, actor access.Actor, roleID string, in VisibilityInput) (*domain.RolePermission, error) {
	if !actor.CanManagePeople() {
		return nil, workflow.ErrForbidden
	}
	if in.Level == nil && in.Scope == nil {
		return nil, workflow.Check([]string{"level or scope is required"})
	}
	if _, err := u.roles.GetByID(ctx, roleID); err != nil {
		return nil, err
	}
	p, err := u.load(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if in.Level != nil {
		p.VisibilityLevel = *in.Level
	}
	if in.Scope != nil {
		p.VisibilityScope = *in.Scope
	}
	if err := u.perms.SetVisibility(ctx, p); err != nil {
		return nil, err
	}
	p.Persisted = true
	return &p, nil
}

func (u *Usecase) Effective(ctx context.Context, roleID string) ([]domain.Line, error) {
	e, err := u.Get(ctx, roleID)
	if err != nil {
		return nil, err
	}
	return domain.EffectiveAccess(e.Role.Name, e.Permission), nil
}

// ResolveActor projects an authenticated user onto its role. Unknown role
// codes resolve to the default permission with no role id.
func (u *Usecase) ResolveActor(ctx context.Context, userID, name, roleCode string) (access.Actor, error) {
	code := role.NormalizeCode(roleCode)
	a := access.Actor{
		UserID:     strings.TrimSpace(userID),
		Name:       name,
		RoleCode:   code,
		Permission: domain.Default(""),
		TeamAccess: u.policy.CanAccessTeam(code),
		Admin:      u.adminRoles[code],
	}
	if code == "" {
		return a, nil
	}
	r, err := u.roles.GetByCode(ctx, code)
	if errors.Is(err, role.ErrNotFound) {
		return a, nil
	}
	if err != nil {
		return access.Actor{}, err
	}
	if r.Status == role.StatusInactive {
		// inactive roles keep identity but lose every grant
		a.Permission = domain.None()
		a.TeamAccess, a.Admin = false, false
		return a, nil
	}
	a.RoleID = r.ID
	if a.Permission, err = u.load(ctx, r.ID); err != nil {
		return access.Actor{}, err
	}
	return a, nil
}
