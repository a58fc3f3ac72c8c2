package viewmode

import (
	"context"

	"opsplatform-backend/internal/domain/access"
	domain "opsplatform-backend/internal/domain/viewmode"

	"github.com/sirupsen/logrus"
)

// State is what the finance screens receive for the current session.
type State struct {
	Mode          domain.Mode `json:"mode"`
	CanAccessTeam bool        `json:"can_access_team"`
}

type Usecase struct {
	store domain.Store
	log   logrus.FieldLogger
}

func NewUsecase(store domain.Store, log logrus.FieldLogger) *Usecase {
	return &Usecase{store: store, log: log}
}

// Resolve reconciles the stored mode with requested (may be empty) and the
// caller's role. A stale team value is cleared on the way.
func (u *Usecase) Resolve(ctx context.Context, actor access.Actor, requested string) (State, error) {
	stored, err := u.store.Get(ctx, actor.UserID)
	if err != nil {
		return State{}, err
	}
	req, _ := domain.Parse(requested)
	out := domain.Reconcile(stored, req, actor.TeamAccess)
	if out.ClearStored {
		if err := u.store.Clear(ctx, actor.UserID); err != nil {
			u.log.WithError(err).WithField("user_id", actor.UserID).Warn("failed to clear stale team view mode")
		}
	}
	return State{Mode: out.Mode, CanAccessTeam: actor.TeamAccess}, nil
}

func (u *Usecase) Set(ctx context.Context, actor access.Actor, m domain.Mode) (State, error) {
	if m == domain.Team && !actor.TeamAccess {
		return State{}, domain.ErrTeamNotAllowed
	}
	if err := u.store.Set(ctx, actor.UserID, m); err != nil {
		return State{}, err
	}
	return State{Mode: m, CanAccessTeam: actor.TeamAccess}, nil
}

func (u *Usecase) Clear(ctx context.Context, actor access.Actor) error {
	return u.store.Clear(ctx, actor.UserID)
}
