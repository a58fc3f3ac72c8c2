package viewmode

import (
	"context"
	"errors"
	"strings"
)

var ErrTeamNotAllowed = errors.New("role has no access to the finance team view")

type Mode string

const (
	Personal Mode = "personal"
	Team     Mode = "team"
)

func (m Mode) Valid() bool { return m == Personal || m == Team }

func Parse(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", errors.New("view mode must be personal or team")
	}
	return m, nil
}

// Policy decides which roles may use the team view.
type Policy struct {
	TeamRoles map[string]bool
}

// NewPolicy takes role codes in any case.
func NewPolicy(codes []string) Policy {
	p := Policy{TeamRoles: make(map[string]bool, len(codes))}
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c != "" {
			p.TeamRoles[c] = true
		}
	}
	return p
}

func (p Policy) CanAccessTeam(roleCode string) bool {
	return p.TeamRoles[strings.ToUpper(strings.TrimSpace(roleCode))]
}

// Outcome of reconciling a session with the caller's role.
type Outcome struct {
	Mode Mode
	// ClearStored is set when a stored team mode must be dropped.
	ClearStored bool
}

// Reconcile picks the effective mode. requested (from the URL) wins over
// stored; personal is the default. A role without team access always gets
// personal, and a stored team value is cleared.
func Reconcile(stored, requested Mode, canTeam bool) Outcome {
	if !canTeam {
		return Outcome{Mode: Personal, ClearStored: stored == Team}
	}
	switch {
	case requested.Valid():
		return Outcome{Mode: requested}
	case stored.Valid():
		return Outcome{Mode: stored}
	}
	return Outcome{Mode: Personal}
}

// Store keeps one mode per user for the length of a session.
type Store interface {
	// Get returns "" when nothing is stored.
	Get(ctx context.Context, userID string) (Mode, error)
	Set(ctx context.Context, userID string, m Mode) error
	Clear(ctx context.Context, userID string) error
}
