package permission

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrUnknownFlag = errors.New("unknown permission flag")

// Level is the sensitivity tier a role may see. Higher ranks see more.
type Level string

const (
	LevelPublic     Level = "PUBLIC"
	LevelInternal   Level = "INTERNAL"
	LevelRestricted Level = "RESTRICTED"
	LevelSensitive  Level = "SENSITIVE"
)

var levelRank = map[Level]int{
	LevelPublic:     1,
	LevelInternal:   2,
	LevelRestricted: 3,
	LevelSensitive:  4,
}

var levelLabels = map[Level]string{
	LevelPublic:     "Public",
	LevelInternal:   "Internal",
	LevelRestricted: "Restricted",
	LevelSensitive:  "Sensitive",
}

func (l Level) Valid() bool { return levelRank[l] > 0 }
func (l Level) Rank() int { return levelRank[l] }
func (l Level) Label() string { return levelLabels[l] }

// Covers reports whether a role at l may see data classified as other.
func (l Level) Covers(other Level) bool { return l.Valid() && l.Rank() >= other.Rank() }

// Scope is the organizational reach of a role.
type Scope string

const (
	ScopeSelf   Scope = "SELF"
	ScopeTeam   Scope = "TEAM"
	ScopeGlobal Scope = "GLOBAL"
)

var scopeRank = map[Scope]int{
	ScopeSelf:   1,
	ScopeTeam:   2,
	ScopeGlobal: 3,
}

var scopeLabels = map[Scope]string{
	ScopeSelf:   "Self",
	ScopeTeam:   "Team",
	ScopeGlobal: "Global",
}

func (s Scope) Valid() bool { return scopeRank[s] > 0 }
func (s Scope) Rank() int { return scopeRank[s] }
func (s Scope) Label() string { return scopeLabels[s] }

func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToUpper(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", fmt.Errorf("unknown visibility level %q", s)
	}
	return l, nil
}

func ParseScope(s string) (Scope, error) {
	sc := Scope(strings.ToUpper(strings.TrimSpace(s)))
	if !sc.Valid() {
		return "", fmt.Errorf("unknown visibility scope %q", s)
	}
	return sc, nil
}

// Flag names one boolean column of RolePermission.
type Flag string

const (
	FlagViewDirectory         Flag = "can_view_directory"
	FlagManagePeople          Flag = "can_manage_people"
	FlagViewPerformanceSum    Flag = "can_view_performance_summary"
	FlagViewPerformanceDetail Flag = "can_view_performance_detail"
	FlagApproveLeave          Flag = "can_approve_leave"
	FlagApproveOvertime       Flag = "can_approve_overtime"
	FlagApproveExpense        Flag = "can_approve_expense"
)

// Flags is the display order of every flag.
var Flags = []Flag{
	FlagViewDirectory, FlagManagePeople, FlagViewPerformanceSum, FlagViewPerformanceDetail,
	FlagApproveLeave, FlagApproveOvertime, FlagApproveExpense,
}

// Table: role_permissions
type RolePermission struct {
	RoleID                    string    `gorm:"column:role_id;primaryKey;size:32" json:"role_id"`
	CanViewDirectory          bool      `gorm:"column:can_view_directory;not null" json:"can_view_directory"`
	CanManagePeople           bool      `gorm:"column:can_manage_people;not null" json:"can_manage_people"`
	CanViewPerformanceSummary bool      `gorm:"column:can_view_performance_summary;not null" json:"can_view_performance_summary"`
	CanViewPerformanceDetail  bool      `gorm:"column:can_view_performance_detail;not null" json:"can_view_performance_detail"`
	CanApproveLeave           bool      `gorm:"column:can_approve_leave;not null" json:"can_approve_leave"`
	CanApproveOvertime        bool      `gorm:"column:can_approve_overtime;not null" json:"can_approve_overtime"`
	CanApproveExpense         bool      `gorm:"column:can_approve_expense;not null" json:"can_approve_expense"`
	VisibilityLevel           Level     `gorm:"column:visibility_level;size:20;not null" json:"visibility_level"`
	VisibilityScope           Scope     `gorm:"column:visibility_scope;size:20;not null" json:"visibility_scope"`
	UpdatedAt                 time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Persisted is false for defaults that were never written.
	Persisted bool `gorm:"-" json:"persisted"`
}

func (RolePermission) TableName() string { return "role_permissions" }

// Default is the permission a role has before anything was written for it.
func Default(roleID string) RolePermission {
	return RolePermission{
		RoleID:           roleID,
		CanViewDirectory: true,
		VisibilityLevel:  LevelInternal,
		VisibilityScope:  ScopeTeam,
	}
}

// None grants nothing and sees only the caller's own public records.
func None() RolePermission {
	return RolePermission{VisibilityLevel: LevelPublic, VisibilityScope: ScopeSelf}
}

func (p *RolePermission) field(f Flag) (*bool, error) {
	switch f {
	case FlagViewDirectory:
		return &p.CanViewDirectory, nil
	case FlagManagePeople:
		return &p.CanManagePeople, nil
	case FlagViewPerformanceSum:
		return &p.CanViewPerformanceSummary, nil
	case FlagViewPerformanceDetail:
		return &p.CanViewPerformanceDetail, nil
	case FlagApproveLeave:
		return &p.CanApproveLeave, nil
	case FlagApproveOvertime:
		return &p.CanApproveOvertime, nil
	case FlagApproveExpense:
		return &p.CanApproveExpense, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFlag, f)
}

func (p *RolePermission) Get(f Flag) (bool, error) {
	b, err := p.field(f)
	if err != nil {
		return false, err
	}
	return *b, nil
}

func (p *RolePermission) Set(f Flag, v bool) error {
	b, err := p.field(f)
	if err != nil {
		return err
	}
	*b = v
	return nil
}

type Repository interface {
	// Get returns (nil, nil) when the role has no row yet.
	Get(ctx context.Context, roleID string) (*RolePermission, error)
	List(ctx context.Context) ([]RolePermission, error)
	// SetFlag creates the row from values when missing and writes only the named column otherwise.
	SetFlag(ctx context.Context, values RolePermission, f Flag) error
	SetVisibility(ctx context.Context, values RolePermission) error
	Delete(ctx context.Context, roleID string) error
}
