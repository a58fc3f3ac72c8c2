package role

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
)

var (
	ErrNotFound      = errors.New("role not found")
	ErrDuplicateCode = errors.New("role code already exists")
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

func (s Status) Valid() bool { return s == StatusActive || s == StatusInactive }

func (s Status) Label() string {
	if s == StatusInactive {
		return "Inactive"
	}
	return "Active"
}

var codePattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

// Table: system_roles
type SystemRole struct {
	ID          string    `gorm:"column:id;primaryKey;size:32" json:"id"`
	Code        string    `gorm:"column:code;size:50;not null;uniqueIndex" json:"code"`
	Name        string    `gorm:"column:name;size:100;not null" json:"name"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Status      Status    `gorm:"column:status;size:10;not null" json:"status"`
	OrderIndex  int       `gorm:"column:order_index;not null;index" json:"order_index"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (SystemRole) TableName() string { return "system_roles" }

// NormalizeCode upper-cases a role code and turns spaces and dashes into underscores.
func NormalizeCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(code)
}

// Normalize cleans user input and returns the remaining violations.
func (r *SystemRole) Normalize() []string {
	r.Code = NormalizeCode(r.Code)
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	if r.Status == "" {
		r.Status = StatusActive
	}
	var v []string
	if !codePattern.MatchString(r.Code) {
		v = append(v, "code must start with a letter and contain only A-Z, 0-9 and _")
	}
	if r.Name == "" {
		v = append(v, "name is required")
	}
	if !r.Status.Valid() {
		v = append(v, "status must be ACTIVE or INACTIVE")
	}
	return v
}

// Reorder assigns order_index 1..n following ids. Every role must appear
// exactly once.
func Reorder(roles []SystemRole, ids []string) ([]SystemRole, error) {
	if len(ids) != len(roles) {
		return nil, errors.New("order must list every role exactly once")
	}
	byID := make(map[string]SystemRole, len(roles))
	for _, r := range roles {
		byID[r.ID] = r
	}
	out := make([]SystemRole, 0, len(ids))
	for i, id := range ids {
		r, ok := byID[id]
		if !ok {
			return nil, errors.New("order must list every role exactly once")
		}
		delete(byID, id)
		r.OrderIndex = i + 1
		out = append(out, r)
	}
	return out, nil
}

type Repository interface {
	Create(ctx context.Context, r *SystemRole) error
	Save(ctx context.Context, r *SystemRole) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*SystemRole, error)
	GetByCode(ctx context.Context, code string) (*SystemRole, error)
	// List is ordered by order_index.
	List(ctx context.Context) ([]SystemRole, error)
	MaxOrderIndex(ctx context.Context) (int, error)
	UpdateOrder(ctx context.Context, roles []SystemRole) error
}
