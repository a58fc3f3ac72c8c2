package listing

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type SortField string

const (
	SortDate    SortField = "date"
	SortAmount  SortField = "amount"
	SortStatus  SortField = "status"
	SortCreated SortField = "created"
)

// Query filters and orders an in-memory request list.
type Query struct {
	Status    string
	Category  string
	ProjectID string
	Search    string
	From      *time.Time
	To        *time.Time
	SortBy    SortField
	Desc      bool
}

// Row is the projection of one request that Query works on.
type Row struct {
	Date      time.Time
	CreatedAt time.Time
	Amount    decimal.Decimal
	Status    string
	// Aliases are extra status values a filter may match, such as the raw
	// approval state behind a payment-derived display status.
	Aliases   []string
	Category  string
	ProjectID string
	Text      []string
}

func (r Row) hasStatus(s string) bool {
	if strings.EqualFold(s, r.Status) {
		return true
	}
	for _, a := range r.Aliases {
		if strings.EqualFold(s, a) {
			return true
		}
	}
	return false
}

func (q Query) match(r Row) bool {
	if q.Status != "" && !r.hasStatus(q.Status) {
		return false
	}
	if q.Category != "" && !strings.EqualFold(q.Category, r.Category) {
		return false
	}
	if q.ProjectID != "" && q.ProjectID != r.ProjectID {
		return false
	}
	if q.From != nil && r.Date.Before(*q.From) {
		return false
	}
	if q.To != nil && r.Date.After(*q.To) {
		return false
	}
	if s := strings.ToLower(strings.TrimSpace(q.Search)); s != "" {
		for _, t := range r.Text {
			if strings.Contains(strings.ToLower(t), s) {
				return true
			}
		}
		return false
	}
	return true
}

// Apply returns the items matching q in q's order. Ties keep their input
// order. The default order is newest date first.
func Apply[T any](items []T, q Query, row func(T) Row) []T {
	type pair struct {
		item T
		row  Row
	}
	kept := make([]pair, 0, len(items))
	for _, it := range items {
		r := row(it)
		if q.match(r) {
			kept = append(kept, pair{it, r})
		}
	}

	by, desc := q.SortBy, q.Desc
	if by == "" {
		by, desc = SortDate, true
	}
	sort.SliceStable(kept, func(i, j int) bool {
		a, b := kept[i].row, kept[j].row
		var c int
		switch by {
		case SortAmount:
			c = a.Amount.Cmp(b.Amount)
		case SortStatus:
			c = strings.Compare(a.Status, b.Status)
			if c == 0 {
				c = strings.Compare(strings.Join(a.Aliases, ","), strings.Join(b.Aliases, ","))
			}
		case SortCreated:
			c = a.CreatedAt.Compare(b.CreatedAt)
		default:
			c = a.Date.Compare(b.Date)
		}
		if desc {
			return c > 0
		}
		return c < 0
	})

	out := make([]T, len(kept))
	for i, p := range kept {
		out[i] = p.item
	}
	return out
}

// ParseSort accepts "amount", "-amount" (descending) and the like.
func ParseSort(s string) (SortField, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	desc := strings.HasPrefix(s, "-")
	switch f := SortField(strings.TrimPrefix(s, "-")); f {
	case SortDate, SortAmount, SortStatus, SortCreated:
		return f, desc
	}
	return "", false
}
