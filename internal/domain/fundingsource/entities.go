package fundingsource

import (
	"crypto/rand"
	"errors"
	"math/big"
	"sort"
	"strings"
	"time"

	"opsplatform-backend/internal/domain/workflow"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("funding source not found")
	ErrNotSelectable = errors.New("funding source is inactive or archived")
)

type Type string

const (
	TypeBank      Type = "BANK"
	TypePettyCash Type = "PETTY_CASH"
	TypeReimburse Type = "REIMBURSE"
	TypeCash      Type = "CASH"
)

var typeLabels = map[Type]string{
	TypeBank:      "Bank",
	TypePettyCash: "Petty Cash",
	TypeReimburse: "Reimburse",
	TypeCash:      "Cash",
}

// accountPatterns: '#' is replaced by a random digit.
var accountPatterns = map[Type]string{
	TypeBank:      "##########",
	TypePettyCash: "PC-####-####",
	TypeReimburse: "RB-####-####",
	TypeCash:      "CASH-######",
}

func (t Type) Valid() bool { _, ok := typeLabels[t]; return ok }
func (t Type) Label() string { return typeLabels[t] }

type Provider string

const (
	ProviderBCA     Provider = "BCA"
	ProviderMandiri Provider = "MANDIRI"
	ProviderBNI     Provider = "BNI"
	ProviderBRI     Provider = "BRI"
	ProviderBSI     Provider = "BSI"
	ProviderCIMB    Provider = "CIMB"
	ProviderPermata Provider = "PERMATA"
	ProviderOther   Provider = "OTHER"
)

var providers = map[Provider]bool{
	ProviderBCA: true, ProviderMandiri: true, ProviderBNI: true, ProviderBRI: true,
	ProviderBSI: true, ProviderCIMB: true, ProviderPermata: true, ProviderOther: true,
}

func (p Provider) Valid() bool { return providers[p] }

// Table: funding_sources
type Source struct {
	ID            string          `gorm:"column:id;primaryKey;size:32" json:"id"`
	Name          string          `gorm:"column:name;size:100;not null" json:"name"`
	Type          Type            `gorm:"column:type;size:20;not null" json:"type"`
	Provider      Provider        `gorm:"column:provider;size:20" json:"provider,omitempty"`
	Balance       decimal.Decimal `gorm:"column:balance;type:decimal(18,2);not null" json:"balance"`
	AccountNumber string          `gorm:"column:account_number;size:50" json:"account_number"`
	Position      int             `gorm:"column:position;not null;index" json:"position"`
	IsActive      bool            `gorm:"column:is_active;not null" json:"is_active"`
	IsArchived    bool            `gorm:"column:is_archived;not null" json:"is_archived"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Source) TableName() string { return "funding_sources" }

// Selectable reports whether payments may be drawn from s.
func (s *Source) Selectable() bool { return s.IsActive && !s.IsArchived }

// Normalize trims input, clears the provider of non-bank sources and fills a
// blank account number from the type pattern. It returns the violations left.
func (s *Source) Normalize() ([]string, error) {
	s.Name = strings.TrimSpace(s.Name)
	s.AccountNumber = strings.TrimSpace(s.AccountNumber)
	var v []string
	if s.Name == "" {
		v = append(v, "name is required")
	}
	if !s.Type.Valid() {
		v = append(v, "type must be one of BANK, PETTY_CASH, REIMBURSE, CASH")
	}
	if s.Type == TypeBank {
		if !s.Provider.Valid() {
			v = append(v, "provider is required for bank sources")
		}
	} else {
		s.Provider = ""
	}
	if len(v) > 0 {
		return v, nil
	}
	if s.AccountNumber == "" {
		n, err := GenerateAccountNumber(s.Type)
		if err != nil {
			return nil, err
		}
		s.AccountNumber = n
	}
	return nil, nil
}

// TopUp adds amount to the balance. Debits may take the balance below zero.
func (s *Source) TopUp(amount decimal.Decimal) error {
	amount = workflow.Money(amount)
	if !amount.IsPositive() {
		return workflow.Check([]string{"top-up amount must be greater than 0"})
	}
	s.Balance = s.Balance.Add(amount)
	return nil
}

func (s *Source) Debit(amount decimal.Decimal) { s.Balance = s.Balance.Sub(amount) }

// GenerateAccountNumber fills the pattern of t with random digits.
func GenerateAccountNumber(t Type) (string, error) {
	pattern, ok := accountPatterns[t]
	if !ok {
		return "", errors.New("unknown funding source type")
	}
	var b strings.Builder
	for _, c := range pattern {
		if c != '#' {
			b.WriteRune(c)
			continue
		}
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String(), nil
}

type View string

const (
	ViewActive     View = "active"
	ViewArchived   View = "archived"
	ViewSelectable View = "selectable"
)

func (v View) Valid() bool {
	return v == ViewActive || v == ViewArchived || v == ViewSelectable
}

// Filter returns the sources shown by view, ordered by position. Ties keep
// their input order.
func Filter(all []Source, view View) []Source {
	out := make([]Source, 0, len(all))
	for _, s := range all {
		switch view {
		case ViewArchived:
			if !s.IsArchived {
				continue
			}
		case ViewSelectable:
			if !s.Selectable() {
				continue
			}
		default:
			if s.IsArchived {
				continue
			}
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// MoveAdjacent swaps the position of id with its neighbour in list and
// returns the two changed rows. Moving past either edge, or an id not in
// list, changes nothing and returns nil. Other positions are never touched.
func MoveAdjacent(list []Source, id string, dir Direction) []Source {
	idx := -1
	for i := range list {
		if list[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	other := idx - 1
	if dir == Down {
		other = idx + 1
	}
	if other < 0 || other >= len(list) {
		return nil
	}
	list[idx].Position, list[other].Position = list[other].Position, list[idx].Position
	list[idx], list[other] = list[other], list[idx]
	return []Source{list[other], list[idx]}
}
