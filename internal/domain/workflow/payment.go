package workflow

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places amounts are stored with.
const MoneyScale = 2

// Money rounds d to MoneyScale, half away from zero like the database does.
func Money(d decimal.Decimal) decimal.Decimal { return d.Round(MoneyScale) }

// Beneficiary is the bank destination of a payout.
type Beneficiary struct {
	Bank   string `gorm:"size:50" json:"bank"`
	Number string `gorm:"size:50" json:"number"`
	Name   string `gorm:"size:150" json:"name"`
}

// Complete reports whether bank and account number are both filled.
func (b Beneficiary) Complete() bool {
	return strings.TrimSpace(b.Bank) != "" && strings.TrimSpace(b.Number) != ""
}

// Payment is recorded once finance marks a request paid.
type Payment struct {
	Date           *time.Time `gorm:"type:date" json:"date,omitempty"`
	SourceOfFundID string     `gorm:"size:32" json:"source_of_fund_id,omitempty"`
	ProofURL       string     `gorm:"type:text" json:"proof_url,omitempty"`
	Notes          string     `gorm:"type:text" json:"notes,omitempty"`
}
