package lineitem

import (
	"fmt"
	"strings"

	"opsplatform-backend/internal/domain/workflow"

	"github.com/shopspring/decimal"
)

// Item is one priced line of a purchasing or reimbursement request.
// Total is derived; whatever the client sends is overwritten by Normalize.
type Item struct {
	Name      string          `json:"name"`
	Qty       decimal.Decimal `json:"qty"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// Normalize returns a copy of items with trimmed names and recomputed totals,
// each rounded to the money scale.
func Normalize(items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		it.Name = strings.TrimSpace(it.Name)
		it.Unit = strings.TrimSpace(it.Unit)
		it.Total = total(it)
		out[i] = it
	}
	return out
}

func total(it Item) decimal.Decimal { return workflow.Money(it.Qty.Mul(it.UnitPrice)) }

// Sum is the request amount: the sum of the rounded line totals, so it always
// equals the sum of what Normalize stores.
func Sum(items []Item) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(total(it))
	}
	return sum
}

// Validate lists every violation in items. requirePrice additionally rejects
// negative unit prices (reimbursements).
func Validate(items []Item, requirePrice bool) []string {
	if len(items) == 0 {
		return []string{"at least one line item is required"}
	}
	var out []string
	for i, it := range items {
		if strings.TrimSpace(it.Name) == "" {
			out = append(out, fmt.Sprintf("item %d: name is required", i+1))
		}
		if !it.Qty.IsPositive() {
			out = append(out, fmt.Sprintf("item %d: qty must be greater than 0", i+1))
		}
		if requirePrice && it.UnitPrice.IsNegative() {
			out = append(out, fmt.Sprintf("item %d: unit price must not be negative", i+1))
		}
	}
	return out
}
