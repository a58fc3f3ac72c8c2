package report

import (
	"time"

	"opsplatform-backend/internal/domain/access"
	"opsplatform-backend/internal/domain/listing"
	domain "opsplatform-backend/internal/domain/report"
	"opsplatform-backend/internal/domain/status"
	"opsplatform-backend/internal/domain/viewmode"
	"opsplatform-backend/internal/usecase/purchase"
	"opsplatform-backend/internal/usecase/reimburse"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

func money(d decimal.Decimal) string { return d.StringFixed(2) }

// Context is the header information shared by every export.
type Context struct {
	Actor access.Actor
	Mode  viewmode.Mode
	Query listing.Query
	At    time.Time
}

func meta(c Context) []domain.Field {
	out := []domain.Field{
		{Label: "Generated at", Value: c.At.UTC().Format(time.RFC3339)},
		{Label: "Generated by", Value: c.Actor.Name},
		{Label: "View", Value: string(c.Mode)},
	}
	q := c.Query
	add := func(label, v string) {
		if v != "" {
			out = append(out, domain.Field{Label: label, Value: v})
		}
	}
	add("Status", q.Status)
	add("Category", q.Category)
	add("Project", q.ProjectID)
	add("Search", q.Search)
	if q.From != nil {
		add("From", q.From.Format(dateLayout))
	}
	if q.To != nil {
		add("To", q.To.Format(dateLayout))
	}
	return out
}

// totals is accumulated over effective amounts.
type totals struct {
	count             int
	all, paid, unpaid decimal.Decimal
}

func (t *totals) add(amount decimal.Decimal, d status.Display) {
	t.count++
	t.all = t.all.Add(amount)
	switch d {
	case status.DisplayPaid:
		t.paid = t.paid.Add(amount)
	case status.DisplayApproved, status.DisplayUnpaid:
		t.unpaid = t.unpaid.Add(amount)
	}
}

func (t totals) fields() []domain.Field {
	return []domain.Field{
		{Label: "Requests", Value: decimal.NewFromInt(int64(t.count)).String()},
		{Label: "Total amount", Value: money(t.all)},
		{Label: "Paid", Value: money(t.paid)},
		{Label: "Awaiting payment", Value: money(t.unpaid)},
	}
}

var purchaseColumns = []domain.Column{
	{Key: "date", Label: "Date"},
	{Key: "project", Label: "Project"},
	{Key: "vendor", Label: "Vendor"},
	{Key: "type", Label: "Type"},
	{Key: "description", Label: "Description"},
	{Key: "amount", Label: "Amount"},
	{Key: "approved_amount", Label: "Approved Amount"},
	{Key: "status", Label: "Status"},
	{Key: "stage", Label: "Stage"},
}

// Purchases builds the export of a purchasing list exactly as the caller sees it.
func Purchases(c Context, rows []*purchase.RequestDTO) domain.Report {
	var t totals
	data := make([]map[string]string, 0, len(rows))
	for _, r := range rows {
		t.add(r.EffectiveAmount, r.DisplayStatus)
		approved := ""
		if r.ApprovedAmount.Valid {
			approved = money(r.ApprovedAmount.Decimal)
		}
		data = append(data, map[string]string{
			"date":            r.Date.Format(dateLayout),
			"project":         r.ProjectID,
			"vendor":          r.Vendor,
			"type":            r.Type.Label(),
			"description":     r.Description,
			"amount":          money(r.Amount),
			"approved_amount": approved,
			"status":          r.StatusLabel,
			"stage":           r.PurchaseStage.Label(),
		})
	}
	return domain.Report{
		Title:   "Purchasing Requests",
		Meta:    meta(c),
		Summary: t.fields(),
		Columns: purchaseColumns,
		Data:    data,
	}
}

var reimburseColumns = []domain.Column{
	{Key: "date", Label: "Date"},
	{Key: "project", Label: "Project"},
	{Key: "category", Label: "Category"},
	{Key: "subcategory", Label: "Subcategory"},
	{Key: "description", Label: "Description"},
	{Key: "amount", Label: "Amount"},
	{Key: "approved_amount", Label: "Approved Amount"},
	{Key: "status", Label: "Status"},
}

func Reimburses(c Context, rows []*reimburse.RequestDTO) domain.Report {
	var t totals
	data := make([]map[string]string, 0, len(rows))
	for _, r := range rows {
		t.add(r.EffectiveAmount, r.DisplayStatus)
		approved := ""
		if r.ApprovedAmount.Valid {
			approved = money(r.ApprovedAmount.Decimal)
		}
		data = append(data, map[string]string{
			"date":            r.Date.Format(dateLayout),
			"project":         r.ProjectID,
			"category":        r.Category.Label(),
			"subcategory":     r.Subcategory,
			"description":     r.Description,
			"amount":          money(r.Amount),
			"approved_amount": approved,
			"status":          r.StatusLabel,
		})
	}
	return domain.Report{
		Title:   "Reimbursement Requests",
		Meta:    meta(c),
		Summary: t.fields(),
		Columns: reimburseColumns,
		Data:    data,
	}
}
