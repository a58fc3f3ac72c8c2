package reimburse

import (
	"fmt"
	"strings"
	"time"

	"opsplatform-backend/internal/domain/lineitem"
	"opsplatform-backend/internal/domain/status"
	"opsplatform-backend/internal/domain/workflow"

	"github.com/shopspring/decimal"
)

// Editable covers both updates and deletes by the requester.
func (r *Request) Editable() bool {
	return r.Status == status.ReimburseDraft || r.Status == status.ReimbursePending
}

func (r *Request) SubmitViolations() []string {
	var out []string
	if strings.TrimSpace(r.ProjectID) == "" {
		out = append(out, "project is required")
	}
	switch {
	case !r.Category.Valid():
		out = append(out, "category is required")
	case !r.Category.HasSubcategory(r.Subcategory):
		out = append(out, "subcategory is required")
	}
	if strings.TrimSpace(r.Description) == "" {
		out = append(out, "description is required")
	}
	if r.Date.IsZero() {
		out = append(out, "date is required")
	}
	out = append(out, lineitem.Validate(r.Items, true)...)
	if RequiresTrip(r.Category, r.Subcategory) {
		if strings.TrimSpace(r.Trip.Origin) == "" {
			out = append(out, "trip origin is required")
		}
		if strings.TrimSpace(r.Trip.Destination) == "" {
			out = append(out, "trip destination is required")
		}
		if !r.Trip.DistanceKM.Valid || !r.Trip.DistanceKM.Decimal.IsPositive() {
			out = append(out, "trip distance is required")
		}
	}
	return out
}

// Submit moves a DRAFT to PENDING. Editing a PENDING claim keeps it pending.
func (r *Request) Submit() error {
	if r.Status != status.ReimburseDraft {
		return fmt.Errorf("%w: cannot submit from %s", workflow.ErrInvalidTransition, r.Status)
	}
	if err := workflow.Check(r.SubmitViolations()); err != nil {
		return err
	}
	r.Status = status.ReimbursePending
	return nil
}

// reviewable reports whether a reviewer may decide the claim. Drafts are
// reviewable too; approving one still needs a complete claim.
func (r *Request) reviewable() error {
	if r.Status != status.ReimburseDraft && r.Status != status.ReimbursePending {
		return fmt.Errorf("%w: request is %s, not DRAFT or PENDING", workflow.ErrInvalidTransition, r.Status)
	}
	return nil
}

// Approve always stores the reviewer's amount, which may diverge from Amount.
func (r *Request) Approve(amount decimal.Decimal) error {
	if err := r.reviewable(); err != nil {
		return err
	}
	amount = workflow.Money(amount)
	var v []string
	if r.Status == status.ReimburseDraft {
		v = r.SubmitViolations()
	}
	if !amount.IsPositive() {
		v = append(v, "approved amount must be greater than 0")
	}
	if err := workflow.Check(v); err != nil {
		return err
	}
	r.Status = status.ReimburseApproved
	r.ApprovedAmount = decimal.NewNullDecimal(amount)
	return nil
}

func (r *Request) Reject(reason string) error {
	if err := r.reviewable(); err != nil {
		return err
	}
	reason, err := workflow.RequireReason(reason)
	if err != nil {
		return err
	}
	r.Status = status.ReimburseRejected
	r.RejectionReason = reason
	return nil
}

func (r *Request) Pay(p workflow.Payment) error {
	if r.Status != status.ReimburseApproved {
		return fmt.Errorf("%w: request is %s, not APPROVED", workflow.ErrInvalidTransition, r.Status)
	}
	var v []string
	if strings.TrimSpace(p.SourceOfFundID) == "" {
		v = append(v, "funding source is required")
	}
	if p.Date == nil || p.Date.IsZero() {
		v = append(v, "payment date is required")
	}
	if err := workflow.Check(v); err != nil {
		return err
	}
	d := p.Date.UTC()
	p.Date = &d
	r.Status = status.ReimbursePaid
	r.Payment = p
	return nil
}

func NewDraft(id, requesterID string, date time.Time) *Request {
	return &Request{
		ID:          id,
		RequesterID: requesterID,
		Date:        date.UTC(),
		Status:      status.ReimburseDraft,
		Amount:      decimal.Zero,
	}
}
