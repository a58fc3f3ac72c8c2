package purchase

import (
	"fmt"
	"strings"
	"time"

	"opsplatform-backend/internal/domain/lineitem"
	"opsplatform-backend/internal/domain/status"
	"opsplatform-backend/internal/domain/workflow"

	"github.com/shopspring/decimal"
)

// Editable reports whether the requester may still change or delete the request.
func (r *Request) Editable() bool {
	return r.ApprovalStatus == status.ApprovalDraft || r.ApprovalStatus == status.ApprovalNeedRevision
}

// SubmitViolations lists why the request cannot be submitted yet.
func (r *Request) SubmitViolations() []string {
	var out []string
	if strings.TrimSpace(r.ProjectID) == "" {
		out = append(out, "project is required")
	}
	switch {
	case !r.Type.Valid():
		out = append(out, "category is required")
	case !r.Type.HasSubcategory(r.Subcategory):
		out = append(out, "subcategory is required")
	}
	out = append(out, lineitem.Validate(r.Items, false)...)
	if r.PurchaseStage == status.StageInvoiced || r.PurchaseStage == status.StageReceived {
		if strings.TrimSpace(r.Vendor) == "" {
			out = append(out, fmt.Sprintf("vendor is required when stage is %s", r.PurchaseStage))
		}
		if strings.TrimSpace(r.InvoiceURL) == "" {
			out = append(out, fmt.Sprintf("invoice is required when stage is %s", r.PurchaseStage))
		}
	}
	return out
}

// Submit moves a draft or a returned request to SUBMITTED.
func (r *Request) Submit() error {
	if !r.Editable() {
		return fmt.Errorf("%w: cannot submit from %s", workflow.ErrInvalidTransition, r.ApprovalStatus)
	}
	if err := workflow.Check(r.SubmitViolations()); err != nil {
		return err
	}
	r.ApprovalStatus = status.ApprovalSubmitted
	return nil
}

func (r *Request) requireSubmitted() error {
	if r.ApprovalStatus != status.ApprovalSubmitted {
		return fmt.Errorf("%w: request is %s, not SUBMITTED", workflow.ErrInvalidTransition, r.ApprovalStatus)
	}
	return nil
}

// Approve records the reviewer's decision. A valid amount is kept as the
// approved override; Amount itself stays the requested sum.
func (r *Request) Approve(amount decimal.NullDecimal) error {
	if err := r.requireSubmitted(); err != nil {
		return err
	}
	if amount.Valid {
		amount.Decimal = workflow.Money(amount.Decimal)
	}
	if amount.Valid && !amount.Decimal.IsPositive() {
		return workflow.Check([]string{"approved amount must be greater than 0"})
	}
	r.ApprovalStatus = status.ApprovalApproved
	r.ApprovedAmount = amount
	return nil
}

// RequestRevision sends the request back to the requester. Nothing but the
// status and the reason changes.
func (r *Request) RequestRevision(reason string) error {
	if err := r.requireSubmitted(); err != nil {
		return err
	}
	reason, err := workflow.RequireReason(reason)
	if err != nil {
		return err
	}
	r.ApprovalStatus = status.ApprovalNeedRevision
	r.RevisionReason = reason
	return nil
}

func (r *Request) Reject(reason string) error {
	if err := r.requireSubmitted(); err != nil {
		return err
	}
	reason, err := workflow.RequireReason(reason)
	if err != nil {
		return err
	}
	r.ApprovalStatus = status.ApprovalRejected
	r.RejectionReason = reason
	return nil
}

// Cancel is requester-initiated and allowed from any non-terminal approval state.
func (r *Request) Cancel() error {
	switch r.ApprovalStatus {
	case status.ApprovalDraft, status.ApprovalSubmitted, status.ApprovalNeedRevision:
		r.ApprovalStatus = status.ApprovalCancelled
		return nil
	}
	return fmt.Errorf("%w: cannot cancel a %s request", workflow.ErrInvalidTransition, r.ApprovalStatus)
}

// PaymentViolations lists why the request cannot be paid. The invoice and
// beneficiary checks apply whatever the approval status is.
func (r *Request) PaymentViolations() []string {
	var out []string
	if r.ApprovalStatus != status.ApprovalApproved {
		out = append(out, "request is not approved")
	}
	if r.FinancialStatus == status.FinancialPaid {
		out = append(out, "request is already paid")
	}
	if strings.TrimSpace(r.InvoiceURL) == "" {
		out = append(out, "invoice is required")
	}
	if strings.TrimSpace(r.Beneficiary.Bank) == "" {
		out = append(out, "beneficiary bank is required")
	}
	if strings.TrimSpace(r.Beneficiary.Number) == "" {
		out = append(out, "beneficiary account number is required")
	}
	return out
}

// Payable reports whether MarkPaid would pass its request-side guard.
func (r *Request) Payable() bool { return len(r.PaymentViolations()) == 0 }

// MarkPaid settles the request. Goods stage is left alone; it may lag payment.
func (r *Request) MarkPaid(p workflow.Payment) error {
	v := r.PaymentViolations()
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
	r.FinancialStatus = status.FinancialPaid
	r.Payment = p
	return nil
}

// UpdateStage tracks goods independently of approval and payment.
func (r *Request) UpdateStage(s status.Stage) error {
	if !s.Valid() {
		return workflow.Check([]string{fmt.Sprintf("unknown stage %q", s)})
	}
	if r.ApprovalStatus == status.ApprovalCancelled || r.ApprovalStatus == status.ApprovalRejected {
		return fmt.Errorf("%w: %s request has no goods stage", workflow.ErrInvalidTransition, r.ApprovalStatus)
	}
	if r.ApprovalStatus == status.ApprovalSubmitted {
		// submitted requests were checked against their stage; re-check the new one
		prev := r.PurchaseStage
		r.PurchaseStage = s
		if err := workflow.Check(r.SubmitViolations()); err != nil {
			r.PurchaseStage = prev
			return err
		}
		return nil
	}
	r.PurchaseStage = s
	return nil
}

// NewDraft returns a DRAFT, UNPAID request; the caller fills the editable fields.
func NewDraft(id, requesterID string, date time.Time) *Request {
	return &Request{
		ID:              id,
		RequesterID:     requesterID,
		Date:            date.UTC(),
		ApprovalStatus:  status.ApprovalDraft,
		PurchaseStage:   status.StagePlanned,
		FinancialStatus: status.FinancialUnpaid,
		Amount:          decimal.Zero,
	}
}
