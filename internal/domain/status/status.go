package status

import (
	"fmt"
	"strings"
)

// Approval is the requester-facing workflow state of a purchasing request.
type Approval string

const (
	ApprovalDraft        Approval = "DRAFT"
	ApprovalSubmitted    Approval = "SUBMITTED"
	ApprovalNeedRevision Approval = "NEED_REVISION"
	ApprovalApproved     Approval = "APPROVED"
	ApprovalRejected     Approval = "REJECTED"
	ApprovalCancelled    Approval = "CANCELLED"
)

// Stage tracks procurement independently of approval.
type Stage string

const (
	StagePlanned  Stage = "PLANNED"
	StageInvoiced Stage = "INVOICED"
	StageReceived Stage = "RECEIVED"
)

type Financial string

const (
	FinancialUnpaid Financial = "UNPAID"
	FinancialPaid   Financial = "PAID"
)

// Reimburse is the single status axis of a reimbursement request.
type Reimburse string

const (
	ReimburseDraft    Reimburse = "DRAFT"
	ReimbursePending  Reimburse = "PENDING"
	ReimburseApproved Reimburse = "APPROVED"
	ReimbursePaid     Reimburse = "PAID"
	ReimburseRejected Reimburse = "REJECTED"
)

// Display is what a list row shows as its primary status or as an extra badge.
type Display string

const (
	DisplayDraft        Display = "DRAFT"
	DisplaySubmitted    Display = "SUBMITTED"
	DisplayNeedRevision Display = "NEED_REVISION"
	DisplayApproved     Display = "APPROVED"
	DisplayRejected     Display = "REJECTED"
	DisplayCancelled    Display = "CANCELLED"
	DisplayUnpaid       Display = "UNPAID"
	DisplayPaid         Display = "PAID"
	DisplayGoodsPending Display = "GOODS_PENDING"
)

var approvalLabels = map[Approval]string{
	ApprovalDraft:        "Draft",
	ApprovalSubmitted:    "Submitted",
	ApprovalNeedRevision: "Need Revision",
	ApprovalApproved:     "Approved",
	ApprovalRejected:     "Rejected",
	ApprovalCancelled:    "Cancelled",
}

var stageLabels = map[Stage]string{
	StagePlanned:  "Planned",
	StageInvoiced: "Invoiced",
	StageReceived: "Received",
}

var financialLabels = map[Financial]string{
	FinancialUnpaid: "Unpaid",
	FinancialPaid:   "Paid",
}

var reimburseLabels = map[Reimburse]string{
	ReimburseDraft:    "Draft",
	ReimbursePending:  "Pending",
	ReimburseApproved: "Approved",
	ReimbursePaid:     "Paid",
	ReimburseRejected: "Rejected",
}

var displayLabels = map[Display]string{
	DisplayDraft:        "Draft",
	DisplaySubmitted:    "Submitted",
	DisplayNeedRevision: "Need Revision",
	DisplayApproved:     "Approved",
	DisplayRejected:     "Rejected",
	DisplayCancelled:    "Cancelled",
	DisplayUnpaid:       "Unpaid",
	DisplayPaid:         "Paid",
	DisplayGoodsPending: "Goods Pending",
}

func (a Approval) Valid() bool { _, ok := approvalLabels[a]; return ok }
func (s Stage) Valid() bool { _, ok := stageLabels[s]; return ok }
func (f Financial) Valid() bool { _, ok := financialLabels[f]; return ok }
func (r Reimburse) Valid() bool { _, ok := reimburseLabels[r]; return ok }
func (d Display) Valid() bool { _, ok := displayLabels[d]; return ok }

func (a Approval) Label() string { return approvalLabels[a] }
func (s Stage) Label() string { return stageLabels[s] }
func (f Financial) Label() string { return financialLabels[f] }
func (r Reimburse) Label() string { return reimburseLabels[r] }
func (d Display) Label() string { return displayLabels[d] }

// Resolve combines the three purchasing axes into one primary status.
// First match wins: PAID, UNPAID, APPROVED, REJECTED, SUBMITTED, then the raw
// approval value. UNPAID deliberately outranks the approval axis.
func Resolve(approval Approval, _ Stage, financial Financial) Display {
	switch {
	case financial == FinancialPaid:
		return DisplayPaid
	case financial == FinancialUnpaid:
		return DisplayUnpaid
	case approval == ApprovalApproved:
		return DisplayApproved
	case approval == ApprovalRejected:
		return DisplayRejected
	case approval == ApprovalSubmitted:
		return DisplaySubmitted
	}
	return Display(approval)
}

// Badges returns the secondary markers shown next to the primary status.
func Badges(_ Approval, stage Stage, financial Financial) []Display {
	var out []Display
	if financial == FinancialPaid && stage != StageReceived {
		out = append(out, DisplayGoodsPending)
	}
	return out
}

// ResolveReimburse maps a reimbursement status onto the shared display vocabulary.
func ResolveReimburse(r Reimburse) Display {
	switch r {
	case ReimbursePending:
		return DisplaySubmitted
	case ReimburseApproved:
		return DisplayApproved
	case ReimbursePaid:
		return DisplayPaid
	case ReimburseRejected:
		return DisplayRejected
	}
	return DisplayDraft
}

func ParseApproval(s string) (Approval, error) {
	a := Approval(normalize(s))
	if !a.Valid() {
		return "", fmt.Errorf("unknown approval status %q", s)
	}
	return a, nil
}

func ParseStage(s string) (Stage, error) {
	st := Stage(normalize(s))
	if !st.Valid() {
		return "", fmt.Errorf("unknown purchase stage %q", s)
	}
	return st, nil
}

func ParseReimburse(s string) (Reimburse, error) {
	r := Reimburse(normalize(s))
	if !r.Valid() {
		return "", fmt.Errorf("unknown reimbursement status %q", s)
	}
	return r, nil
}

func ParseDisplay(s string) (Display, error) {
	d := Display(normalize(s))
	if !d.Valid() {
		return "", fmt.Errorf("unknown status %q", s)
	}
	return d, nil
}

// accepts "need revision", "need-revision" and "NEED_REVISION" alike
func normalize(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}
