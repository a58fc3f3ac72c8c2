package status

import "testing"

func TestResolve_Precedence(t *testing.T) {
	tests := []struct {
		approval  Approval
		stage     Stage
		financial Financial
		want      Display
	}{
		{ApprovalSubmitted, StagePlanned, FinancialUnpaid, DisplayUnpaid},
		{ApprovalApproved, StageReceived, FinancialPaid, DisplayPaid},
		{ApprovalDraft, StagePlanned, FinancialUnpaid, DisplayUnpaid},
		{ApprovalRejected, StagePlanned, FinancialPaid, DisplayPaid},
		{ApprovalApproved, StagePlanned, "", DisplayApproved},
		{ApprovalRejected, StageInvoiced, "", DisplayRejected},
		{ApprovalSubmitted, StageInvoiced, "", DisplaySubmitted},
		{ApprovalDraft, StagePlanned, "", DisplayDraft},
		{ApprovalNeedRevision, StagePlanned, "", DisplayNeedRevision},
		{ApprovalCancelled, StageReceived, "", DisplayCancelled},
	}
	for _, tt := range tests {
		got := Resolve(tt.approval, tt.stage, tt.financial)
		if got != tt.want {
			t.Fatalf("Resolve(%s,%s,%q) = %s, want %s", tt.approval, tt.stage, tt.financial, got, tt.want)
		}
	}
}

// Every approval × stage × financial triple follows the table regardless of stage.
func TestResolve_StageNeverMatters(t *testing.T) {
	approvals := []Approval{ApprovalDraft, ApprovalSubmitted, ApprovalNeedRevision, ApprovalApproved, ApprovalRejected, ApprovalCancelled}
	financials := []Financial{FinancialUnpaid, FinancialPaid, ""}
	for _, a := range approvals {
		for _, f := range financials {
			base := Resolve(a, StagePlanned, f)
			for _, s := range []Stage{StageInvoiced, StageReceived} {
				if got := Resolve(a, s, f); got != base {
					t.Fatalf("stage %s changed result for (%s,%q): %s vs %s", s, a, f, got, base)
				}
			}
		}
	}
}

func TestBadges_GoodsPending(t *testing.T) {
	if b := Badges(ApprovalApproved, StageInvoiced, FinancialPaid); len(b) != 1 || b[0] != DisplayGoodsPending {
		t.Fatalf("want goods pending badge, got %v", b)
	}
	if b := Badges(ApprovalApproved, StageReceived, FinancialPaid); len(b) != 0 {
		t.Fatalf("received goods must not be flagged, got %v", b)
	}
	if b := Badges(ApprovalApproved, StagePlanned, FinancialUnpaid); len(b) != 0 {
		t.Fatalf("unpaid must not be flagged, got %v", b)
	}
}

func TestParse(t *testing.T) {
	if a, err := ParseApproval("need revision"); err != nil || a != ApprovalNeedRevision {
		t.Fatalf("ParseApproval = %v, %v", a, err)
	}
	if _, err := ParseApproval("bogus"); err == nil {
		t.Fatal("expected error for unknown approval")
	}
	if s, err := ParseStage("invoiced"); err != nil || s != StageInvoiced {
		t.Fatalf("ParseStage = %v, %v", s, err)
	}
	if d, err := ParseDisplay("goods-pending"); err != nil || d != DisplayGoodsPending {
		t.Fatalf("ParseDisplay = %v, %v", d, err)
	}
	if r, err := ParseReimburse("Pending"); err != nil || r != ReimbursePending {
		t.Fatalf("ParseReimburse = %v, %v", r, err)
	}
}

func TestLabels(t *testing.T) {
	if ApprovalNeedRevision.Label() != "Need Revision" {
		t.Fatalf("label = %q", ApprovalNeedRevision.Label())
	}
	if DisplayGoodsPending.Label() != "Goods Pending" {
		t.Fatalf("label = %q", DisplayGoodsPending.Label())
	}
	if Approval("X").Label() != "" {
		t.Fatal("unknown value must have empty label")
	}
}
