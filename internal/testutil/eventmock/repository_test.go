package eventmock

import (
	"context"
	"testing"

	"opsplatform-backend/internal/domain/workflow"
)

func TestRepo_RecordsEvents(t *testing.T) {
	ctx := context.Background()
	m := &Repo{}
	_ = m.Create(ctx, workflow.NewEvent(workflow.SubjectPurchase, "p1", workflow.ActionCreate, "u", "", "DRAFT", nil))
	_ = m.Create(ctx, workflow.NewEvent(workflow.SubjectReimburse, "r1", workflow.ActionCreate, "u", "", "DRAFT", nil))
	_ = m.Create(ctx, workflow.NewEvent(workflow.SubjectPurchase, "p1", workflow.ActionSubmit, "u", "DRAFT", "SUBMITTED", nil))

	got, err := m.ListBySubject(ctx, workflow.SubjectPurchase, "p1")
	if err != nil || len(got) != 2 {
		t.Fatalf("ListBySubject = %v, %v", got, err)
	}
	acts := m.Actions()
	if len(acts) != 3 || acts[2] != workflow.ActionSubmit {
		t.Fatalf("Actions = %v", acts)
	}
}
