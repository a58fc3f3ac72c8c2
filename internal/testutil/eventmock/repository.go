package eventmock

import (
	"context"
	"sync"

	"opsplatform-backend/internal/domain/workflow"
)

var _ workflow.EventRepository = (*Repo)(nil)

// Repo records created events in memory unless CreateFn is set.
type Repo struct {
	CreateFn func(ctx context.Context, e *workflow.Event) error
	ListFn   func(ctx context.Context, subject workflow.Subject, subjectID string) ([]workflow.Event, error)

	mu     sync.Mutex
	Events []workflow.Event
}

func (m *Repo) Create(ctx context.Context, e *workflow.Event) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, e)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, *e)
	return nil
}

func (m *Repo) ListBySubject(ctx context.Context, subject workflow.Subject, subjectID string) ([]workflow.Event, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, subject, subjectID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []workflow.Event
	for _, e := range m.Events {
		if e.Subject == subject && e.SubjectID == subjectID {
			out = append(out, e)
		}
	}
	return out, nil
}

// Actions returns the recorded actions in order.
func (m *Repo) Actions() []workflow.Action {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]workflow.Action, len(m.Events))
	for i, e := range m.Events {
		out[i] = e.Action
	}
	return out
}
