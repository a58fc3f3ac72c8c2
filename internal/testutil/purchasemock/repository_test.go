package purchasemock

import (
	"context"
	"errors"
	"testing"

	domain "opsplatform-backend/internal/domain/purchase"
)

func TestRepo_Create(t *testing.T) {
	ctx := context.Background()
	r := &domain.Request{ID: "p1"}

	called := false
	wantErr := errors.New("boom")
	m := &Repo{
		CreateFn: func(gotCtx context.Context, got *domain.Request) error {
			called = true
			if gotCtx != ctx || got != r {
				t.Fatalf("args not forwarded")
			}
			return wantErr
		},
	}
	if err := m.Create(ctx, r); !errors.Is(err, wantErr) {
		t.Fatalf("Create: want %v, got %v", wantErr, err)
	}
	if !called {
		t.Fatalf("CreateFn not called")
	}

	// Default (nil func) → no-op, nil error
	m = &Repo{}
	if err := m.Create(ctx, r); err != nil {
		t.Fatalf("Create default: want nil, got %v", err)
	}
}

func TestRepo_ReadsDefaultToUnimplemented(t *testing.T) {
	ctx := context.Background()
	m := &Repo{}
	if _, err := m.GetByID(ctx, "x"); !errors.Is(err, errUnimplemented) {
		t.Fatalf("GetByID default: %v", err)
	}
	if _, err := m.GetByIDForUpdate(ctx, "x"); !errors.Is(err, errUnimplemented) {
		t.Fatalf("GetByIDForUpdate default: %v", err)
	}
	if _, err := m.List(ctx, domain.Scope{}); !errors.Is(err, errUnimplemented) {
		t.Fatalf("List default: %v", err)
	}

	m.ListFn = func(_ context.Context, s domain.Scope) ([]domain.Request, error) {
		if s.RequesterID != "u1" {
			t.Fatalf("scope not forwarded: %+v", s)
		}
		return []domain.Request{{ID: "a"}}, nil
	}
	got, err := m.List(ctx, domain.Scope{RequesterID: "u1"})
	if err != nil || len(got) != 1 {
		t.Fatalf("List = %v, %v", got, err)
	}
}
