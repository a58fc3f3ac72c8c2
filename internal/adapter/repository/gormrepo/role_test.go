package gormrepo

import (
	"context"
	"errors"
	"testing"

	domain "opsplatform-backend/internal/domain/role"
)

func TestRoleRepository_CRUDAndOrder(t *testing.T) {
	repo := NewRoleRepository(openTestDB(t))
	ctx := context.Background()

	for i, code := range []string{"FINANCE", "STAFF", "ADMIN"} {
		r := &domain.SystemRole{ID: code, Code: code, Name: code, Status: domain.StatusActive, OrderIndex: i + 1}
		if err := repo.Create(ctx, r); err != nil {
			t.Fatalf("Create %s: %v", code, err)
		}
	}
	dup := &domain.SystemRole{ID: "X", Code: "STAFF", Name: "Dup", Status: domain.StatusActive}
	if err := repo.Create(ctx, dup); !errors.Is(err, domain.ErrDuplicateCode) {
		t.Fatalf("duplicate code: %v", err)
	}

	if n, _ := repo.MaxOrderIndex(ctx); n != 3 {
		t.Fatalf("MaxOrderIndex = %d", n)
	}
	got, err := repo.GetByCode(ctx, "STAFF")
	if err != nil || got.ID != "STAFF" {
		t.Fatalf("GetByCode = %+v, %v", got, err)
	}
	if _, err := repo.GetByCode(ctx, "NOPE"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByCode missing: %v", err)
	}

	all, _ := repo.List(ctx)
	ordered, err := domain.Reorder(all, []string{"ADMIN", "FINANCE", "STAFF"})
	if err != nil {
		t.Fatalf("Reorder: %v", err)
	}
	if err := repo.UpdateOrder(ctx, ordered); err != nil {
		t.Fatalf("UpdateOrder: %v", err)
	}
	all, _ = repo.List(ctx)
	if all[0].Code != "ADMIN" || all[2].Code != "STAFF" {
		t.Fatalf("order = %s %s %s", all[0].Code, all[1].Code, all[2].Code)
	}

	if err := repo.Delete(ctx, "ADMIN"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, "ADMIN"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second Delete: %v", err)
	}
}
