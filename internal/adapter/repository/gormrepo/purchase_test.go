package gormrepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"opsplatform-backend/internal/domain/lineitem"
	domain "opsplatform-backend/internal/domain/purchase"
	"opsplatform-backend/internal/domain/status"
	"opsplatform-backend/internal/domain/workflow"
	"opsplatform-backend/pkg/id"

	"github.com/shopspring/decimal"
)

func makePurchase(requester string, day time.Time) *domain.Request {
	p := domain.NewDraft(id.NewID32(), requester, day)
	p.ProjectID = "PRJ-1"
	p.Type = domain.TypeMaterial
	p.Subcategory = "STRUCTURAL"
	p.Beneficiary = workflow.Beneficiary{Bank: "BCA", Number: "1234567890", Name: "PT Baja"}
	p.SetItems([]lineitem.Item{{Name: "Rebar", Qty: dec(10), Unit: "pcs", UnitPrice: dec(125000)}})
	return p
}

func TestPurchaseRepository_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewPurchaseRepository(db)
	ctx := context.Background()

	p := makePurchase("u1", time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC))
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.Amount.Equal(dec(1250000)) || len(got.Items) != 1 || got.Items[0].Name != "Rebar" {
		t.Fatalf("unexpected request: amount=%s items=%+v", got.Amount, got.Items)
	}
	if got.Beneficiary.Bank != "BCA" || got.ApprovedAmount.Valid {
		t.Fatalf("embedded fields lost: %+v", got)
	}

	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	got.ApprovalStatus = status.ApprovalApproved
	got.ApprovedAmount = decimal.NewNullDecimal(dec(1000000))
	got.Payment = workflow.Payment{Date: &day, SourceOfFundID: "src"}
	if err := repo.Save(ctx, got); err != nil {
		t.Fatalf("Save: %v", err)
	}
	locked, err := repo.GetByIDForUpdate(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByIDForUpdate: %v", err)
	}
	if !locked.ApprovedAmount.Decimal.Equal(dec(1000000)) || locked.Payment.Date == nil || locked.Payment.SourceOfFundID != "src" {
		t.Fatalf("update lost: %+v", locked)
	}
}

func TestPurchaseRepository_NotFound(t *testing.T) {
	repo := NewPurchaseRepository(openTestDB(t))
	ctx := context.Background()
	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByID: %v", err)
	}
	if _, err := repo.GetByIDForUpdate(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByIDForUpdate: %v", err)
	}
	if err := repo.Delete(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Delete: %v", err)
	}
}

func TestPurchaseRepository_ListScope(t *testing.T) {
	db := openTestDB(t)
	repo := NewPurchaseRepository(db)
	ctx := context.Background()

	older := makePurchase("u1", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))
	newer := makePurchase("u1", time.Date(2025, 5, 9, 0, 0, 0, 0, time.UTC))
	other := makePurchase("u2", time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC))
	for _, p := range []*domain.Request{older, newer, other} {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	mine, err := repo.List(ctx, domain.Scope{RequesterID: "u1"})
	if err != nil || len(mine) != 2 {
		t.Fatalf("List mine = %d, %v", len(mine), err)
	}
	if mine[0].ID != newer.ID {
		t.Fatalf("expected newest first")
	}
	all, _ := repo.List(ctx, domain.Scope{})
	if len(all) != 3 {
		t.Fatalf("List all = %d", len(all))
	}

	if err := repo.Delete(ctx, older.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, older.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("deleted row still readable: %v", err)
	}
}
