package http

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"testing"

	"opsplatform-backend/internal/domain/access"
	domain "opsplatform-backend/internal/domain/fundingsource"
	"opsplatform-backend/internal/domain/reconcile"
	"opsplatform-backend/internal/domain/uow"
	"opsplatform-backend/internal/testutil/fundingsourcemock"
	"opsplatform-backend/internal/testutil/uowmock"
	"opsplatform-backend/internal/usecase/fundingsource"

	"github.com/shopspring/decimal"
)

var (
	srcA = strings.Repeat("a", 32)
	srcB = strings.Repeat("b", 32)
	srcC = strings.Repeat("c", 32)

	teamActor = access.Actor{UserID: "fin", RoleCode: "FINANCE", TeamAccess: true}
)

func newFundingHandler(t *testing.T) (*FundingSourceHandler, map[string]*domain.Source) {
	t.Helper()
	store := map[string]*domain.Source{
		srcA: {ID: srcA, Name: "BCA Ops", Type: domain.TypeBank, Provider: domain.ProviderBCA, Balance: decimal.NewFromInt(100), Position: 1, IsActive: true},
		srcB: {ID: srcB, Name: "Petty", Type: domain.TypePettyCash, Balance: decimal.Zero, Position: 2, IsActive: true},
		srcC: {ID: srcC, Name: "Old", Type: domain.TypeCash, Balance: decimal.Zero, Position: 3, IsArchived: true},
	}
	get := func(_ context.Context, id string) (*domain.Source, error) {
		s, ok := store[id]
		if !ok {
			return nil, domain.ErrNotFound
		}
		cp := *s
		return &cp, nil
	}
	put := func(_ context.Context, s *domain.Source) error {
		cp := *s
		store[s.ID] = &cp
		return nil
	}
	repo := &fundingsourcemock.Repo{
		CreateFn: put, SaveFn: put, GetByIDFn: get, GetByIDForUpdateFn: get,
		ListFn: func(context.Context) ([]domain.Source, error) {
			out := make([]domain.Source, 0, len(store))
			for _, s := range store {
				out = append(out, *s)
			}
			return out, nil
		},
		MaxPositionFn: func(context.Context) (int, error) { return len(store), nil },
		UpdatePositionsFn: func(_ context.Context, rows []domain.Source) error {
			for _, r := range rows {
				store[r.ID].Position = r.Position
			}
			return nil
		},
	}
	tx := uowmock.Passthrough(uow.Repos{FundingSources: repo})
	return NewFundingSourceHandler(fundingsource.NewUsecase(repo, tx), nullLogger()), store
}

func TestFundingList_Views(t *testing.T) {
	h, _ := newFundingHandler(t)
	e := newEchoWithValidator()

	c, rec := jsonCtx(e, http.MethodGet, "/api/finance/funding-sources", nil, teamActor)
	if err := h.List(c); err != nil {
		t.Fatalf("List error: %v", err)
	}
	var active []domain.Source
	_ = json.Unmarshal(rec.Body.Bytes(), &active)
	if len(active) != 2 || active[0].ID != srcA || active[1].ID != srcB {
		t.Fatalf("default view must be active sources in order, got %+v", active)
	}

	c, rec = jsonCtx(e, http.MethodGet, "/api/finance/funding-sources?view=archived", nil, teamActor)
	if err := h.List(c); err != nil {
		t.Fatalf("List error: %v", err)
	}
	var archived []domain.Source
	_ = json.Unmarshal(rec.Body.Bytes(), &archived)
	if len(archived) != 1 || archived[0].ID != srcC {
		t.Fatalf("archived view = %+v", archived)
	}

	c, rec = jsonCtx(e, http.MethodGet, "/api/finance/funding-sources?view=everything", nil, teamActor)
	if err := h.List(c); err != nil {
		t.Fatalf("List error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestFundingCreate_GeneratesAccountNumber(t *testing.T) {
	h, store := newFundingHandler(t)
	c, rec := jsonCtx(newEchoWithValidator(), http.MethodPost, "/api/finance/funding-sources",
		map[string]any{"name": "  Site Petty  ", "type": "PETTY_CASH", "provider": "bca", "balance": "250000"}, teamActor)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d; body=%s", rec.Code, rec.Body.String())
	}
	var got domain.Source
	_ = json.Unmarshal(rec.Body.Bytes(), &got)
	if got.Name != "Site Petty" || got.Provider != "" || got.Position != 4 {
		t.Fatalf("unexpected source: %+v", got)
	}
	if !regexp.MustCompile(`^PC-\d{4}-\d{4}$`).MatchString(got.AccountNumber) {
		t.Fatalf("account number = %q", got.AccountNumber)
	}
	if _, ok := store[got.ID]; !ok {
		t.Fatalf("source not stored")
	}
}

func TestFundingCreate_Rejections(t *testing.T) {
	h, _ := newFundingHandler(t)
	e := newEchoWithValidator()

	c, rec := jsonCtx(e, http.MethodPost, "/", map[string]any{"name": "X", "type": "CRYPTO", "balance": -1}, teamActor)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	er := decodeErr(t, rec)
	if rec.Code != http.StatusUnprocessableEntity || !containsFieldMsg(er.Details, "Type", "one of") || !containsFieldMsg(er.Details, "Balance", "greater than or equal to 0") {
		t.Fatalf("unexpected: %d %+v", rec.Code, er)
	}

	c, rec = jsonCtx(e, http.MethodPost, "/", map[string]any{"name": "X", "type": "CASH"}, access.Actor{UserID: "u1", RoleCode: "STAFF"})
	if err := h.Create(c); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("staff create status = %d, want 403", rec.Code)
	}
}

func TestFundingToggleAndTopUp(t *testing.T) {
	h, store := newFundingHandler(t)
	e := newEchoWithValidator()

	c, rec := jsonCtx(e, http.MethodPost, "/", map[string]any{"value": false}, teamActor, "id", srcA)
	if err := h.SetActive(c); err != nil {
		t.Fatalf("SetActive error: %v", err)
	}
	if rec.Code != http.StatusOK || store[srcA].IsActive {
		t.Fatalf("deactivate: %d active=%v", rec.Code, store[srcA].IsActive)
	}

	c, rec = jsonCtx(e, http.MethodPost, "/", map[string]any{}, teamActor, "id", srcA)
	if err := h.SetArchived(c); err != nil {
		t.Fatalf("SetArchived error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("missing value status = %d, want 422", rec.Code)
	}
	if er := decodeErr(t, rec); er.Reconcile != string(reconcile.Refetch) {
		t.Fatalf("archive reconcile = %q, want refetch", er.Reconcile)
	}

	c, rec = jsonCtx(e, http.MethodPost, "/", map[string]any{"amount": "0"}, teamActor, "id", srcB)
	if err := h.TopUp(c); err != nil {
		t.Fatalf("TopUp error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("zero top-up status = %d, want 422", rec.Code)
	}

	c, rec = jsonCtx(e, http.MethodPost, "/", map[string]any{"amount": "50000.50"}, teamActor, "id", srcB)
	if err := h.TopUp(c); err != nil {
		t.Fatalf("TopUp error: %v", err)
	}
	if rec.Code != http.StatusOK || !store[srcB].Balance.Equal(decimal.RequireFromString("50000.50")) {
		t.Fatalf("top-up: %d balance=%s", rec.Code, store[srcB].Balance)
	}
}

func TestFundingMove(t *testing.T) {
	h, store := newFundingHandler(t)
	e := newEchoWithValidator()

	c, rec := jsonCtx(e, http.MethodPost, "/", map[string]any{"direction": "up"}, teamActor, "id", srcB)
	if err := h.Move(c); err != nil {
		t.Fatalf("Move error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body=%s", rec.Code, rec.Body.String())
	}
	if store[srcB].Position != 1 || store[srcA].Position != 2 {
		t.Fatalf("positions not swapped: a=%d b=%d", store[srcA].Position, store[srcB].Position)
	}

	c, rec = jsonCtx(e, http.MethodPost, "/", map[string]any{"direction": "sideways"}, teamActor, "id", srcB)
	if err := h.Move(c); err != nil {
		t.Fatalf("Move error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad direction status = %d, want 422", rec.Code)
	}
	if er := decodeErr(t, rec); er.Reconcile != string(reconcile.Rollback) {
		t.Fatalf("move reconcile = %q, want rollback", er.Reconcile)
	}
}
