package fundingsource

import (
	"context"
	"errors"
	"testing"

	"opsplatform-backend/internal/domain/access"
	domain "opsplatform-backend/internal/domain/fundingsource"
	"opsplatform-backend/internal/domain/uow"
	"opsplatform-backend/internal/domain/workflow"
	"opsplatform-backend/internal/testutil/fundingsourcemock"
	"opsplatform-backend/internal/testutil/uowmock"

	"github.com/shopspring/decimal"
)

var finance = access.Actor{UserID: "fin", TeamAccess: true}

func newUsecase(repo *fundingsourcemock.Repo) *Usecase {
	return NewUsecase(repo, uowmock.Passthrough(uow.Repos{FundingSources: repo}))
}

func seed() []domain.Source {
	return []domain.Source{
		{ID: "a", Position: 1, IsActive: true},
		{ID: "b", Position: 2, IsActive: true, IsArchived: true},
		{ID: "c", Position: 3, IsActive: true},
		{ID: "d", Position: 4, IsActive: false},
	}
}

func TestUsecase_Create(t *testing.T) {
	var created *domain.Source
	repo := &fundingsourcemock.Repo{
		MaxPositionFn: func(context.Context) (int, error) { return 4, nil },
		CreateFn: func(_ context.Context, s *domain.Source) error {
			created = s
			return nil
		},
	}
	uc := newUsecase(repo)

	if _, err := uc.Create(context.Background(), access.Actor{UserID: "x"}, SaveInput{}); !errors.Is(err, workflow.ErrForbidden) {
		t.Fatalf("staff create: %v", err)
	}
	if _, err := uc.Create(context.Background(), finance, SaveInput{Name: "BCA", Type: domain.TypeBank}); !errors.Is(err, workflow.ErrGuardFailed) {
		t.Fatalf("bank without provider: %v", err)
	}
	s, err := uc.Create(context.Background(), finance, SaveInput{Name: "Kas Proyek", Type: domain.TypePettyCash, Balance: decimal.NewFromInt(500000)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created != s || s.Position != 5 || !s.IsActive || s.IsArchived || s.AccountNumber == "" {
		t.Fatalf("unexpected source %+v", s)
	}
}

func TestUsecase_Move(t *testing.T) {
	var written []domain.Source
	repo := &fundingsourcemock.Repo{
		ListFn: func(context.Context) ([]domain.Source, error) { return seed(), nil },
		UpdatePositionsFn: func(_ context.Context, rows []domain.Source) error {
			written = rows
			return nil
		},
	}
	uc := newUsecase(repo)
	ctx := context.Background()

	// b is archived: in the active view c's upper neighbour is a
	list, err := uc.Move(ctx, finance, "c", domain.ViewActive, domain.Up)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if len(written) != 2 || written[0].ID != "c" || written[0].Position != 1 || written[1].ID != "a" || written[1].Position != 3 {
		t.Fatalf("written = %+v", written)
	}
	if list[0].ID != "c" {
		t.Fatalf("list = %+v", list)
	}

	written = nil
	if _, err := uc.Move(ctx, finance, "a", domain.ViewActive, domain.Up); err != nil || written != nil {
		t.Fatalf("first up must not write, got %v %v", written, err)
	}
	if _, err := uc.Move(ctx, finance, "b", domain.ViewActive, domain.Down); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("archived source is not in the active view: %v", err)
	}
}

func TestUsecase_ListSelectableExcludesArchived(t *testing.T) {
	repo := &fundingsourcemock.Repo{ListFn: func(context.Context) ([]domain.Source, error) { return seed(), nil }}
	got, err := newUsecase(repo).List(context.Background(), domain.ViewSelectable)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, s := range got {
		if s.IsArchived || !s.IsActive {
			t.Fatalf("selector must only list usable sources, got %+v", s)
		}
	}
	if len(got) != 2 {
		t.Fatalf("got %d sources", len(got))
	}
}

func TestUsecase_ToggleAndTopUp(t *testing.T) {
	stored := &domain.Source{ID: "a", IsActive: true, Balance: decimal.NewFromInt(100)}
	repo := &fundingsourcemock.Repo{
		GetByIDForUpdateFn: func(_ context.Context, id string) (*domain.Source, error) {
			if id != "a" {
				return nil, domain.ErrNotFound
			}
			cp := *stored
			return &cp, nil
		},
		SaveFn: func(_ context.Context, s *domain.Source) error {
			*stored = *s
			return nil
		},
	}
	uc := newUsecase(repo)
	ctx := context.Background()

	if _, err := uc.SetArchived(ctx, finance, "a", true); err != nil {
		t.Fatalf("SetArchived: %v", err)
	}
	if !stored.IsActive || !stored.IsArchived {
		t.Fatalf("archive must not touch active: %+v", stored)
	}
	if _, err := uc.SetActive(ctx, finance, "a", false); err != nil || stored.IsActive {
		t.Fatalf("SetActive: %v", err)
	}
	if _, err := uc.TopUp(ctx, finance, "a", decimal.NewFromInt(-5)); err == nil {
		t.Fatal("negative top-up must fail")
	}
	got, err := uc.TopUp(ctx, finance, "a", decimal.NewFromInt(50))
	if err != nil || !got.Balance.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("TopUp: %v %s", err, got.Balance)
	}
	if _, err := uc.SetActive(ctx, finance, "zzz", true); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing source: %v", err)
	}
}
