package fundingsource

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, s *Source) error
	Save(ctx context.Context, s *Source) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Source, error)
	GetByIDForUpdate(ctx context.Context, id string) (*Source, error)
	List(ctx context.Context) ([]Source, error)
	MaxPosition(ctx context.Context) (int, error)
	// UpdatePositions writes only the position column of each row.
	UpdatePositions(ctx context.Context, rows []Source) error
	// AddBalance applies delta atomically; delta may be negative.
	AddBalance(ctx context.Context, id string, delta decimal.Decimal) error
}
