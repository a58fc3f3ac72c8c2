package reimburse

import "context"

type Scope struct {
	RequesterID string
}

type Repository interface {
	Create(ctx context.Context, r *Request) error
	Save(ctx context.Context, r *Request) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Request, error)
	GetByIDForUpdate(ctx context.Context, id string) (*Request, error)
	List(ctx context.Context, scope Scope) ([]Request, error)
}
