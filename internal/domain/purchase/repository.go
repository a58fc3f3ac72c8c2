package purchase

import "context"

// Scope narrows a listing; an empty RequesterID means every requester.
type Scope struct {
	RequesterID string
}

type Repository interface {
	Create(ctx context.Context, r *Request) error
	Save(ctx context.Context, r *Request) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Request, error)
	// Locks the row until the surrounding transaction ends
	GetByIDForUpdate(ctx context.Context, id string) (*Request, error)
	List(ctx context.Context, scope Scope) ([]Request, error)
}
