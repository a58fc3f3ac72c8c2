package uow

import (
	"context"

	"opsplatform-backend/internal/domain/fundingsource"
	"opsplatform-backend/internal/domain/permission"
	"opsplatform-backend/internal/domain/purchase"
	"opsplatform-backend/internal/domain/reimburse"
	"opsplatform-backend/internal/domain/role"
	"opsplatform-backend/internal/domain/workflow"
)

// Repos are bound to the transaction they were handed out in.
type Repos struct {
	Purchases      purchase.Repository
	Reimburses     reimburse.Repository
	FundingSources fundingsource.Repository
	Roles          role.Repository
	Permissions    permission.Repository
	Events         workflow.EventRepository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// lock the purchasing request first, then pass it in
	WithinPurchaseTx(ctx context.Context, id string, fn func(r Repos, p *purchase.Request) error) error
	// lock the reimbursement request first, then pass it in
	WithinReimburseTx(ctx context.Context, id string, fn func(r Repos, rr *reimburse.Request) error) error
}
