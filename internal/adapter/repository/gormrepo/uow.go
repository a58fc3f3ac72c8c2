package gormrepo

import (
	"context"

	"opsplatform-backend/internal/domain/purchase"
	"opsplatform-backend/internal/domain/reimburse"
	"opsplatform-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

// Repos binds every repository to db.
func Repos(db *gorm.DB) uow.Repos {
	return uow.Repos{
		Purchases:      &PurchaseRepository{db: db},
		Reimburses:     &ReimburseRepository{db: db},
		FundingSources: &FundingSourceRepository{db: db},
		Roles:          &RoleRepository{db: db},
		Permissions:    &PermissionRepository{db: db},
		Events:         &EventRepository{db: db},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(Repos(tx))
	})
}

func (u *GormUoW) WithinPurchaseTx(ctx context.Context, id string, fn func(r uow.Repos, p *purchase.Request) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := Repos(tx)
		// lock the request row up-front so concurrent reviewers serialize
		p, err := r.Purchases.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		return fn(r, p)
	})
}

func (u *GormUoW) WithinReimburseTx(ctx context.Context, id string, fn func(r uow.Repos, rr *reimburse.Request) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := Repos(tx)
		rr, err := r.Reimburses.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		return fn(r, rr)
	})
}
