package gormrepo

import (
	"context"
	"errors"

	purchaseDomain "opsplatform-backend/internal/domain/purchase"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PurchaseRepository struct{ db *gorm.DB }

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository { return &PurchaseRepository{db: db} }

// notFound maps gorm's miss onto the aggregate's sentinel.
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

func (r *PurchaseRepository) Create(ctx context.Context, p *purchaseDomain.Request) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PurchaseRepository) Save(ctx context.Context, p *purchaseDomain.Request) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PurchaseRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&purchaseDomain.Request{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return purchaseDomain.ErrNotFound
	}
	return nil
}

func (r *PurchaseRepository) GetByID(ctx context.Context, id string) (*purchaseDomain.Request, error) {
	var out purchaseDomain.Request
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	if res.Error != nil {
		return nil, notFound(res.Error, purchaseDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *PurchaseRepository) GetByIDForUpdate(ctx context.Context, id string) (*purchaseDomain.Request, error) {
	var out purchaseDomain.Request
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out)
	if res.Error != nil {
		return nil, notFound(res.Error, purchaseDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *PurchaseRepository) List(ctx context.Context, scope purchaseDomain.Scope) ([]purchaseDomain.Request, error) {
	var out []purchaseDomain.Request
	q := r.db.WithContext(ctx).Order("date DESC, created_at DESC")
	if scope.RequesterID != "" {
		q = q.Where("requester_id = ?", scope.RequesterID)
	}
	return out, q.Find(&out).Error
}
