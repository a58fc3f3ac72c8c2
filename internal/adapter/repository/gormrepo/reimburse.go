package gormrepo

import (
	"context"

	reimburseDomain "opsplatform-backend/internal/domain/reimburse"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReimburseRepository struct{ db *gorm.DB }

func NewReimburseRepository(db *gorm.DB) *ReimburseRepository { return &ReimburseRepository{db: db} }

func (r *ReimburseRepository) Create(ctx context.Context, rr *reimburseDomain.Request) error {
	return r.db.WithContext(ctx).Create(rr).Error
}

func (r *ReimburseRepository) Save(ctx context.Context, rr *reimburseDomain.Request) error {
	return r.db.WithContext(ctx).Save(rr).Error
}

func (r *ReimburseRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&reimburseDomain.Request{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return reimburseDomain.ErrNotFound
	}
	return nil
}

func (r *ReimburseRepository) GetByID(ctx context.Context, id string) (*reimburseDomain.Request, error) {
	var out reimburseDomain.Request
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, notFound(err, reimburseDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *ReimburseRepository) GetByIDForUpdate(ctx context.Context, id string) (*reimburseDomain.Request, error) {
	var out reimburseDomain.Request
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out).Error
	if err != nil {
		return nil, notFound(err, reimburseDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *ReimburseRepository) List(ctx context.Context, scope reimburseDomain.Scope) ([]reimburseDomain.Request, error) {
	var out []reimburseDomain.Request
	q := r.db.WithContext(ctx).Order("date DESC, created_at DESC")
	if scope.RequesterID != "" {
		q = q.Where("requester_id = ?", scope.RequesterID)
	}
	return out, q.Find(&out).Error
}
