package gormrepo

import (
	"context"

	fsDomain "opsplatform-backend/internal/domain/fundingsource"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FundingSourceRepository struct{ db *gorm.DB }

func NewFundingSourceRepository(db *gorm.DB) *FundingSourceRepository {
	return &FundingSourceRepository{db: db}
}

func (r *FundingSourceRepository) Create(ctx context.Context, s *fsDomain.Source) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *FundingSourceRepository) Save(ctx context.Context, s *fsDomain.Source) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *FundingSourceRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&fsDomain.Source{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fsDomain.ErrNotFound
	}
	return nil
}

func (r *FundingSourceRepository) GetByID(ctx context.Context, id string) (*fsDomain.Source, error) {
	var out fsDomain.Source
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, notFound(err, fsDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *FundingSourceRepository) GetByIDForUpdate(ctx context.Context, id string) (*fsDomain.Source, error) {
	var out fsDomain.Source
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out).Error
	if err != nil {
		return nil, notFound(err, fsDomain.ErrNotFound)
	}
	return &out, nil
}

// List returns every source; views are filtered in the domain.
func (r *FundingSourceRepository) List(ctx context.Context) ([]fsDomain.Source, error) {
	var out []fsDomain.Source
	return out, r.db.WithContext(ctx).Order("position ASC").Find(&out).Error
}

func (r *FundingSourceRepository) MaxPosition(ctx context.Context) (int, error) {
	var n int
	err := r.db.WithContext(ctx).
		Model(&fsDomain.Source{}).
		Select("COALESCE(MAX(position), 0)").
		Scan(&n).Error
	return n, err
}

func (r *FundingSourceRepository) UpdatePositions(ctx context.Context, rows []fsDomain.Source) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, s := range rows {
			res := tx.Model(&fsDomain.Source{}).Where("id = ?", s.ID).UpdateColumn("position", s.Position)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fsDomain.ErrNotFound
			}
		}
		return nil
	})
}

func (r *FundingSourceRepository) AddBalance(ctx context.Context, id string, delta decimal.Decimal) error {
	res := r.db.WithContext(ctx).
		Model(&fsDomain.Source{}).
		Where("id = ?", id).
		UpdateColumn("balance", gorm.Expr("balance + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fsDomain.ErrNotFound
	}
	return nil
}
