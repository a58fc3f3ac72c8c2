package gormrepo

import (
	"context"
	"errors"

	roleDomain "opsplatform-backend/internal/domain/role"

	"gorm.io/gorm"
)

type RoleRepository struct{ db *gorm.DB }

func NewRoleRepository(db *gorm.DB) *RoleRepository { return &RoleRepository{db: db} }

func duplicate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return roleDomain.ErrDuplicateCode
	}
	return err
}

func (r *RoleRepository) Create(ctx context.Context, role *roleDomain.SystemRole) error {
	return duplicate(r.db.WithContext(ctx).Create(role).Error)
}

func (r *RoleRepository) Save(ctx context.Context, role *roleDomain.SystemRole) error {
	return duplicate(r.db.WithContext(ctx).Save(role).Error)
}

func (r *RoleRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&roleDomain.SystemRole{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return roleDomain.ErrNotFound
	}
	return nil
}

func (r *RoleRepository) GetByID(ctx context.Context, id string) (*roleDomain.SystemRole, error) {
	var out roleDomain.SystemRole
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, notFound(err, roleDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *RoleRepository) GetByCode(ctx context.Context, code string) (*roleDomain.SystemRole, error) {
	var out roleDomain.SystemRole
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&out).Error; err != nil {
		return nil, notFound(err, roleDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *RoleRepository) List(ctx context.Context) ([]roleDomain.SystemRole, error) {
	var out []roleDomain.SystemRole
	return out, r.db.WithContext(ctx).Order("order_index ASC, id ASC").Find(&out).Error
}

func (r *RoleRepository) MaxOrderIndex(ctx context.Context) (int, error) {
	var n int
	err := r.db.WithContext(ctx).
		Model(&roleDomain.SystemRole{}).
		Select("COALESCE(MAX(order_index), 0)").
		Scan(&n).Error
	return n, err
}

func (r *RoleRepository) UpdateOrder(ctx context.Context, roles []roleDomain.SystemRole) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, role := range roles {
			err := tx.Model(&roleDomain.SystemRole{}).
				Where("id = ?", role.ID).
				UpdateColumn("order_index", role.OrderIndex).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
