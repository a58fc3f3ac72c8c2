package gormrepo

import (
	"context"
	"errors"

	permDomain "opsplatform-backend/internal/domain/permission"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PermissionRepository struct{ db *gorm.DB }

func NewPermissionRepository(db *gorm.DB) *PermissionRepository {
	return &PermissionRepository{db: db}
}

func (r *PermissionRepository) Get(ctx context.Context, roleID string) (*permDomain.RolePermission, error) {
	var out permDomain.RolePermission
	err := r.db.WithContext(ctx).Where("role_id = ?", roleID).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *PermissionRepository) List(ctx context.Context) ([]permDomain.RolePermission, error) {
	var out []permDomain.RolePermission
	return out, r.db.WithContext(ctx).Find(&out).Error
}

// upsert inserts values, or updates only cols when the row already exists.
func (r *PermissionRepository) upsert(ctx context.Context, values permDomain.RolePermission, cols ...string) error {
	cols = append(cols, "updated_at")
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "role_id"}},
			DoUpdates: clause.AssignmentColumns(cols),
		}).
		Create(&values).Error
}

func (r *PermissionRepository) SetFlag(ctx context.Context, values permDomain.RolePermission, f permDomain.Flag) error {
	if _, err := values.Get(f); err != nil {
		return err
	}
	// flag names are the column names
	return r.upsert(ctx, values, string(f))
}

func (r *PermissionRepository) SetVisibility(ctx context.Context, values permDomain.RolePermission) error {
	return r.upsert(ctx, values, "visibility_level", "visibility_scope")
}

func (r *PermissionRepository) Delete(ctx context.Context, roleID string) error {
	return r.db.WithContext(ctx).Where("role_id = ?", roleID).Delete(&permDomain.RolePermission{}).Error
}
