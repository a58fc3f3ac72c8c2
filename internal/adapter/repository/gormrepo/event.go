package gormrepo

import (
	"context"

	"opsplatform-backend/internal/domain/workflow"

	"gorm.io/gorm"
)

type EventRepository struct{ db *gorm.DB }

func NewEventRepository(db *gorm.DB) *EventRepository { return &EventRepository{db: db} }

func (r *EventRepository) Create(ctx context.Context, e *workflow.Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// ListBySubject returns history oldest first.
func (r *EventRepository) ListBySubject(ctx context.Context, subject workflow.Subject, subjectID string) ([]workflow.Event, error) {
	var out []workflow.Event
	err := r.db.WithContext(ctx).
		Where("subject = ? AND subject_id = ?", subject, subjectID).
		Order("id ASC").
		Find(&out).Error
	return out, err
}
