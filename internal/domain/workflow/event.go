package workflow

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type Subject string

const (
	SubjectPurchase  Subject = "purchase"
	SubjectReimburse Subject = "reimburse"
)

// Event is one append-only history row for a request transition.
type Event struct {
	ID        uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	Subject   Subject        `gorm:"column:subject;size:20;not null;index:idx_workflow_events_subject" json:"subject"`
	SubjectID string         `gorm:"column:subject_id;size:32;not null;index:idx_workflow_events_subject" json:"subject_id"`
	Action    Action         `gorm:"column:action;size:30;not null" json:"action"`
	ActorID   string         `gorm:"column:actor_id;size:64" json:"actor_id"`
	From      string         `gorm:"column:from_status;size:30" json:"from"`
	To        string         `gorm:"column:to_status;size:30" json:"to"`
	Payload   datatypes.JSON `gorm:"column:payload" json:"payload,omitempty"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Event) TableName() string { return "workflow_events" }

// NewEvent builds an event; payload is marshalled as-is and dropped when nil.
func NewEvent(subject Subject, subjectID string, action Action, actorID, from, to string, payload any) *Event {
	ev := &Event{
		Subject:   subject,
		SubjectID: subjectID,
		Action:    action,
		ActorID:   actorID,
		From:      from,
		To:        to,
	}
	if payload != nil {
		if b, err := json.Marshal(payload); err == nil {
			ev.Payload = datatypes.JSON(b)
		}
	}
	return ev
}

type EventRepository interface {
	Create(ctx context.Context, e *Event) error
	ListBySubject(ctx context.Context, subject Subject, subjectID string) ([]Event, error)
}
