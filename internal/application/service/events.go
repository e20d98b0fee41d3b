package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ContentEventType string

const (
	ContentUpserted ContentEventType = "upserted"
	ContentDeleted  ContentEventType = "deleted"
)

// ContentChangedEvent is emitted after an editor replaces a collection.
type ContentChangedEvent struct {
	EventID    uuid.UUID        `json:"event_id"`
	EventType  ContentEventType `json:"event_type"`
	Collection string           `json:"collection"`
	RecordID   int              `json:"record_id,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}

type EventPublisher interface {
	PublishContentChanged(ctx context.Context, evt ContentChangedEvent) error
	Close() error
}
