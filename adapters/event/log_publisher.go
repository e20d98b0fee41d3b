package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-cms/internal/application/service"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

type logPublisher struct {
	logger logger.Logger
}

func NewLogPublisher(log logger.Logger) service.EventPublisher {
	return &logPublisher{logger: log}
}

func (p *logPublisher) PublishContentChanged(ctx context.Context, evt service.ContentChangedEvent) error {
	p.logger.Info("Content changed",
		zap.String("event_id", evt.EventID.String()),
		zap.String("event_type", string(evt.EventType)),
		zap.String("collection", evt.Collection),
		zap.Int("record_id", evt.RecordID),
	)
	return nil
}

func (p *logPublisher) Close() error { return nil }
