package event

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-cms/internal/application/service"
	"github.com/khoahotran/portfolio-cms/internal/config"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

const ContentAuditGroupID = "portfolio-content-audit"

const (
	fetchRetryBase = 500 * time.Millisecond
	fetchRetryMax  = 30 * time.Second
)

// ContentHandler processes one decoded event. Returning an error leaves the
// message uncommitted.
type ContentHandler func(ctx context.Context, evt service.ContentChangedEvent) error

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type ContentConsumer struct {
	reader    messageReader
	handler   ContentHandler
	retryBase time.Duration
	retryMax  time.Duration
	logger    logger.Logger
}

func NewContentConsumer(cfg config.Config, handler ContentHandler, log logger.Logger) (*ContentConsumer, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return nil, errors.New("config Kafka brokers not found")
	}
	topic := cfg.Kafka.Topic
	if topic == "" {
		topic = DefaultTopicContentEvents
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    topic,
		GroupID:  ContentAuditGroupID,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	log.Info("Consumer listening", zap.String("topic", topic), zap.String("group_id", ContentAuditGroupID))
	return newContentConsumer(reader, handler, log), nil
}

func newContentConsumer(r messageReader, handler ContentHandler, log logger.Logger) *ContentConsumer {
	return &ContentConsumer{
		reader:    r,
		handler:   handler,
		retryBase: fetchRetryBase,
		retryMax:  fetchRetryMax,
		logger:    log,
	}
}

// Run consumes until ctx is cancelled. Undecodable messages are committed
// and skipped. Consecutive read failures back off exponentially.
func (c *ContentConsumer) Run(ctx context.Context) error {
	failures := 0
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			failures++
			delay := c.retryDelay(failures)
			c.logger.Error("Failed to read message from Kafka", err,
				zap.Int("attempt", failures), zap.Duration("retry_in", delay))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(delay):
			}
			continue
		}
		failures = 0

		var evt service.ContentChangedEvent
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			c.logger.Warn("Failed to unmarshal event, skipping", zap.String("key", string(msg.Key)), zap.Error(err))
			c.commit(ctx, msg)
			continue
		}

		if err := c.handler(ctx, evt); err != nil {
			c.logger.Error("Failed to process event", err, zap.String("event_id", evt.EventID.String()))
			continue
		}
		c.commit(ctx, msg)
	}
}

// retryDelay doubles from retryBase per consecutive failure, capped at retryMax.
func (c *ContentConsumer) retryDelay(failures int) time.Duration {
	delay := c.retryBase
	for i := 1; i < failures && delay < c.retryMax; i++ {
		delay *= 2
	}
	return min(delay, c.retryMax)
}

func (c *ContentConsumer) Close() error {
	return c.reader.Close()
}

func (c *ContentConsumer) commit(ctx context.Context, msg kafka.Message) {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		c.logger.Error("Failed to commit message", err)
	}
}

// AuditLogHandler records every content change in the structured log.
func AuditLogHandler(log logger.Logger) ContentHandler {
	return func(ctx context.Context, evt service.ContentChangedEvent) error {
		log.Info("Content change audited",
			zap.String("event_id", evt.EventID.String()),
			zap.String("event_type", string(evt.EventType)),
			zap.String("collection", evt.Collection),
			zap.Int("record_id", evt.RecordID),
			zap.Time("occurred_at", evt.OccurredAt),
		)
		return nil
	}
}
