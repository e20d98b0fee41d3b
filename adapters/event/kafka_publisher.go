package event

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-cms/internal/application/service"
	"github.com/khoahotran/portfolio-cms/internal/config"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

const DefaultTopicContentEvents = "portfolio.content.events"

// messageWriter is the subset of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	writer messageWriter
	logger logger.Logger
}

// NewContentEventPublisher returns a Kafka-backed publisher when brokers are
// configured and a log-only publisher otherwise.
func NewContentEventPublisher(cfg config.Config, log logger.Logger) service.EventPublisher {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		log.Info("Kafka brokers not configured, content events are logged only")
		return NewLogPublisher(log)
	}

	topic := cfg.Kafka.Topic
	if topic == "" {
		topic = DefaultTopicContentEvents
	}

	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
		Async:    true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Error("Failed to deliver content events", err, zap.Int("count", len(messages)))
			}
		},
	}

	log.Info("Initialize Kafka producer successfully", zap.Strings("brokers", brokers), zap.String("topic", topic))
	return newKafkaPublisher(writer, log)
}

func newKafkaPublisher(w messageWriter, log logger.Logger) *kafkaPublisher {
	return &kafkaPublisher{writer: w, logger: log}
}

func (p *kafkaPublisher) PublishContentChanged(ctx context.Context, evt service.ContentChangedEvent) error {
	value, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal content event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(evt.Collection + ":" + strconv.Itoa(evt.RecordID)),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write content event: %w", err)
	}
	return nil
}

func (p *kafkaPublisher) Close() error {
	err := p.writer.Close()
	p.logger.Info("Closed Kafka producer")
	return err
}
