package kafka

import (
	"context"

	"github.com/Shopify/sarama"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/finance-tracker/internal/entity/event"
	"max.ks1230/finance-tracker/internal/logger"
)

type producerConfig interface {
	Brokers() []string
	EventsTopic() string
}

type Producer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewProducer(cfg producerConfig) (*Producer, error) {
	config := sarama.NewConfig()
	config.Version = sarama.V2_5_0_0
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(cfg.Brokers(), config)
	if err != nil {
		return nil, errors.Wrap(err, "create producer")
	}
	return &Producer{
		producer: producer,
		topic:    cfg.EventsTopic(),
	}, nil
}

// Publish sends the event keyed by its type, so events of one type stay ordered.
func (p *Producer) Publish(ctx context.Context, ev event.Event) error {
	span, _ := opentracing.StartSpanFromContext(ctx, "publishEvent")
	defer span.Finish()
	span.SetTag("type", ev.Type)

	data, err := encodeEvent(ev)
	if err != nil {
		return err
	}
	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(ev.Type),
		Value: sarama.ByteEncoder(data),
	})
	if err != nil {
		return errors.Wrap(err, "publish event")
	}
	logger.Debug("event published",
		zap.String("type", ev.Type),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
	)
	return nil
}

func (p *Producer) Close() {
	err := p.producer.Close()
	if err != nil {
		logger.Error("failed to close producer", zap.Error(err))
	}
}

// Noop drops events when no brokers are configured.
type Noop struct{}

func (Noop) Publish(_ context.Context, ev event.Event) error {
	logger.Debug("event dropped", zap.String("type", ev.Type))
	return nil
}
