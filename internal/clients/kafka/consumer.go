package kafka

import (
	"context"
	"fmt"

	"github.com/Shopify/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/finance-tracker/internal/entity/event"
	"max.ks1230/finance-tracker/internal/logger"
)

type consumerConfig interface {
	producerConfig
	ConsumerGroup() string
}

type settingsLoader interface {
	Load(ctx context.Context) error
}

type reportsWarmer interface {
	Warm(ctx context.Context) error
}

type Consumer struct {
	consumerGroup sarama.ConsumerGroup
	topic         string
	settings      settingsLoader
	reports       reportsWarmer
}

func NewConsumer(cfg consumerConfig, settings settingsLoader, reports reportsWarmer) (*Consumer, error) {
	config := sarama.NewConfig()
	config.Version = sarama.V2_5_0_0
	config.Consumer.Offsets.Initial = sarama.OffsetNewest

	consumerGroup, err := sarama.NewConsumerGroup(cfg.Brokers(), cfg.ConsumerGroup(), config)
	if err != nil {
		return nil, errors.Wrap(err, "create consumer group")
	}
	return &Consumer{
		consumerGroup: consumerGroup,
		topic:         cfg.EventsTopic(),
		settings:      settings,
		reports:       reports,
	}, nil
}

func (c *Consumer) StartConsuming(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			err := c.consumerGroup.Consume(ctx, []string{c.topic}, c)
			if err != nil {
				return errors.Wrap(err, fmt.Sprintf("consume from %s", c.topic))
			}
		}
	}
}

func (c *Consumer) Close() {
	if err := c.consumerGroup.Close(); err != nil {
		logger.Error("failed to close consumer group", zap.Error(err))
	}
}

func (c *Consumer) Setup(sarama.ConsumerGroupSession) error {
	logger.Info("consumer - setup")
	return nil
}

func (c *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	logger.Info("consumer - cleanup")
	return nil
}

func (c *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		ev, err := decodeEvent(message.Value)
		if err != nil {
			logger.Error("cannot decode kafka message", zap.Error(err))
		} else {
			logger.Info(
				"received event",
				zap.ByteString("key", message.Key),
				zap.String("type", ev.Type),
				zap.String("kind", ev.Kind),
				zap.String("action", ev.Action),
			)
			c.process(session.Context(), ev)
		}
		session.MarkMessage(message, "")
	}

	return nil
}

func (c *Consumer) process(ctx context.Context, ev event.Event) {
	if ev.Type == event.TypeSettingsChanged {
		if err := c.settings.Load(ctx); err != nil {
			logger.Error("failed to reload settings", zap.Error(err))
		}
	}
	if err := c.reports.Warm(ctx); err != nil {
		logger.Error("failed to warm reports", zap.Error(err))
	}
}
