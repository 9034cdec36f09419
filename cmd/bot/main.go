package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"max.ks1230/finance-tracker/internal/app"
	"max.ks1230/finance-tracker/internal/clients/kafka"
	"max.ks1230/finance-tracker/internal/clients/tg"
	"max.ks1230/finance-tracker/internal/config"
	"max.ks1230/finance-tracker/internal/entity/event"
	"max.ks1230/finance-tracker/internal/logger"
	"max.ks1230/finance-tracker/internal/metrics"
	"max.ks1230/finance-tracker/internal/model/messages"
	"max.ks1230/finance-tracker/internal/model/rates"
	"max.ks1230/finance-tracker/internal/model/records"
	"max.ks1230/finance-tracker/internal/model/reports"
	"max.ks1230/finance-tracker/internal/model/settings"
	"max.ks1230/finance-tracker/internal/tracing"
)

type eventPublisher interface {
	Publish(ctx context.Context, ev event.Event) error
}

func main() {
	defer logger.Sync()
	logger.Info("Bot init - start")

	conf, err := config.New()
	if err != nil {
		logger.Fatal("failed to init config:", zap.Error(err))
	}

	tracer, err := tracing.Init(conf.Jaeger(), "bot")
	if err != nil {
		logger.Fatal("failed to init tracing", zap.Error(err))
	}
	defer tracer.Close()

	metricsServer := metrics.NewServer(conf.Metrics())
	go metricsServer.Serve()
	defer metricsServer.Shutdown()

	db, dbCloser, err := app.NewStorage(conf)
	if err != nil {
		logger.Fatal("failed to init storage:", zap.Error(err))
	}
	defer dbCloser.Close()

	provider, err := app.NewRatesProvider(conf)
	if err != nil {
		logger.Fatal("failed to init rates provider", zap.Error(err))
	}
	loader := rates.NewLoader(provider)
	defer loader.Close()

	var events eventPublisher = kafka.Noop{}
	if conf.Kafka().Enabled() {
		producer, err := kafka.NewProducer(conf.Kafka())
		if err != nil {
			logger.Fatal("failed to init kafka producer", zap.Error(err))
		}
		defer producer.Close()
		events = producer
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	settingsService := settings.New(conf.App(), db, loader, events)
	if err = settingsService.Load(ctx); err != nil {
		logger.Fatal("failed to load settings", zap.Error(err))
	}

	reportCache := app.NewCache(conf)
	loc := app.Location(conf.App().TimeZone())
	recordsService := records.New(db, events, reportCache)
	generator := reports.NewGenerator(recordsService, settingsService, reportCache, loc)

	client, err := tg.New(conf.Telegram())
	if err != nil {
		logger.Fatal("failed to init client:", zap.Error(err))
	}
	handler := messages.NewHandler(recordsService, settingsService, generator, loc)
	msgService := messages.NewService(client, handler, conf.Telegram())

	logger.Info("Bot init - end")

	client.ListenUpdates(ctx, msgService)
}
