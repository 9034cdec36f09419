package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"max.ks1230/finance-tracker/internal/app"
	"max.ks1230/finance-tracker/internal/clients/kafka"
	"max.ks1230/finance-tracker/internal/config"
	"max.ks1230/finance-tracker/internal/logger"
	"max.ks1230/finance-tracker/internal/metrics"
	"max.ks1230/finance-tracker/internal/model/health"
	"max.ks1230/finance-tracker/internal/model/rates"
	"max.ks1230/finance-tracker/internal/model/reports"
	"max.ks1230/finance-tracker/internal/model/settings"
	"max.ks1230/finance-tracker/internal/model/storage"
	"max.ks1230/finance-tracker/internal/tracing"
)

func main() {
	defer logger.Sync()
	logger.Info("Reporter init - start")

	conf, err := config.New()
	if err != nil {
		logger.Fatal("failed to init config:", zap.Error(err))
	}
	if !conf.Kafka().Enabled() || !conf.Postgres().Enabled() {
		logger.Fatal("reporter needs kafka brokers and postgres")
	}

	tracer, err := tracing.Init(conf.Jaeger(), "reporter")
	if err != nil {
		logger.Fatal("failed to init tracing", zap.Error(err))
	}
	defer tracer.Close()

	db, err := storage.NewPostgresStorage(conf.Postgres())
	if err != nil {
		logger.Fatal("failed to init postgres:", zap.Error(err))
	}
	defer db.Close()

	provider, err := app.NewRatesProvider(conf)
	if err != nil {
		logger.Fatal("failed to init rates provider", zap.Error(err))
	}
	loader := rates.NewLoader(provider)
	defer loader.Close()

	healthServer, err := health.NewServer(conf.Metrics())
	if err != nil {
		logger.Fatal("failed to init health server", zap.Error(err))
	}

	// The reporter only reacts to events, it never publishes them.
	settingsService := settings.New(conf.App(), db, loader, kafka.Noop{})
	untrack := healthServer.Track(settingsService)
	defer untrack()

	go healthServer.Serve()
	defer healthServer.Shutdown()

	metricsServer := metrics.NewServer(conf.Metrics())
	go metricsServer.Serve()
	defer metricsServer.Shutdown()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err = settingsService.Load(ctx); err != nil {
		logger.Fatal("failed to load settings", zap.Error(err))
	}

	generator := reports.NewGenerator(db, settingsService, app.NewCache(conf), app.Location(conf.App().TimeZone()))

	// Warm once rates arrive, so the first summaries are served from the cache.
	unwarm := settingsService.Subscribe(func(v settings.View) {
		if v.State == rates.Ready {
			go func() {
				if err := generator.Warm(ctx); err != nil {
					logger.Error("failed to warm reports", zap.Error(err))
				}
			}()
		}
	})
	defer unwarm()

	consumer, err := kafka.NewConsumer(conf.Kafka(), settingsService, generator)
	if err != nil {
		logger.Fatal("failed to init kafka consumer", zap.Error(err))
	}
	defer consumer.Close()

	logger.Info("Reporter init - end")

	if err = consumer.StartConsuming(ctx); err != nil {
		logger.Error("failed to consume", zap.Error(err))
	}
}
