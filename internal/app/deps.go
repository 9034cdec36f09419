// Package app builds the components shared by the bot and the reporter.
package app

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/finance-tracker/internal/clients/cache"
	"max.ks1230/finance-tracker/internal/clients/exrate"
	"max.ks1230/finance-tracker/internal/clients/fixer"
	"max.ks1230/finance-tracker/internal/config"
	"max.ks1230/finance-tracker/internal/entity/currency"
	"max.ks1230/finance-tracker/internal/entity/finance"
	"max.ks1230/finance-tracker/internal/logger"
	"max.ks1230/finance-tracker/internal/model/storage"
)

type RatesProvider interface {
	Name() string
	GetRates(ctx context.Context, base string) (*currency.Rates, error)
}

type Storage interface {
	Records(ctx context.Context) (finance.Records, error)
	SaveAccount(ctx context.Context, rec finance.Account) error
	DeleteAccount(ctx context.Context, id string) error
	SaveIncome(ctx context.Context, rec finance.IncomeSource) error
	DeleteIncome(ctx context.Context, id string) error
	SavePayment(ctx context.Context, rec finance.MonthlyPayment) error
	DeletePayment(ctx context.Context, id string) error
	SaveExpense(ctx context.Context, rec finance.Expense) error
	DeleteExpense(ctx context.Context, id string) error
	GetDisplayCurrency(ctx context.Context) (string, error)
	SaveDisplayCurrency(ctx context.Context, code string) error
}

type ReportCache interface {
	GetReport(key string) (string, bool, error)
	CacheReport(key, report string) error
	Invalidate() error
}

var ErrUnknownProvider = errors.New("unknown rates provider")

func NewRatesProvider(conf *config.Service) (RatesProvider, error) {
	switch conf.Rates().Provider() {
	case config.ProviderOpenER:
		return exrate.New(conf.Rates()), nil
	case config.ProviderFixer:
		return fixer.New(conf.Fixer()), nil
	}
	return nil, errors.Wrap(ErrUnknownProvider, conf.Rates().Provider())
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewStorage opens postgres when it is configured and falls back to memory otherwise.
func NewStorage(conf *config.Service) (Storage, io.Closer, error) {
	if !conf.Postgres().Enabled() {
		logger.Warn("postgres is not configured, records are kept in memory")
		return storage.NewInMemStorage(), nopCloser{}, nil
	}
	db, err := storage.NewPostgresStorage(conf.Postgres())
	if err != nil {
		return nil, nil, err
	}
	return db, closerFunc(db.Close), nil
}

func NewCache(conf *config.Service) ReportCache {
	if !conf.Memcached().Enabled() {
		return cache.Noop{}
	}
	mc, err := cache.NewMemcache(conf.Memcached())
	if err != nil {
		logger.Error("memcached is unavailable, reports are not cached", zap.Error(err))
		return cache.Noop{}
	}
	return mc
}

// Location falls back to UTC when the zone database has no such name.
func Location(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		logger.Warn("unknown time zone, using UTC", zap.String("location", name))
		return time.UTC
	}
	return loc
}

type closerFunc func()

func (f closerFunc) Close() error {
	f()
	return nil
}
