// Package settings holds the display currency and the rate table that goes with it.
//
// Service is the only writer of the display currency. Every aggregation pass reads
// a View, which carries a rate table only when the table was fetched for the
// current display currency and is ready.
package settings

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/finance-tracker/internal/entity/currency"
	"max.ks1230/finance-tracker/internal/entity/event"
	"max.ks1230/finance-tracker/internal/logger"
	"max.ks1230/finance-tracker/internal/model/rates"
)

var ErrInvalidCurrency = errors.New("invalid currency code")

type settingsStorage interface {
	GetDisplayCurrency(ctx context.Context) (string, error)
	SaveDisplayCurrency(ctx context.Context, code string) error
}

type ratesLoader interface {
	Request(ctx context.Context, curr string)
	Refresh(ctx context.Context)
	Snapshot() rates.Snapshot
	Subscribe(fn func(rates.Snapshot)) (unsubscribe func())
}

type eventPublisher interface {
	Publish(ctx context.Context, ev event.Event) error
}

type config interface {
	DefaultCurrency() string
}

type View struct {
	DisplayCurrency string
	State           rates.State
	Rates           *currency.Rates
	Err             error
}

type Service struct {
	storage         settingsStorage
	loader          ratesLoader
	events          eventPublisher
	defaultCurrency string

	writeMu sync.Mutex

	mu      sync.RWMutex
	display string
}

func New(cfg config, storage settingsStorage, loader ratesLoader, events eventPublisher) *Service {
	return &Service{
		storage:         storage,
		loader:          loader,
		events:          events,
		defaultCurrency: cfg.DefaultCurrency(),
		display:         cfg.DefaultCurrency(),
	}
}

// Load reads the persisted display currency and requests its rates.
func (s *Service) Load(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	curr, err := s.storage.GetDisplayCurrency(ctx)
	if err != nil {
		return errors.Wrap(err, "load settings")
	}
	curr = currency.Normalize(curr)
	if !currency.Valid(curr) {
		curr = s.defaultCurrency
	}
	logger.Info("Display currency loaded", zap.String("currency", curr))

	s.setDisplay(curr)
	s.loader.Request(ctx, curr)
	return nil
}

func (s *Service) DisplayCurrency() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.display
}

// SetDisplayCurrency persists code and switches the rate table to it.
// It returns the normalized code.
func (s *Service) SetDisplayCurrency(ctx context.Context, code string) (string, error) {
	code = currency.Normalize(code)
	if !currency.Valid(code) {
		return "", errors.Wrap(ErrInvalidCurrency, code)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.storage.SaveDisplayCurrency(ctx, code); err != nil {
		return "", errors.Wrap(err, "save display currency")
	}
	changed := s.DisplayCurrency() != code
	s.setDisplay(code)
	s.loader.Request(ctx, code)

	if changed {
		logger.Info("Display currency changed", zap.String("currency", code))
		if err := s.events.Publish(ctx, event.SettingsChanged(code)); err != nil {
			logger.Error("failed to publish settings event", zap.Error(err))
		}
	}
	return code, nil
}

// RefreshRates fetches the table for the display currency again.
func (s *Service) RefreshRates(ctx context.Context) View {
	s.loader.Refresh(ctx)
	return s.View()
}

func (s *Service) View() View {
	return s.viewOf(s.loader.Snapshot())
}

// Subscribe calls fn with a fresh view after every rate state change.
func (s *Service) Subscribe(fn func(View)) (unsubscribe func()) {
	return s.loader.Subscribe(func(snap rates.Snapshot) {
		fn(s.viewOf(snap))
	})
}

func (s *Service) setDisplay(curr string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.display = curr
}

func (s *Service) viewOf(snap rates.Snapshot) View {
	v := View{DisplayCurrency: s.DisplayCurrency(), State: snap.State}
	if snap.State != rates.Idle && snap.Currency != v.DisplayCurrency {
		// the loader has not caught up with the display currency yet
		v.State = rates.Loading
		return v
	}
	v.Err = snap.Err
	if snap.State == rates.Ready {
		v.Rates = snap.Rates
	}
	return v
}
