package records

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/finance-tracker/internal/entity/event"
	"max.ks1230/finance-tracker/internal/entity/finance"
	"max.ks1230/finance-tracker/internal/logger"
)

const (
	KindAccount = "account"
	KindIncome  = "income"
	KindPayment = "payment"
	KindExpense = "expense"
)

var Kinds = []string{KindAccount, KindIncome, KindPayment, KindExpense}

type recordsStorage interface {
	Records(ctx context.Context) (finance.Records, error)
	SaveAccount(ctx context.Context, rec finance.Account) error
	DeleteAccount(ctx context.Context, id string) error
	SaveIncome(ctx context.Context, rec finance.IncomeSource) error
	DeleteIncome(ctx context.Context, id string) error
	SavePayment(ctx context.Context, rec finance.MonthlyPayment) error
	DeletePayment(ctx context.Context, id string) error
	SaveExpense(ctx context.Context, rec finance.Expense) error
	DeleteExpense(ctx context.Context, id string) error
}

type eventPublisher interface {
	Publish(ctx context.Context, ev event.Event) error
}

type reportCache interface {
	Invalidate() error
}

// Service is the owner of the record lists. It validates input, and other
// components only ever get copies of the lists.
type Service struct {
	storage recordsStorage
	events  eventPublisher
	cache   reportCache
	newID   func() string
	now     func() time.Time
}

func New(storage recordsStorage, events eventPublisher, cache reportCache) *Service {
	return &Service{
		storage: storage,
		events:  events,
		cache:   cache,
		newID:   uuid.NewString,
		now:     time.Now,
	}
}

func (s *Service) Records(ctx context.Context) (finance.Records, error) {
	recs, err := s.storage.Records(ctx)
	return recs, errors.Wrap(err, "get records")
}

// SaveAccount adds the account when it has no ID and replaces an existing one otherwise.
func (s *Service) SaveAccount(ctx context.Context, rec finance.Account) (finance.Account, error) {
	if err := finance.ValidateAccount(rec); err != nil {
		return finance.Account{}, err
	}
	action, err := s.prepare(ctx, KindAccount, &rec.ID)
	if err != nil {
		return finance.Account{}, err
	}
	if err = s.storage.SaveAccount(ctx, rec); err != nil {
		return finance.Account{}, errors.Wrap(err, "save account")
	}
	s.changed(ctx, KindAccount, action, rec.ID)
	return rec, nil
}

func (s *Service) SaveIncome(ctx context.Context, rec finance.IncomeSource) (finance.IncomeSource, error) {
	if err := finance.ValidateIncome(rec); err != nil {
		return finance.IncomeSource{}, err
	}
	action, err := s.prepare(ctx, KindIncome, &rec.ID)
	if err != nil {
		return finance.IncomeSource{}, err
	}
	if err = s.storage.SaveIncome(ctx, rec); err != nil {
		return finance.IncomeSource{}, errors.Wrap(err, "save income")
	}
	s.changed(ctx, KindIncome, action, rec.ID)
	return rec, nil
}

func (s *Service) SavePayment(ctx context.Context, rec finance.MonthlyPayment) (finance.MonthlyPayment, error) {
	if err := finance.ValidatePayment(rec); err != nil {
		return finance.MonthlyPayment{}, err
	}
	action, err := s.prepare(ctx, KindPayment, &rec.ID)
	if err != nil {
		return finance.MonthlyPayment{}, err
	}
	if err = s.storage.SavePayment(ctx, rec); err != nil {
		return finance.MonthlyPayment{}, errors.Wrap(err, "save payment")
	}
	s.changed(ctx, KindPayment, action, rec.ID)
	return rec, nil
}

func (s *Service) SaveExpense(ctx context.Context, rec finance.Expense) (finance.Expense, error) {
	if err := finance.ValidateExpense(rec); err != nil {
		return finance.Expense{}, err
	}
	action, err := s.prepare(ctx, KindExpense, &rec.ID)
	if err != nil {
		return finance.Expense{}, err
	}
	if rec.Created.IsZero() {
		rec.Created = s.now()
	}
	if err = s.storage.SaveExpense(ctx, rec); err != nil {
		return finance.Expense{}, errors.Wrap(err, "save expense")
	}
	s.changed(ctx, KindExpense, action, rec.ID)
	return rec, nil
}

// UpdateAmount changes the amount of an existing record.
func (s *Service) UpdateAmount(ctx context.Context, kind, id string, amount float64) error {
	recs, err := s.Records(ctx)
	if err != nil {
		return err
	}

	switch kind {
	case KindAccount:
		rec, ok := find(recs.Accounts, id, func(a finance.Account) string { return a.ID })
		if !ok {
			return finance.ErrRecordDoesNotExist
		}
		rec.Amount = amount
		_, err = s.SaveAccount(ctx, rec)
	case KindIncome:
		rec, ok := find(recs.Incomes, id, func(i finance.IncomeSource) string { return i.ID })
		if !ok {
			return finance.ErrRecordDoesNotExist
		}
		rec.Amount = amount
		_, err = s.SaveIncome(ctx, rec)
	case KindPayment:
		rec, ok := find(recs.Payments, id, func(p finance.MonthlyPayment) string { return p.ID })
		if !ok {
			return finance.ErrRecordDoesNotExist
		}
		rec.Amount = amount
		_, err = s.SavePayment(ctx, rec)
	case KindExpense:
		rec, ok := find(recs.Expenses, id, func(e finance.Expense) string { return e.ID })
		if !ok {
			return finance.ErrRecordDoesNotExist
		}
		rec.Amount = amount
		_, err = s.SaveExpense(ctx, rec)
	default:
		return errors.Wrap(finance.ErrUnknownRecordKind, kind)
	}
	return err
}

func (s *Service) Delete(ctx context.Context, kind, id string) error {
	var err error
	switch kind {
	case KindAccount:
		err = s.storage.DeleteAccount(ctx, id)
	case KindIncome:
		err = s.storage.DeleteIncome(ctx, id)
	case KindPayment:
		err = s.storage.DeletePayment(ctx, id)
	case KindExpense:
		err = s.storage.DeleteExpense(ctx, id)
	default:
		return errors.Wrap(finance.ErrUnknownRecordKind, kind)
	}
	if err != nil {
		return errors.Wrap(err, "delete "+kind)
	}
	s.changed(ctx, kind, event.ActionDeleted, id)
	return nil
}

// prepare assigns an ID to new records and checks that updated ones exist.
func (s *Service) prepare(ctx context.Context, kind string, id *string) (string, error) {
	if *id == "" {
		*id = s.newID()
		return event.ActionAdded, nil
	}

	recs, err := s.Records(ctx)
	if err != nil {
		return "", err
	}
	if !contains(recs, kind, *id) {
		return "", finance.ErrRecordDoesNotExist
	}
	return event.ActionUpdated, nil
}

func (s *Service) changed(ctx context.Context, kind, action, id string) {
	logger.Info("record changed", zap.String("kind", kind), zap.String("action", action), zap.String("id", id))

	if err := s.cache.Invalidate(); err != nil {
		logger.Error("failed to invalidate reports cache", zap.Error(err))
	}
	if err := s.events.Publish(ctx, event.RecordsChanged(kind, action, id)); err != nil {
		logger.Error("failed to publish records event", zap.Error(err))
	}
}

func contains(recs finance.Records, kind, id string) bool {
	var ok bool
	switch kind {
	case KindAccount:
		_, ok = find(recs.Accounts, id, func(a finance.Account) string { return a.ID })
	case KindIncome:
		_, ok = find(recs.Incomes, id, func(i finance.IncomeSource) string { return i.ID })
	case KindPayment:
		_, ok = find(recs.Payments, id, func(p finance.MonthlyPayment) string { return p.ID })
	case KindExpense:
		_, ok = find(recs.Expenses, id, func(e finance.Expense) string { return e.ID })
	}
	return ok
}

func find[T any](items []T, id string, idOf func(T) string) (T, bool) {
	for _, item := range items {
		if idOf(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}
