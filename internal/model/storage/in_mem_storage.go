package storage

import (
	"context"
	"sync"

	"max.ks1230/finance-tracker/internal/entity/finance"
)

// InMemStorage keeps the lists in process memory. Every read returns a copy.
type InMemStorage struct {
	mu       sync.RWMutex
	accounts []finance.Account
	incomes  []finance.IncomeSource
	payments []finance.MonthlyPayment
	expenses []finance.Expense
	display  string
}

func NewInMemStorage() *InMemStorage {
	return &InMemStorage{}
}

func (s *InMemStorage) Records(_ context.Context) (finance.Records, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return finance.Records{
		Accounts: copyOf(s.accounts),
		Incomes:  copyOf(s.incomes),
		Payments: copyOf(s.payments),
		Expenses: copyOf(s.expenses),
	}, nil
}

func (s *InMemStorage) ListAccounts(_ context.Context) ([]finance.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyOf(s.accounts), nil
}

func (s *InMemStorage) SaveAccount(_ context.Context, rec finance.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = upsert(s.accounts, rec, func(a finance.Account) string { return a.ID })
	return nil
}

func (s *InMemStorage) DeleteAccount(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var err error
	s.accounts, err = remove(s.accounts, id, func(a finance.Account) string { return a.ID })
	return err
}

func (s *InMemStorage) ListIncomes(_ context.Context) ([]finance.IncomeSource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyOf(s.incomes), nil
}

func (s *InMemStorage) SaveIncome(_ context.Context, rec finance.IncomeSource) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.incomes = upsert(s.incomes, rec, func(i finance.IncomeSource) string { return i.ID })
	return nil
}

func (s *InMemStorage) DeleteIncome(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var err error
	s.incomes, err = remove(s.incomes, id, func(i finance.IncomeSource) string { return i.ID })
	return err
}

func (s *InMemStorage) ListPayments(_ context.Context) ([]finance.MonthlyPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyOf(s.payments), nil
}

func (s *InMemStorage) SavePayment(_ context.Context, rec finance.MonthlyPayment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments = upsert(s.payments, rec, func(p finance.MonthlyPayment) string { return p.ID })
	return nil
}

func (s *InMemStorage) DeletePayment(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var err error
	s.payments, err = remove(s.payments, id, func(p finance.MonthlyPayment) string { return p.ID })
	return err
}

func (s *InMemStorage) ListExpenses(_ context.Context) ([]finance.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyOf(s.expenses), nil
}

func (s *InMemStorage) SaveExpense(_ context.Context, rec finance.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = upsert(s.expenses, rec, func(e finance.Expense) string { return e.ID })
	return nil
}

func (s *InMemStorage) DeleteExpense(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var err error
	s.expenses, err = remove(s.expenses, id, func(e finance.Expense) string { return e.ID })
	return err
}

func (s *InMemStorage) GetDisplayCurrency(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.display, nil
}

func (s *InMemStorage) SaveDisplayCurrency(_ context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.display = code
	return nil
}

func copyOf[T any](items []T) []T {
	res := make([]T, len(items))
	copy(res, items)
	return res
}

func upsert[T any](items []T, item T, idOf func(T) string) []T {
	id := idOf(item)
	for i := range items {
		if idOf(items[i]) == id {
			items[i] = item
			return items
		}
	}
	return append(items, item)
}

func remove[T any](items []T, id string, idOf func(T) string) ([]T, error) {
	for i := range items {
		if idOf(items[i]) == id {
			return append(items[:i:i], items[i+1:]...), nil
		}
	}
	return items, finance.ErrRecordDoesNotExist
}
