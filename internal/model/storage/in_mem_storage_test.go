package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"max.ks1230/finance-tracker/internal/entity/finance"
)

func Test_InMemStorage_ShouldUpsertKeepingOrder(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorage()

	require.NoError(t, s.SaveAccount(ctx, finance.Account{ID: "1", Name: "Cash", Amount: 100, Currency: "RUB"}))
	require.NoError(t, s.SaveAccount(ctx, finance.Account{ID: "2", Name: "Bank", Amount: 200, Currency: "USD"}))
	require.NoError(t, s.SaveAccount(ctx, finance.Account{ID: "1", Name: "Wallet", Amount: 150, Currency: "RUB"}))

	accounts, err := s.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "Wallet", accounts[0].Name)
	assert.Equal(t, 150.0, accounts[0].Amount)
	assert.Equal(t, "Bank", accounts[1].Name)
}

func Test_InMemStorage_ReadsShouldReturnCopies(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorage()
	require.NoError(t, s.SaveExpense(ctx, finance.Expense{ID: "1", Name: "Bread", Amount: 50, Currency: "RUB"}))

	exps, err := s.ListExpenses(ctx)
	require.NoError(t, err)
	exps[0].Amount = 1000

	records, err := s.Records(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50.0, records.Expenses[0].Amount)
}

func Test_InMemStorage_Delete(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorage()
	require.NoError(t, s.SaveIncome(ctx, finance.IncomeSource{ID: "1", Name: "Salary", Amount: 1, Currency: "RUB"}))
	require.NoError(t, s.SaveIncome(ctx, finance.IncomeSource{ID: "2", Name: "Rent", Amount: 2, Currency: "RUB"}))
	require.NoError(t, s.SavePayment(ctx, finance.MonthlyPayment{ID: "3", Name: "Phone", Amount: 3, Currency: "RUB"}))

	require.NoError(t, s.DeleteIncome(ctx, "1"))
	assert.ErrorIs(t, s.DeleteIncome(ctx, "1"), finance.ErrRecordDoesNotExist)
	assert.ErrorIs(t, s.DeleteAccount(ctx, "1"), finance.ErrRecordDoesNotExist)
	require.NoError(t, s.DeletePayment(ctx, "3"))
	assert.ErrorIs(t, s.DeleteExpense(ctx, "3"), finance.ErrRecordDoesNotExist)

	incomes, err := s.ListIncomes(ctx)
	require.NoError(t, err)
	require.Len(t, incomes, 1)
	assert.Equal(t, "2", incomes[0].ID)

	payments, err := s.ListPayments(ctx)
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func Test_InMemStorage_DisplayCurrency(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorage()

	curr, err := s.GetDisplayCurrency(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", curr)

	require.NoError(t, s.SaveDisplayCurrency(ctx, "EUR"))
	curr, err = s.GetDisplayCurrency(ctx)
	require.NoError(t, err)
	assert.Equal(t, "EUR", curr)
}
