package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"max.ks1230/finance-tracker/internal/entity/finance"
)

func Test_GroupByCategory_ShouldKeepOrderAndRouteEmptyCategory(t *testing.T) {
	expenses := []finance.Expense{
		{ID: "1", Category: "Food"},
		{ID: "2", Category: ""},
		{ID: "3", Category: "Transport"},
		{ID: "4", Category: "Food"},
		{ID: "5", Category: "  "},
		{ID: "6", Category: "Food"},
	}

	groups := GroupByCategory(expenses)

	require.Len(t, groups, 3)
	assert.Equal(t, []string{"1", "4", "6"}, ids(groups["Food"]))
	assert.Equal(t, []string{"3"}, ids(groups["Transport"]))
	assert.Equal(t, []string{"2", "5"}, ids(groups[finance.UncategorizedCategory]))
}

func Test_GroupByCategory_Empty(t *testing.T) {
	assert.Empty(t, GroupByCategory(nil))
}

func Test_CategoryTotals_ShouldSortByAmount(t *testing.T) {
	expenses := []finance.Expense{
		{Amount: 1000, Currency: "RUB", Category: "Internet"},
		{Amount: 1500, Currency: "RUB", Category: "Shopping"},
		{Amount: 100, Currency: "RUB", Category: "Shopping"},
		{Amount: 5.5, Currency: "USD", Category: "Travel"},
	}

	totals := CategoryTotals(expenses, "RUB", rubRates())

	require.Len(t, totals, 3)
	assert.Equal(t, "Shopping", totals[0].Category)
	assert.Equal(t, 1600.0, totals[0].Amount)
	assert.Equal(t, "Internet", totals[1].Category)
	assert.Equal(t, "Travel", totals[2].Category)
	assert.InDelta(t, 500.0, totals[2].Amount, 1e-9)
}

func Test_Summarize_ShouldReportUnconvertedCurrencies(t *testing.T) {
	records := finance.Records{
		Accounts: []finance.Account{{Amount: 500, Currency: "RUB"}, {Amount: 20, Currency: "USD"}},
		Incomes:  []finance.IncomeSource{{Amount: 100000, Currency: "RUB"}, {Amount: 10, Currency: "GBP"}},
		Payments: []finance.MonthlyPayment{{Amount: 30000, Currency: "RUB"}},
		Expenses: []finance.Expense{
			{Amount: 5000, Currency: "RUB", Category: "Food"},
			{Amount: 3, Currency: "CNY", Category: "Food"},
		},
	}

	s := Summarize(records, "RUB", rubRates())

	assert.Equal(t, "RUB", s.Currency)
	assert.InDelta(t, 2318.18, s.Accounts, 0.01)
	assert.Equal(t, 100000.0, s.Incomes)
	assert.Equal(t, 30000.0, s.Payments)
	assert.Equal(t, 5000.0, s.Expenses)
	assert.Equal(t, 65000.0, s.Remainder)
	assert.Equal(t, []CategoryAmount{{Category: "Food", Amount: 5000}}, s.ByCategory)
	assert.Equal(t, []string{"CNY", "GBP"}, s.Unconverted)
}

func Test_Summarize_WithoutRates(t *testing.T) {
	records := finance.Records{
		Accounts: []finance.Account{{Amount: 500, Currency: "RUB"}, {Amount: 20, Currency: "USD"}},
	}

	s := Summarize(records, "RUB", nil)

	assert.Equal(t, 500.0, s.Accounts)
	assert.Equal(t, []string{"USD"}, s.Unconverted)
	assert.Empty(t, s.ByCategory)
}

func ids(exps []finance.Expense) []string {
	res := make([]string, 0, len(exps))
	for _, e := range exps {
		res = append(res, e.ID)
	}
	return res
}
