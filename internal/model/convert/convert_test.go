package convert

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"max.ks1230/finance-tracker/internal/entity/currency"
	"max.ks1230/finance-tracker/internal/entity/finance"
)

func rubRates() *currency.Rates {
	return currency.NewRates(currency.RUB, map[string]float64{
		currency.RUB: 1,
		currency.USD: 0.011,
		currency.EUR: 0.01,
	})
}

func Test_Convert_SameCurrencyIsIdentity(t *testing.T) {
	for _, rates := range []*currency.Rates{nil, rubRates(), currency.NewRates("USD", nil)} {
		assert.Equal(t, 123.456, Convert(123.456, "USD", "USD", rates))
		assert.Equal(t, -7.0, Convert(-7, "RUB", "RUB", rates))
	}
}

func Test_Convert_WithoutTable_ShouldReturnAmount(t *testing.T) {
	val, ok := ConvertChecked(10, "USD", "RUB", nil)
	assert.Equal(t, 10.0, val)
	assert.False(t, ok)
}

func Test_Convert_ShouldDivideByRateOfSourceCurrency(t *testing.T) {
	rates := currency.NewRates("B", map[string]float64{"A": 2.0})
	assert.Equal(t, 5.0, Convert(10, "A", "B", rates))
}

func Test_Convert_MissingRate_ShouldReturnAmount(t *testing.T) {
	val, ok := ConvertChecked(42, "GBP", "RUB", rubRates())
	assert.Equal(t, 42.0, val)
	assert.False(t, ok)
}

func Test_Convert_ZeroRate_ShouldNotProduceInf(t *testing.T) {
	rates := currency.NewRates("RUB", map[string]float64{"USD": 0})
	val := Convert(20, "USD", "RUB", rates)
	assert.Equal(t, 20.0, val)
	assert.False(t, math.IsInf(val, 0))
}

func Test_Convert_UsdToRub(t *testing.T) {
	val, ok := ConvertChecked(20, "USD", "RUB", rubRates())
	assert.True(t, ok)
	assert.InDelta(t, 1818.18, val, 0.01)
}

func Test_Convert_FromBaseToOther_ShouldGoThroughBase(t *testing.T) {
	val, ok := ConvertChecked(1000, "RUB", "USD", rubRates())
	assert.True(t, ok)
	assert.InDelta(t, 11.0, val, 1e-9)
}

func Test_Convert_CrossRate_ShouldNormalizeToBase(t *testing.T) {
	// 1 RUB = 0.011 USD = 0.01 EUR, so 11 USD = 1000 RUB = 10 EUR
	val, ok := ConvertChecked(11, "USD", "EUR", rubRates())
	assert.True(t, ok)
	assert.InDelta(t, 10.0, val, 1e-9)
}

func Test_TotalInCurrency_Empty(t *testing.T) {
	assert.Equal(t, 0.0, TotalInCurrency([]finance.Account{}, "RUB", nil))
	assert.Equal(t, 0.0, TotalInCurrency([]finance.Account(nil), "RUB", rubRates()))
}

func Test_TotalInCurrency_WithoutTable_ShouldSkipForeignEntries(t *testing.T) {
	accounts := []finance.Account{
		{Amount: 500, Currency: "RUB"},
		{Amount: 20, Currency: "USD"},
		{Amount: -100, Currency: "RUB"},
	}
	assert.Equal(t, 400.0, TotalInCurrency(accounts, "RUB", nil))
}

func Test_TotalInCurrency_MissingRate_ShouldSkipEntry(t *testing.T) {
	accounts := []finance.Account{
		{Amount: 500, Currency: "RUB"},
		{Amount: 20, Currency: "GBP"},
	}
	assert.Equal(t, 500.0, TotalInCurrency(accounts, "RUB", rubRates()))
}

func Test_TotalInCurrency_AccountsInRub(t *testing.T) {
	accounts := []finance.Account{
		{Amount: 500, Currency: "RUB"},
		{Amount: 20, Currency: "USD"},
	}
	assert.InDelta(t, 2318.18, TotalInCurrency(accounts, "RUB", rubRates()), 0.01)
}

func Test_TotalInCurrency_ShouldNeverBeNaN(t *testing.T) {
	rates := currency.NewRates("RUB", map[string]float64{"USD": math.NaN(), "EUR": math.Inf(1)})
	expenses := []finance.Expense{
		{Amount: 1, Currency: "USD"},
		{Amount: 1, Currency: "EUR"},
		{Amount: 1, Currency: "RUB"},
	}
	total := TotalInCurrency(expenses, "RUB", rates)
	assert.False(t, math.IsNaN(total))
	assert.Equal(t, 1.0, total)
}

func Test_TotalInCurrency_OverflowingEntries_ShouldBeSkipped(t *testing.T) {
	rates := currency.NewRates("RUB", map[string]float64{"USD": 1e-300})
	accounts := []finance.Account{
		{Amount: math.MaxFloat64, Currency: "USD"},
		{Amount: -math.MaxFloat64, Currency: "USD"},
		{Amount: 250, Currency: "RUB"},
	}

	total, skipped := totalWithSkipped(accounts, "RUB", rates)

	assert.False(t, math.IsNaN(total))
	assert.Equal(t, 250.0, total)
	assert.Equal(t, []string{"USD", "USD"}, skipped)
}

func Test_TotalInCurrency_OverflowingSum_ShouldStayFinite(t *testing.T) {
	accounts := []finance.Account{
		{Amount: math.MaxFloat64, Currency: "RUB"},
		{Amount: math.MaxFloat64, Currency: "RUB"},
		{Amount: -math.MaxFloat64, Currency: "RUB"},
	}

	total, skipped := totalWithSkipped(accounts, "RUB", nil)

	assert.False(t, math.IsNaN(total))
	assert.Equal(t, 0.0, total)
	assert.Equal(t, []string{"RUB"}, skipped)
}
