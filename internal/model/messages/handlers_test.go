package messages

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"max.ks1230/finance-tracker/internal/clients/cache"
	"max.ks1230/finance-tracker/internal/entity/currency"
	"max.ks1230/finance-tracker/internal/entity/event"
	"max.ks1230/finance-tracker/internal/entity/finance"
	"max.ks1230/finance-tracker/internal/model/rates"
	"max.ks1230/finance-tracker/internal/model/records"
	"max.ks1230/finance-tracker/internal/model/reports"
	"max.ks1230/finance-tracker/internal/model/settings"
	"max.ks1230/finance-tracker/internal/model/storage"
)

type silentPublisher struct{}

func (silentPublisher) Publish(context.Context, event.Event) error { return nil }

type settingsStub struct {
	view settings.View
}

func (s *settingsStub) SetDisplayCurrency(_ context.Context, code string) (string, error) {
	code = currency.Normalize(code)
	if !currency.Valid(code) {
		return "", errors.Wrap(settings.ErrInvalidCurrency, code)
	}
	s.view = settings.View{DisplayCurrency: code, State: rates.Loading}
	return code, nil
}

func (s *settingsStub) RefreshRates(context.Context) settings.View {
	s.view.State = rates.Loading
	return s.view
}

func (s *settingsStub) View() settings.View { return s.view }

type reportsMock struct {
	mock.Mock
}

func (m *reportsMock) Text(ctx context.Context, period string) (string, error) {
	args := m.Called(ctx, period)
	return args.String(0), args.Error(1)
}

func (m *reportsMock) CategoriesText(ctx context.Context, period string) (string, error) {
	args := m.Called(ctx, period)
	return args.String(0), args.Error(1)
}

var rubRates = currency.NewRates("RUB", map[string]float64{"USD": 0.011, "EUR": 0.01})

type fixture struct {
	handler  *HandlerService
	records  *records.Service
	settings *settingsStub
	reports  *reportsMock
}

func newFixture(view settings.View) *fixture {
	recs := records.New(storage.NewInMemStorage(), silentPublisher{}, cache.Noop{})
	set := &settingsStub{view: view}
	rep := &reportsMock{}
	h := NewHandler(recs, set, rep, time.UTC)
	h.now = func() time.Time { return time.Date(2024, 3, 13, 10, 0, 0, 0, time.UTC) }
	return &fixture{handler: h, records: recs, settings: set, reports: rep}
}

func (f *fixture) send(t *testing.T, text string) string {
	resp, err := f.handler.HandleMessage(context.Background(), text, 1)
	require.NoError(t, err)
	return resp
}

func Test_OnStartCommand_ShouldAnswerWithIntroMessage(t *testing.T) {
	f := newFixture(settings.View{DisplayCurrency: "RUB"})

	resp := f.send(t, "/start")

	assert.Contains(t, resp, helloMessage)
	assert.Contains(t, resp, "/summary")
}

func Test_OnUnknownCommand_ShouldAnswerWithDontUnderstand(t *testing.T) {
	f := newFixture(settings.View{DisplayCurrency: "RUB"})

	assert.Equal(t, dontUnderstandMessage, f.send(t, "/none"))
	assert.Equal(t, loveToTalkMessage, f.send(t, "hello there"))
}

func Test_OnListAccounts_ShouldShowConvertedValues(t *testing.T) {
	f := newFixture(settings.View{DisplayCurrency: "RUB", State: rates.Ready, Rates: rubRates})

	assert.Equal(t, okMessage, f.send(t, "/account Cash 500 RUB"))
	assert.Equal(t, okMessage, f.send(t, "/account Savings_box 20 usd"))

	resp := f.send(t, "/list accounts")

	assert.Contains(t, resp, "Cash: 500.00 RUB\n")
	assert.Contains(t, resp, "Savings box: 20.00 USD (1818.18 RUB)")
	assert.Contains(t, resp, "Total: 2318.18 RUB")
}

func Test_OnListAccounts_WithoutRates_ShouldLabelNotConverted(t *testing.T) {
	f := newFixture(settings.View{DisplayCurrency: "RUB", State: rates.Failed})

	f.send(t, "/account Cash 500 RUB")
	f.send(t, "/account Savings 20 USD")

	resp := f.send(t, "/list account")

	assert.Contains(t, resp, "Savings: 20.00 USD (not converted)")
	assert.Contains(t, resp, "Total: 500.00 RUB")
}

func Test_OnList_ShouldValidateKind(t *testing.T) {
	f := newFixture(settings.View{DisplayCurrency: "RUB"})

	assert.Equal(t, incorrectKindMessage, f.send(t, "/list goats"))
	assert.Equal(t, emptyListMessage, f.send(t, "/list payments"))
}

func Test_OnIncome_ShouldRejectNonPositiveAmount(t *testing.T) {
	f := newFixture(settings.View{DisplayCurrency: "RUB"})

	assert.Equal(t, incorrectAmountMessage, f.send(t, "/income Salary -5 RUB"))
	assert.Equal(t, incorrectAmountMessage, f.send(t, "/payment Rent abc RUB"))
	assert.Equal(t, incorrectCurrencyMessage, f.send(t, "/payment Rent 100 RUBLES"))
	assert.Equal(t, incorrectUsageMessage, f.send(t, "/income Salary 100"))
	assert.Equal(t, okMessage, f.send(t, "/account Loan -1000 RUB"))
}

func Test_OnExpense_ShouldParseDate(t *testing.T) {
	f := newFixture(settings.View{DisplayCurrency: "EUR", State: rates.Ready,
		Rates: currency.NewRates("EUR", map[string]float64{"RUB": 100})})

	assert.Equal(t, incorrectDateMessage, f.send(t, "/expense Food Milk 3 EUR 32.13.2024"))
	assert.Equal(t, okMessage, f.send(t, "/expense Food Milk 3 EUR 12.03.2024"))
	assert.Equal(t, okMessage, f.send(t, "/expense Home Lamp 1500 RUB"))

	resp := f.send(t, "/list expenses")

	assert.Contains(t, resp, "Milk, Food, 12.03.2024: 3.00 EUR\n")
	assert.Contains(t, resp, "Lamp, Home, 13.03.2024: 1500.00 RUB (15.00 EUR)")
	assert.Contains(t, resp, "Total: 18.00 EUR")
}

func Test_OnExpense_WithoutCategory_ShouldUseDefault(t *testing.T) {
	f := newFixture(settings.View{DisplayCurrency: "RUB"})

	assert.Equal(t, okMessage, f.send(t, "/expense Taxi 300 RUB"))
	assert.Equal(t, okMessage, f.send(t, "/expense Bus 50 RUB 11.03.2024"))
	assert.Equal(t, okMessage, f.send(t, "/expense Health Pills 120 RUB"))
	assert.Equal(t, incorrectUsageMessage, f.send(t, "/expense Taxi 300"))
	assert.Equal(t, incorrectDateMessage, f.send(t, "/expense Bus 50 RUB 99.99.2024"))

	recs, err := f.records.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, recs.Expenses, 3)
	byName := make(map[string]string)
	for _, e := range recs.Expenses {
		byName[e.Name] = e.Category
	}
	assert.Equal(t, finance.DefaultCategory, byName["Taxi"])
	assert.Equal(t, finance.DefaultCategory, byName["Bus"])
	assert.Equal(t, "Health", byName["Pills"])
}

func Test_OnHelp_ShouldListCategoriesAndCurrencies(t *testing.T) {
	f := newFixture(settings.View{DisplayCurrency: "RUB"})

	resp := f.send(t, "/help")

	for _, cat := range finance.Categories {
		assert.Contains(t, resp, cat)
	}
	for _, code := range currency.Currencies {
		assert.Contains(t, resp, code)
	}
}

func Test_OnEditAndDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(settings.View{DisplayCurrency: "RUB"})
	f.send(t, "/payment Rent 100 RUB")
	recs, err := f.records.Records(ctx)
	require.NoError(t, err)
	id := recs.Payments[0].ID

	assert.Equal(t, incorrectAmountMessage, f.send(t, "/edit payment "+id+" abc"))
	assert.Equal(t, incorrectAmountMessage, f.send(t, "/edit payment "+id+" 0"))
	assert.Equal(t, noSuchRecordMessage, f.send(t, "/edit payment missing 5"))
	assert.Equal(t, okMessage, f.send(t, "/edit payments "+id+" 250,5"))

	recs, err = f.records.Records(ctx)
	require.NoError(t, err)
	assert.Equal(t, 250.5, recs.Payments[0].Amount)

	assert.Equal(t, incorrectKindMessage, f.send(t, "/delete goat "+id))
	assert.Equal(t, noSuchRecordMessage, f.send(t, "/delete income "+id))
	assert.Equal(t, deletedMessage, f.send(t, "/delete payment "+id))

	recs, err = f.records.Records(ctx)
	require.NoError(t, err)
	assert.Empty(t, recs.Payments)
}

func Test_OnCurrency(t *testing.T) {
	f := newFixture(settings.View{DisplayCurrency: "RUB", State: rates.Ready})

	assert.Equal(t, "Display currency: RUB\nExchange rates: ready", f.send(t, "/currency"))
	assert.Equal(t, incorrectCurrencyMessage, f.send(t, "/currency dollars"))
	assert.Equal(t, "Display currency is USD now", f.send(t, "/currency usd"))
	assert.Equal(t, "USD", f.settings.View().DisplayCurrency)
	assert.Equal(t, "Exchange rates for USD: loading", f.send(t, "/rates"))
}

func Test_OnCurrency_WithTable_ShouldCountCurrencies(t *testing.T) {
	f := newFixture(settings.View{DisplayCurrency: "RUB", State: rates.Ready, Rates: rubRates})

	assert.Equal(t, "Display currency: RUB\nExchange rates: ready, 2 currencies", f.send(t, "/currency"))
}

func Test_OnSummary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(settings.View{DisplayCurrency: "RUB"})
	f.reports.On("Text", ctx, reports.PeriodMonth).Return("report", nil).Once()
	f.reports.On("Text", ctx, "decade").Return("", errors.Wrap(reports.ErrUnknownPeriod, "decade")).Once()
	f.reports.On("CategoriesText", ctx, reports.PeriodAll).Return("", errors.New("db is down")).Once()

	assert.Equal(t, "report", f.send(t, "/summary Month"))
	assert.Equal(t, incorrectPeriodMessage, f.send(t, "/summary decade"))

	resp, err := f.handler.HandleMessage(ctx, "/categories", 1)
	assert.Error(t, err)
	assert.NotEmpty(t, resp)
	f.reports.AssertExpectations(t)
}

func Test_parseCommand(t *testing.T) {
	cmd, arg := parseCommand("  /expense Food Milk 3 EUR ")
	assert.Equal(t, "/expense", cmd)
	assert.Equal(t, "Food Milk 3 EUR", arg)

	cmd, arg = parseCommand("/list")
	assert.Equal(t, "/list", cmd)
	assert.Empty(t, arg)

	cmd, arg = parseCommand("hi")
	assert.Empty(t, cmd)
	assert.Equal(t, "hi", arg)
}
