package messages

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"max.ks1230/finance-tracker/internal/entity/currency"
	"max.ks1230/finance-tracker/internal/entity/finance"
	"max.ks1230/finance-tracker/internal/model/convert"
	"max.ks1230/finance-tracker/internal/model/records"
	"max.ks1230/finance-tracker/internal/model/reports"
	"max.ks1230/finance-tracker/internal/model/settings"
)

const (
	dontUnderstandMessage = "I don't understand you :("
	helloMessage          = "Hello! I am your finance tracker bot 🤖"
	loveToTalkMessage     = "I would love to talk about it more!"
	okMessage             = "Gotcha!"
	deletedMessage        = "Deleted"
	emptyListMessage      = "Nothing here yet"

	incorrectUsageMessage    = "That is an incorrect command usage"
	incorrectAmountMessage   = "The amount is incorrect"
	incorrectCurrencyMessage = "The currency should be a 3-letter code, e.g. USD"
	incorrectDateMessage     = "The date is incorrect. Should be dd.mm.yyyy"
	incorrectKindMessage     = "Kind should be one of: accounts, incomes, payments, expenses"
	incorrectPeriodMessage   = "Period should be one of: week, month, year"
	noSuchRecordMessage      = "There is no such record"
)

var helpMessage = fmt.Sprintf(`/currency [CODE] - show or change the display currency, e.g. %s
/rates - fetch exchange rates again
/account NAME AMOUNT CUR - add an account
/income NAME AMOUNT CUR - add a monthly income
/payment NAME AMOUNT CUR - add a monthly payment
/expense [CATEGORY] NAME AMOUNT CUR [dd.mm.yyyy] - add an expense, the category is %s if omitted
/list KIND - list accounts, incomes, payments or expenses
/edit KIND ID AMOUNT - change the amount of a record
/delete KIND ID - delete a record
/summary [week|month|year] - totals in the display currency
/categories [week|month|year] - expenses by category

Categories: %s`,
	strings.Join(currency.Currencies, ", "),
	finance.DefaultCategory,
	strings.Join(finance.Categories, ", "),
)

const (
	startCommand      = "/start"
	helpCommand       = "/help"
	currencyCommand   = "/currency"
	ratesCommand      = "/rates"
	accountCommand    = "/account"
	incomeCommand     = "/income"
	paymentCommand    = "/payment"
	expenseCommand    = "/expense"
	listCommand       = "/list"
	editCommand       = "/edit"
	deleteCommand     = "/delete"
	summaryCommand    = "/summary"
	categoriesCommand = "/categories"
)

type recordsService interface {
	Records(ctx context.Context) (finance.Records, error)
	SaveAccount(ctx context.Context, rec finance.Account) (finance.Account, error)
	SaveIncome(ctx context.Context, rec finance.IncomeSource) (finance.IncomeSource, error)
	SavePayment(ctx context.Context, rec finance.MonthlyPayment) (finance.MonthlyPayment, error)
	SaveExpense(ctx context.Context, rec finance.Expense) (finance.Expense, error)
	UpdateAmount(ctx context.Context, kind, id string, amount float64) error
	Delete(ctx context.Context, kind, id string) error
}

type settingsService interface {
	SetDisplayCurrency(ctx context.Context, code string) (string, error)
	RefreshRates(ctx context.Context) settings.View
	View() settings.View
}

type reportsService interface {
	Text(ctx context.Context, period string) (string, error)
	CategoriesText(ctx context.Context, period string) (string, error)
}

type handler func(ctx context.Context, arg string) (string, error)

type handlerMap map[string]handler

type HandlerService struct {
	handlersMap handlerMap
	records     recordsService
	settings    settingsService
	reports     reportsService
	loc         *time.Location
	now         func() time.Time
}

func NewHandler(records recordsService, settings settingsService, reports reportsService, loc *time.Location) *HandlerService {
	if loc == nil {
		loc = time.UTC
	}
	res := &HandlerService{
		records:  records,
		settings: settings,
		reports:  reports,
		loc:      loc,
		now:      time.Now,
	}
	res.handlersMap = newMap(res)
	return res
}

func (s *HandlerService) HandleMessage(ctx context.Context, text string, _ int64) (string, error) {
	cmd, arg := parseCommand(text)

	handler, ok := s.handlersMap[cmd]
	if ok {
		return handler(ctx, arg)
	}
	return dontUnderstandMessage, nil
}

func newMap(s *HandlerService) handlerMap {
	m := make(handlerMap)
	m[startCommand] = s.handleStart
	m[helpCommand] = s.handleHelp
	m[currencyCommand] = s.handleCurrency
	m[ratesCommand] = s.handleRates
	m[accountCommand] = s.handleAccount
	m[incomeCommand] = s.handleIncome
	m[paymentCommand] = s.handlePayment
	m[expenseCommand] = s.handleExpense
	m[listCommand] = s.handleList
	m[editCommand] = s.handleEdit
	m[deleteCommand] = s.handleDelete
	m[summaryCommand] = s.handleSummary
	m[categoriesCommand] = s.handleCategories

	m[""] = s.handleNoCommand

	return m
}

// userMessage explains input errors. Anything else is reported as a failure.
func userMessage(err error, fallback string) (string, error) {
	switch {
	case errors.Is(err, finance.ErrInvalidAmount), errors.Is(err, finance.ErrNonPositiveAmount):
		return incorrectAmountMessage, nil
	case errors.Is(err, finance.ErrInvalidCurrency), errors.Is(err, settings.ErrInvalidCurrency):
		return incorrectCurrencyMessage, nil
	case errors.Is(err, finance.ErrEmptyName):
		return incorrectUsageMessage, nil
	case errors.Is(err, finance.ErrRecordDoesNotExist):
		return noSuchRecordMessage, nil
	case errors.Is(err, finance.ErrUnknownRecordKind):
		return incorrectKindMessage, nil
	case errors.Is(err, reports.ErrUnknownPeriod):
		return incorrectPeriodMessage, nil
	}
	return fallback, err
}

func (s *HandlerService) handleStart(_ context.Context, _ string) (string, error) {
	return helloMessage + "\n\n" + helpMessage, nil
}

func (s *HandlerService) handleHelp(_ context.Context, _ string) (string, error) {
	return helpMessage, nil
}

func (s *HandlerService) handleNoCommand(_ context.Context, _ string) (string, error) {
	return loveToTalkMessage, nil
}

func (s *HandlerService) handleCurrency(ctx context.Context, arg string) (string, error) {
	if arg == "" {
		view := s.settings.View()
		return fmt.Sprintf("Display currency: %s\nExchange rates: %s", view.DisplayCurrency, ratesStatus(view)), nil
	}
	code, err := s.settings.SetDisplayCurrency(ctx, arg)
	if err != nil {
		return userMessage(err, "Can't change the display currency atm. Try later")
	}
	return fmt.Sprintf("Display currency is %s now", code), nil
}

func (s *HandlerService) handleRates(ctx context.Context, _ string) (string, error) {
	view := s.settings.RefreshRates(ctx)
	return fmt.Sprintf("Exchange rates for %s: %s", view.DisplayCurrency, ratesStatus(view)), nil
}

func ratesStatus(view settings.View) string {
	if view.Rates.Len() == 0 {
		return view.State.String()
	}
	return fmt.Sprintf("%s, %d currencies", view.State, view.Rates.Len())
}

// parseMoney reads the trailing "NAME AMOUNT CUR" arguments.
func parseMoney(args []string) (name string, amount float64, curr string, err error) {
	amount, err = finance.ParseAmount(args[1])
	if err != nil {
		return "", 0, "", err
	}
	return displayName(args[0]), amount, currency.Normalize(args[2]), nil
}

func (s *HandlerService) handleAccount(ctx context.Context, arg string) (string, error) {
	args := strings.Fields(arg)
	if len(args) != 3 {
		return incorrectUsageMessage, nil
	}
	name, amount, curr, err := parseMoney(args)
	if err != nil {
		return userMessage(err, "")
	}
	_, err = s.records.SaveAccount(ctx, finance.Account{Name: name, Amount: amount, Currency: curr})
	if err != nil {
		return userMessage(err, "Can't save your account atm. Try later")
	}
	return okMessage, nil
}

func (s *HandlerService) handleIncome(ctx context.Context, arg string) (string, error) {
	args := strings.Fields(arg)
	if len(args) != 3 {
		return incorrectUsageMessage, nil
	}
	name, amount, curr, err := parseMoney(args)
	if err != nil {
		return userMessage(err, "")
	}
	_, err = s.records.SaveIncome(ctx, finance.IncomeSource{Name: name, Amount: amount, Currency: curr})
	if err != nil {
		return userMessage(err, "Can't save your income atm. Try later")
	}
	return okMessage, nil
}

func (s *HandlerService) handlePayment(ctx context.Context, arg string) (string, error) {
	args := strings.Fields(arg)
	if len(args) != 3 {
		return incorrectUsageMessage, nil
	}
	name, amount, curr, err := parseMoney(args)
	if err != nil {
		return userMessage(err, "")
	}
	_, err = s.records.SavePayment(ctx, finance.MonthlyPayment{Name: name, Amount: amount, Currency: curr})
	if err != nil {
		return userMessage(err, "Can't save your payment atm. Try later")
	}
	return okMessage, nil
}

// handleExpense accepts "[CATEGORY] NAME AMOUNT CUR [date]". Four arguments are
// read as NAME AMOUNT CUR date when the last one is a date.
func (s *HandlerService) handleExpense(ctx context.Context, arg string) (string, error) {
	args := strings.Fields(arg)
	if len(args) < 3 || len(args) > 5 {
		return incorrectUsageMessage, nil
	}

	category := finance.DefaultCategory
	switch {
	case len(args) == 3:
	case len(args) == 4 && looksLikeDate(args[3]):
	default:
		category = displayName(args[0])
		args = args[1:]
	}

	name, amount, curr, err := parseMoney(args[:3])
	if err != nil {
		return userMessage(err, "")
	}
	date := s.now().In(s.loc)
	if len(args) == 4 {
		date, err = time.ParseInLocation(dateLayout, args[3], s.loc)
		if err != nil {
			return incorrectDateMessage, nil
		}
	}

	_, err = s.records.SaveExpense(ctx, finance.Expense{
		Name:     name,
		Amount:   amount,
		Currency: curr,
		Category: category,
		Created:  date,
	})
	if err != nil {
		return userMessage(err, "Can't save your expense atm. Try later")
	}
	return okMessage, nil
}

// looksLikeDate tells a dd.mm.yyyy token from a currency code.
func looksLikeDate(s string) bool {
	return len(s) == len(dateLayout) && strings.Count(s, ".") == 2
}

func (s *HandlerService) handleList(ctx context.Context, arg string) (string, error) {
	kind, ok := parseKind(arg)
	if !ok {
		return incorrectKindMessage, nil
	}
	recs, err := s.records.Records(ctx)
	if err != nil {
		return "Can't get your records atm. Try later", errors.Wrap(err, "handle list")
	}

	view := s.settings.View()
	var lines []string
	var total float64
	switch kind {
	case records.KindAccount:
		lines = listItems(recs.Accounts, view, func(a finance.Account) (string, string) { return a.ID, a.Name })
		total = convert.TotalInCurrency(recs.Accounts, view.DisplayCurrency, view.Rates)
	case records.KindIncome:
		lines = listItems(recs.Incomes, view, func(i finance.IncomeSource) (string, string) { return i.ID, i.Name })
		total = convert.TotalInCurrency(recs.Incomes, view.DisplayCurrency, view.Rates)
	case records.KindPayment:
		lines = listItems(recs.Payments, view, func(p finance.MonthlyPayment) (string, string) { return p.ID, p.Name })
		total = convert.TotalInCurrency(recs.Payments, view.DisplayCurrency, view.Rates)
	case records.KindExpense:
		lines = listItems(recs.Expenses, view, func(e finance.Expense) (string, string) {
			return e.ID, fmt.Sprintf("%s, %s, %s", e.Name, e.Category, e.Created.In(s.loc).Format(dateLayout))
		})
		total = convert.TotalInCurrency(recs.Expenses, view.DisplayCurrency, view.Rates)
	}

	if len(lines) == 0 {
		return emptyListMessage, nil
	}
	lines = append(lines, "", "Total: "+formatMoney(total, view.DisplayCurrency))
	return strings.Join(lines, "\n"), nil
}

func listItems[T finance.Monetary](items []T, view settings.View, describe func(T) (id, title string)) []string {
	res := make([]string, 0, len(items))
	for _, item := range items {
		id, title := describe(item)
		res = append(res, fmt.Sprintf("%s: %s\nid: %s", title,
			formatConverted(item.GetAmount(), item.GetCurrency(), view.DisplayCurrency, view.Rates), id))
	}
	return res
}

func (s *HandlerService) handleEdit(ctx context.Context, arg string) (string, error) {
	args := strings.Fields(arg)
	if len(args) != 3 {
		return incorrectUsageMessage, nil
	}
	kind, ok := parseKind(args[0])
	if !ok {
		return incorrectKindMessage, nil
	}
	amount, err := finance.ParseAmount(args[2])
	if err != nil {
		return incorrectAmountMessage, nil
	}
	if err = s.records.UpdateAmount(ctx, kind, args[1], amount); err != nil {
		return userMessage(err, "Can't update the record atm. Try later")
	}
	return okMessage, nil
}

func (s *HandlerService) handleDelete(ctx context.Context, arg string) (string, error) {
	args := strings.Fields(arg)
	if len(args) != 2 {
		return incorrectUsageMessage, nil
	}
	kind, ok := parseKind(args[0])
	if !ok {
		return incorrectKindMessage, nil
	}
	if err := s.records.Delete(ctx, kind, args[1]); err != nil {
		return userMessage(err, "Can't delete the record atm. Try later")
	}
	return deletedMessage, nil
}

func (s *HandlerService) handleSummary(ctx context.Context, arg string) (string, error) {
	text, err := s.reports.Text(ctx, strings.ToLower(arg))
	if err != nil {
		return userMessage(err, "Can't build the summary atm. Try later")
	}
	return text, nil
}

func (s *HandlerService) handleCategories(ctx context.Context, arg string) (string, error) {
	text, err := s.reports.CategoriesText(ctx, strings.ToLower(arg))
	if err != nil {
		return userMessage(err, "Can't build the report atm. Try later")
	}
	return text, nil
}
