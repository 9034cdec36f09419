package reports

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jinzhu/now"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/finance-tracker/internal/entity/finance"
	"max.ks1230/finance-tracker/internal/logger"
	"max.ks1230/finance-tracker/internal/model/convert"
	"max.ks1230/finance-tracker/internal/model/rates"
	"max.ks1230/finance-tracker/internal/model/settings"
)

const (
	PeriodAll   = ""
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

var ErrUnknownPeriod = errors.New("report period is not supported")

var periodStarts = map[string]func(n *now.Now) time.Time{
	PeriodAll:   func(*now.Now) time.Time { return time.Time{} },
	PeriodWeek:  (*now.Now).BeginningOfWeek,
	PeriodMonth: (*now.Now).BeginningOfMonth,
	PeriodYear:  (*now.Now).BeginningOfYear,
}

type recordsSource interface {
	Records(ctx context.Context) (finance.Records, error)
}

type settingsView interface {
	View() settings.View
}

type reportCache interface {
	GetReport(key string) (string, bool, error)
	CacheReport(key, report string) error
	Invalidate() error
}

type Report struct {
	Period  string
	View    settings.View
	Summary convert.Summary
}

type Generator struct {
	records  recordsSource
	settings settingsView
	cache    reportCache
	calendar *now.Config
	now      func() time.Time
}

func NewGenerator(records recordsSource, settings settingsView, cache reportCache, loc *time.Location) *Generator {
	if loc == nil {
		loc = time.UTC
	}
	return &Generator{
		records:  records,
		settings: settings,
		cache:    cache,
		calendar: &now.Config{WeekStartDay: time.Monday, TimeLocation: loc},
		now:      time.Now,
	}
}

// Periods lists supported report periods, PeriodAll first.
func Periods() []string {
	res := make([]string, 0, len(periodStarts))
	for k := range periodStarts {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}

// Generate computes the summary for the current display currency. Expenses are
// limited to the period, incomes and payments are monthly amounts.
func (g *Generator) Generate(ctx context.Context, period string) (Report, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "generateReport")
	defer span.Finish()
	span.SetTag("period", period)

	from, err := g.periodStart(period)
	if err != nil {
		return Report{}, err
	}
	return g.generate(ctx, period, from, g.settings.View())
}

func (g *Generator) generate(ctx context.Context, period string, from time.Time, view settings.View) (Report, error) {
	recs, err := g.records.Records(ctx)
	if err != nil {
		return Report{}, errors.Wrap(err, "generate report")
	}
	recs.Expenses = filterExpensesFrom(recs.Expenses, from)

	return Report{
		Period:  period,
		View:    view,
		Summary: convert.Summarize(recs, view.DisplayCurrency, view.Rates),
	}, nil
}

func (g *Generator) periodStart(period string) (time.Time, error) {
	start, ok := periodStarts[period]
	if !ok {
		return time.Time{}, errors.Wrap(ErrUnknownPeriod, period)
	}
	return start(g.calendar.With(g.now().In(g.calendar.TimeLocation))), nil
}

// cacheKey changes with the period start and with the rate table, so a report
// is never served for another week or after the rates were refetched.
func cacheKey(view settings.View, period string, from time.Time) string {
	scope := "all"
	if period != PeriodAll {
		scope = period + ":" + from.Format("20060102")
	}
	return view.DisplayCurrency + ":" + scope + ":" + view.Rates.Fingerprint()
}

// Text renders the summary. Reports built from a ready rate table are cached.
func (g *Generator) Text(ctx context.Context, period string) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "reportText")
	defer span.Finish()

	from, err := g.periodStart(period)
	if err != nil {
		return "", err
	}
	view := g.settings.View()
	cached := view.State == rates.Ready
	key := cacheKey(view, period, from)

	if cached {
		text, ok, err := g.cache.GetReport(key)
		if err != nil {
			logger.Error("failed to read report cache", zap.Error(err))
		} else if ok {
			span.SetTag("cache", "hit")
			return text, nil
		}
	}

	report, err := g.generate(ctx, period, from, view)
	if err != nil {
		return "", err
	}
	text := FormatSummary(report)

	if cached {
		if err = g.cache.CacheReport(key, text); err != nil {
			logger.Error("failed to cache report", zap.Error(err))
		}
	}
	return text, nil
}

// Warm drops cached reports and renders every period again.
func (g *Generator) Warm(ctx context.Context) error {
	if err := g.cache.Invalidate(); err != nil {
		return errors.Wrap(err, "warm reports")
	}
	if g.settings.View().State != rates.Ready {
		return nil
	}
	for _, period := range Periods() {
		if _, err := g.Text(ctx, period); err != nil {
			return errors.Wrap(err, "warm reports")
		}
	}
	logger.Info("reports cache warmed", zap.String("currency", g.settings.View().DisplayCurrency))
	return nil
}

func filterExpensesFrom(exps []finance.Expense, from time.Time) []finance.Expense {
	res := make([]finance.Expense, 0, len(exps))
	for _, exp := range exps {
		if !exp.Created.Before(from) {
			res = append(res, exp)
		}
	}
	return res
}

func periodTitle(period string) string {
	if period == PeriodAll {
		return "all time"
	}
	return "this " + period
}

// StatusNote explains why foreign amounts are missing from totals, empty when rates are ready.
func StatusNote(view settings.View) string {
	switch view.State {
	case rates.Ready:
		return ""
	case rates.Failed:
		return fmt.Sprintf("Exchange rates are unavailable, only %s amounts are counted", view.DisplayCurrency)
	default:
		return fmt.Sprintf("Exchange rates are loading, only %s amounts are counted", view.DisplayCurrency)
	}
}

func FormatSummary(r Report) string {
	s := r.Summary
	res := []string{
		fmt.Sprintf("Summary in %s (%s)", s.Currency, periodTitle(r.Period)),
		fmt.Sprintf("Accounts: %.2f", s.Accounts),
		fmt.Sprintf("Monthly income: %.2f", s.Incomes),
		fmt.Sprintf("Monthly payments: %.2f", s.Payments),
		fmt.Sprintf("Expenses: %.2f", s.Expenses),
		fmt.Sprintf("Remainder: %.2f", s.Remainder),
	}
	if len(s.ByCategory) > 0 {
		res = append(res, "", FormatCategories(s.ByCategory))
	}
	return withFootnotes(res, r)
}

func FormatCategories(cats []convert.CategoryAmount) string {
	res := make([]string, 0, len(cats))
	for _, rec := range cats {
		res = append(res, fmt.Sprintf("%s: %.2f", rec.Category, rec.Amount))
	}
	return strings.Join(res, "\n")
}

// CategoriesText renders only the expense breakdown for the period.
func (g *Generator) CategoriesText(ctx context.Context, period string) (string, error) {
	report, err := g.Generate(ctx, period)
	if err != nil {
		return "", err
	}
	s := report.Summary
	if len(s.ByCategory) == 0 {
		return "No expenses for " + periodTitle(period), nil
	}
	res := []string{
		fmt.Sprintf("Expenses in %s (%s)", s.Currency, periodTitle(period)),
		FormatCategories(s.ByCategory),
		"",
		fmt.Sprintf("Total: %.2f", s.Expenses),
	}
	return withFootnotes(res, report), nil
}

func withFootnotes(lines []string, r Report) string {
	var notes []string
	if len(r.Summary.Unconverted) > 0 {
		notes = append(notes, "Not converted: "+strings.Join(r.Summary.Unconverted, ", "))
	}
	if note := StatusNote(r.View); note != "" && len(r.Summary.Unconverted) > 0 {
		notes = append(notes, note)
	}
	if len(notes) > 0 {
		lines = append(lines, "")
		lines = append(lines, notes...)
	}
	return strings.Join(lines, "\n")
}
