package convert

import (
	"sort"
	"strings"

	"max.ks1230/finance-tracker/internal/entity/currency"
	"max.ks1230/finance-tracker/internal/entity/finance"
)

type CategoryAmount struct {
	Category string
	Amount   float64
}

type Summary struct {
	Currency string

	Accounts float64
	Incomes  float64
	Payments float64
	Expenses float64
	// Remainder is monthly income left after payments and expenses.
	Remainder float64

	ByCategory []CategoryAmount

	// Unconverted lists currencies left out of the totals, sorted.
	Unconverted []string
}

// GroupByCategory keeps input order inside every group.
func GroupByCategory(expenses []finance.Expense) map[string][]finance.Expense {
	res := make(map[string][]finance.Expense)
	for _, exp := range expenses {
		cat := categoryOf(exp)
		res[cat] = append(res[cat], exp)
	}
	return res
}

func categoryOf(exp finance.Expense) string {
	cat := strings.TrimSpace(exp.Category)
	if cat == "" {
		return finance.UncategorizedCategory
	}
	return cat
}

// CategoryTotals returns expense totals per category, largest first.
func CategoryTotals(expenses []finance.Expense, target string, rates *currency.Rates) []CategoryAmount {
	totals, _ := categoryTotals(expenses, target, rates)
	return totals
}

func categoryTotals(expenses []finance.Expense, target string, rates *currency.Rates) ([]CategoryAmount, []string) {
	var skipped []string
	records := make([]CategoryAmount, 0)
	for cat, exps := range GroupByCategory(expenses) {
		total, sk := totalWithSkipped(exps, target, rates)
		skipped = append(skipped, sk...)
		records = append(records, CategoryAmount{Category: cat, Amount: total})
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Amount != records[j].Amount {
			return records[i].Amount > records[j].Amount
		}
		return records[i].Category < records[j].Category
	})
	return records, skipped
}

// Summarize computes every total the tracker shows in one pass.
func Summarize(records finance.Records, target string, rates *currency.Rates) Summary {
	s := Summary{Currency: target}
	unconverted := make(map[string]struct{})
	collect := func(codes []string) {
		for _, code := range codes {
			unconverted[code] = struct{}{}
		}
	}

	var skipped []string
	s.Accounts, skipped = totalWithSkipped(records.Accounts, target, rates)
	collect(skipped)
	s.Incomes, skipped = totalWithSkipped(records.Incomes, target, rates)
	collect(skipped)
	s.Payments, skipped = totalWithSkipped(records.Payments, target, rates)
	collect(skipped)
	s.Expenses, skipped = totalWithSkipped(records.Expenses, target, rates)
	collect(skipped)
	s.ByCategory = CategoryTotals(records.Expenses, target, rates)
	s.Remainder = s.Incomes - s.Payments - s.Expenses

	if len(unconverted) > 0 {
		s.Unconverted = make([]string, 0, len(unconverted))
		for code := range unconverted {
			s.Unconverted = append(s.Unconverted, code)
		}
		sort.Strings(s.Unconverted)
	}
	return s
}
