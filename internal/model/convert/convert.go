// Package convert turns amounts in mixed currencies into one display currency.
//
// A rate table is scoped to its base currency: rates.Lookup(X) is the amount of X
// per one unit of base. The tracker always fetches the table with the display
// currency as base, so converting X into the display currency is amount / rate(X).
// The product amount * rate(target) is never used for that direction.
//
// Missing data is never an error here. A single conversion without a usable rate
// returns the amount unchanged, and callers label it as not converted. Totals skip
// such entries instead, since adding raw foreign amounts would be misleading.
package convert

import (
	"math"

	"max.ks1230/finance-tracker/internal/entity/currency"
	"max.ks1230/finance-tracker/internal/entity/finance"
)

// Convert converts amount from one currency into another. It falls back to the
// unchanged amount when rates is nil or lacks a needed entry.
func Convert(amount float64, from, to string, rates *currency.Rates) float64 {
	res, _ := ConvertChecked(amount, from, to, rates)
	return res
}

// ConvertChecked is Convert that also reports whether a real conversion happened.
// Identity conversions report true.
func ConvertChecked(amount float64, from, to string, rates *currency.Rates) (float64, bool) {
	if from == to {
		return amount, true
	}
	if rates == nil {
		return amount, false
	}

	inBase := amount
	if from != rates.Base {
		rate, ok := rates.Lookup(from)
		if !ok {
			return amount, false
		}
		inBase = amount / rate
	}
	if to == rates.Base {
		return inBase, true
	}

	// cross rate through the base, only reached when the table was fetched for another currency
	rate, ok := rates.Lookup(to)
	if !ok {
		return amount, false
	}
	return inBase * rate, true
}

// TotalInCurrency sums records in target, folding left to right. Entries that
// cannot be converted, or would push the total out of float range, contribute zero.
func TotalInCurrency[T finance.Monetary](records []T, target string, rates *currency.Rates) float64 {
	total, _ := totalWithSkipped(records, target, rates)
	return total
}

func totalWithSkipped[T finance.Monetary](records []T, target string, rates *currency.Rates) (float64, []string) {
	total := 0.0
	var skipped []string
	for _, rec := range records {
		val, ok := ConvertChecked(rec.GetAmount(), rec.GetCurrency(), target, rates)
		if !ok || !finite(val) || !finite(total+val) {
			skipped = append(skipped, rec.GetCurrency())
			continue
		}
		total += val
	}
	return total, skipped
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
