package currency

import (
	"hash/fnv"
	"math"
	"sort"
	"strconv"
	"strings"
)

const (
	RUB = "RUB"
	USD = "USD"
	EUR = "EUR"
	GBP = "GBP"
	CNY = "CNY"
)

// Currencies are the codes offered to the user. Other ISO-like codes are still accepted.
var Currencies = []string{RUB, USD, EUR, GBP, CNY}

const codeLen = 3

// Normalize trims the code and upper-cases it.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Valid reports whether code is a three-letter uppercase code.
func Valid(code string) bool {
	if len(code) != codeLen {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// Rates is an exchange rate table scoped to one base currency:
// Lookup(X) is the amount of X per one unit of Base.
// A Rates value is never mutated after NewRates returns.
type Rates struct {
	Base        string
	values      map[string]float64
	fingerprint string
}

func NewRates(base string, values map[string]float64) *Rates {
	copied := make(map[string]float64, len(values))
	for code, val := range values {
		copied[Normalize(code)] = val
	}
	r := &Rates{
		Base:   Normalize(base),
		values: copied,
	}
	r.fingerprint = r.hash()
	return r
}

// Fingerprint identifies the table contents. Equal tables share a fingerprint.
func (r *Rates) Fingerprint() string {
	if r == nil {
		return "none"
	}
	return r.fingerprint
}

func (r *Rates) hash() string {
	codes := r.Codes()
	sort.Strings(codes)

	h := fnv.New64a()
	h.Write([]byte(r.Base))
	for _, code := range codes {
		h.Write([]byte(code))
		h.Write([]byte(strconv.FormatFloat(r.values[code], 'g', -1, 64)))
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

// Lookup returns the rate for code. Entries that are absent, non-positive
// or not finite are reported as unknown.
func (r *Rates) Lookup(code string) (float64, bool) {
	if r == nil {
		return 0, false
	}
	val, ok := r.values[code]
	if !ok || val <= 0 || math.IsNaN(val) || math.IsInf(val, 0) {
		return 0, false
	}
	return val, true
}

func (r *Rates) Len() int {
	if r == nil {
		return 0
	}
	return len(r.values)
}

// Codes returns the currencies present in the table, in no particular order.
func (r *Rates) Codes() []string {
	if r == nil {
		return nil
	}
	res := make([]string, 0, len(r.values))
	for code := range r.values {
		res = append(res, code)
	}
	return res
}
