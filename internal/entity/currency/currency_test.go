package currency

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Normalize_ShouldTrimAndUpperCase(t *testing.T) {
	assert.Equal(t, "USD", Normalize("  usd "))
	assert.Equal(t, "", Normalize("   "))
}

func Test_Valid(t *testing.T) {
	assert.True(t, Valid("RUB"))
	assert.True(t, Valid("CHF"))
	assert.False(t, Valid("rub"))
	assert.False(t, Valid("RU"))
	assert.False(t, Valid("RUBL"))
	assert.False(t, Valid("R1B"))
}

func Test_Lookup_ShouldTreatBadEntriesAsUnknown(t *testing.T) {
	rates := NewRates("rub", map[string]float64{
		"usd": 0.011,
		"EUR": 0,
		"GBP": -1,
		"CNY": math.NaN(),
		"JPY": math.Inf(1),
	})

	assert.Equal(t, "RUB", rates.Base)

	val, ok := rates.Lookup("USD")
	require.True(t, ok)
	assert.Equal(t, 0.011, val)

	for _, code := range []string{"EUR", "GBP", "CNY", "JPY", "CHF"} {
		_, ok = rates.Lookup(code)
		assert.False(t, ok, code)
	}
}

func Test_NewRates_ShouldCopyInput(t *testing.T) {
	src := map[string]float64{"USD": 2}
	rates := NewRates("RUB", src)
	src["USD"] = 4

	val, ok := rates.Lookup("USD")
	require.True(t, ok)
	assert.Equal(t, 2.0, val)
	assert.Equal(t, 1, rates.Len())
}

func Test_Lookup_OnNilRates(t *testing.T) {
	var rates *Rates
	_, ok := rates.Lookup("USD")
	assert.False(t, ok)
	assert.Zero(t, rates.Len())
	assert.Nil(t, rates.Codes())
}

func Test_RateFetchError_ShouldUnwrap(t *testing.T) {
	var err error = &RateFetchError{Base: "RUB", Err: io.ErrUnexpectedEOF}

	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	assert.Contains(t, err.Error(), "RUB")

	var fetchErr *RateFetchError
	assert.True(t, errors.As(err, &fetchErr))
}

func Test_Fingerprint_ShouldFollowTableContents(t *testing.T) {
	first := NewRates("RUB", map[string]float64{"USD": 0.01, "EUR": 0.009})
	same := NewRates("rub", map[string]float64{"eur": 0.009, "usd": 0.01})
	changed := NewRates("RUB", map[string]float64{"USD": 0.02, "EUR": 0.009})
	otherBase := NewRates("USD", map[string]float64{"USD": 0.01, "EUR": 0.009})

	assert.Equal(t, first.Fingerprint(), same.Fingerprint())
	assert.NotEqual(t, first.Fingerprint(), changed.Fingerprint())
	assert.NotEqual(t, first.Fingerprint(), otherBase.Fingerprint())

	var none *Rates
	assert.Equal(t, "none", none.Fingerprint())
}
