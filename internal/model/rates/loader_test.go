package rates

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"max.ks1230/finance-tracker/internal/entity/currency"
)

const (
	waitFor = time.Second
	tick    = 5 * time.Millisecond
)

type response struct {
	rates *currency.Rates
	err   error
}

// fakeProvider answers a request only when the test releases its currency.
// It ignores cancellation to mimic a response that arrives late.
type fakeProvider struct {
	mu      sync.Mutex
	calls   []string
	pending map[string]chan response
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{pending: make(map[string]chan response)}
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) chanFor(base string) chan response {
	p.mu.Lock()
	defer p.mu.Unlock()
	ch, ok := p.pending[base]
	if !ok {
		ch = make(chan response, 1)
		p.pending[base] = ch
	}
	return ch
}

func (p *fakeProvider) GetRates(_ context.Context, base string) (*currency.Rates, error) {
	p.mu.Lock()
	p.calls = append(p.calls, base)
	p.mu.Unlock()

	res := <-p.chanFor(base)
	return res.rates, res.err
}

func (p *fakeProvider) release(base string, rates *currency.Rates, err error) {
	p.chanFor(base) <- response{rates, err}
}

func (p *fakeProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

func waitState(t *testing.T, l *Loader, state State, curr string) {
	t.Helper()
	require.Eventually(t, func() bool {
		s := l.Snapshot()
		return s.State == state && s.Currency == curr
	}, waitFor, tick)
}

func Test_NewLoader_ShouldBeIdle(t *testing.T) {
	l := NewLoader(newFakeProvider())
	defer l.Close()

	s := l.Snapshot()
	assert.Equal(t, Idle, s.State)
	assert.Nil(t, s.Rates)
}

func Test_Request_ShouldLoadRates(t *testing.T) {
	p := newFakeProvider()
	l := NewLoader(p)
	defer l.Close()

	l.Request(context.Background(), "RUB")
	assert.Equal(t, Loading, l.Snapshot().State)
	assert.Nil(t, l.Snapshot().Rates)

	p.release("RUB", currency.NewRates("RUB", map[string]float64{"USD": 0.011}), nil)
	waitState(t, l, Ready, "RUB")

	rate, ok := l.Snapshot().Rates.Lookup("USD")
	assert.True(t, ok)
	assert.Equal(t, 0.011, rate)
}

func Test_Request_OnProviderError_ShouldFail(t *testing.T) {
	p := newFakeProvider()
	l := NewLoader(p)
	defer l.Close()

	fetchErr := &currency.RateFetchError{Base: "RUB", Err: errors.New("network down")}
	l.Request(context.Background(), "RUB")
	p.release("RUB", nil, fetchErr)
	waitState(t, l, Failed, "RUB")

	s := l.Snapshot()
	assert.Nil(t, s.Rates)
	assert.ErrorIs(t, s.Err, fetchErr)
}

func Test_Request_OnTableWithOtherBase_ShouldFail(t *testing.T) {
	p := newFakeProvider()
	l := NewLoader(p)
	defer l.Close()

	l.Request(context.Background(), "RUB")
	p.release("RUB", currency.NewRates("USD", map[string]float64{"RUB": 90}), nil)
	waitState(t, l, Failed, "RUB")

	var fetchErr *currency.RateFetchError
	assert.True(t, errors.As(l.Snapshot().Err, &fetchErr))
}

func Test_Request_ShouldDiscardStaleResponse(t *testing.T) {
	p := newFakeProvider()
	l := NewLoader(p)
	defer l.Close()

	l.Request(context.Background(), "RUB")
	l.Request(context.Background(), "USD")
	assert.Equal(t, "USD", l.Snapshot().Currency)
	assert.Equal(t, Loading, l.Snapshot().State)

	p.release("USD", currency.NewRates("USD", map[string]float64{"RUB": 90}), nil)
	waitState(t, l, Ready, "USD")

	// the RUB response resolves late and must not replace the USD table
	p.release("RUB", currency.NewRates("RUB", map[string]float64{"USD": 0.011}), nil)
	require.Eventually(t, func() bool { return p.callCount() == 2 }, waitFor, tick)
	l.Close()

	s := l.Snapshot()
	assert.Equal(t, Ready, s.State)
	assert.Equal(t, "USD", s.Currency)
	assert.Equal(t, "USD", s.Rates.Base)
}

func Test_Request_StaleResponseBeforeCurrent_ShouldBeDiscarded(t *testing.T) {
	p := newFakeProvider()
	l := NewLoader(p)
	defer l.Close()

	l.Request(context.Background(), "RUB")
	l.Request(context.Background(), "USD")

	p.release("RUB", currency.NewRates("RUB", map[string]float64{"USD": 0.011}), nil)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, Loading, l.Snapshot().State)
	assert.Equal(t, "USD", l.Snapshot().Currency)

	p.release("USD", currency.NewRates("USD", map[string]float64{"RUB": 90}), nil)
	waitState(t, l, Ready, "USD")
}

func Test_Request_SameCurrency_ShouldFetchOnce(t *testing.T) {
	p := newFakeProvider()
	l := NewLoader(p)
	defer l.Close()

	l.Request(context.Background(), "RUB")
	l.Request(context.Background(), "RUB")
	p.release("RUB", currency.NewRates("RUB", nil), nil)
	waitState(t, l, Ready, "RUB")
	l.Request(context.Background(), "RUB")

	assert.Equal(t, 1, p.callCount())
}

func Test_Request_AfterFailure_ShouldRetry(t *testing.T) {
	p := newFakeProvider()
	l := NewLoader(p)
	defer l.Close()

	l.Request(context.Background(), "RUB")
	p.release("RUB", nil, errors.New("boom"))
	waitState(t, l, Failed, "RUB")

	l.Request(context.Background(), "RUB")
	p.release("RUB", currency.NewRates("RUB", nil), nil)
	waitState(t, l, Ready, "RUB")
	assert.Equal(t, 2, p.callCount())
}

func Test_Refresh_ShouldFetchAgain(t *testing.T) {
	p := newFakeProvider()
	l := NewLoader(p)
	defer l.Close()

	l.Refresh(context.Background())
	assert.Equal(t, Idle, l.Snapshot().State)

	l.Request(context.Background(), "EUR")
	p.release("EUR", currency.NewRates("EUR", nil), nil)
	waitState(t, l, Ready, "EUR")

	l.Refresh(context.Background())
	assert.Equal(t, Loading, l.Snapshot().State)
	p.release("EUR", currency.NewRates("EUR", nil), nil)
	waitState(t, l, Ready, "EUR")
	assert.Equal(t, 2, p.callCount())
}

func Test_Subscribe_ShouldReceiveTransitions(t *testing.T) {
	p := newFakeProvider()
	l := NewLoader(p)
	defer l.Close()

	var mu sync.Mutex
	var states []State
	unsubscribe := l.Subscribe(func(s Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		states = append(states, s.State)
	})

	l.Request(context.Background(), "RUB")
	p.release("RUB", currency.NewRates("RUB", nil), nil)
	waitState(t, l, Ready, "RUB")

	unsubscribe()
	l.Request(context.Background(), "USD")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []State{Loading, Ready}, states)

	p.release("USD", currency.NewRates("USD", nil), nil)
}

func Test_State_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "ready", Ready.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "state(9)", State(9).String())
}
