package rates

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"go.uber.org/zap"
	"max.ks1230/finance-tracker/internal/entity/currency"
	"max.ks1230/finance-tracker/internal/logger"
)

type State int

const (
	Idle State = iota
	Loading
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Snapshot is never modified once published. Rates is set only in Ready.
type Snapshot struct {
	State    State
	Currency string
	Rates    *currency.Rates
	Err      error
}

type ratesProvider interface {
	Name() string
	GetRates(ctx context.Context, base string) (*currency.Rates, error)
}

// Loader keeps the rate table for one currency at a time. Every request is tagged
// with a generation, and a result is applied only while its generation is current.
type Loader struct {
	provider ratesProvider
	current  atomic.Pointer[Snapshot]
	wg       sync.WaitGroup

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	subs       map[int]func(Snapshot)
	nextSubID  int
}

func NewLoader(provider ratesProvider) *Loader {
	l := &Loader{
		provider: provider,
		subs:     make(map[int]func(Snapshot)),
	}
	l.current.Store(&Snapshot{State: Idle})
	observeState(Idle)
	return l
}

func (l *Loader) Snapshot() Snapshot {
	return *l.current.Load()
}

// Subscribe registers fn to be called after every state change. fn runs while
// the loader is locked and must not call Request, Refresh or Close.
func (l *Loader) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextSubID
	l.nextSubID++
	l.subs[id] = fn
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.subs, id)
	}
}

// Request switches the loader to curr. A request for the currency that is
// already loading or loaded does nothing.
func (l *Loader) Request(ctx context.Context, curr string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cur := l.current.Load()
	if cur.Currency == curr && (cur.State == Loading || cur.State == Ready) {
		return
	}
	l.startLocked(ctx, curr)
}

// Refresh fetches the current currency again.
func (l *Loader) Refresh(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cur := l.current.Load()
	if cur.State == Idle {
		return
	}
	l.startLocked(ctx, cur.Currency)
}

// Close drops the in-flight fetch and waits for fetch goroutines to exit.
func (l *Loader) Close() {
	l.mu.Lock()
	l.generation++
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.mu.Unlock()

	l.wg.Wait()
}

func (l *Loader) startLocked(ctx context.Context, curr string) {
	l.generation++
	gen := l.generation
	if l.cancel != nil {
		l.cancel()
	}

	// the fetch outlives the request that triggered it, only the span is carried over
	fetchCtx, cancel := context.WithCancel(context.Background())
	if span := opentracing.SpanFromContext(ctx); span != nil {
		fetchCtx = opentracing.ContextWithSpan(fetchCtx, span)
	}
	l.cancel = cancel

	logger.Info("Requesting rates", zap.String("currency", curr), zap.Uint64("generation", gen))
	l.setLocked(&Snapshot{State: Loading, Currency: curr})

	l.wg.Add(1)
	go l.fetch(fetchCtx, gen, curr)
}

func (l *Loader) fetch(ctx context.Context, gen uint64, curr string) {
	defer l.wg.Done()

	span, ctx := opentracing.StartSpanFromContext(ctx, "fetchRates")
	defer span.Finish()
	span.SetTag("currency", curr)

	start := time.Now()
	table, err := l.provider.GetRates(ctx, curr)
	observeFetch(l.provider.Name(), time.Since(start), err)

	next := &Snapshot{Currency: curr}
	switch {
	case err != nil:
		next.State, next.Err = Failed, err
	case table == nil || table.Base != curr:
		next.State = Failed
		next.Err = &currency.RateFetchError{Base: curr, Err: fmt.Errorf("table is not based on %s", curr)}
	default:
		next.State, next.Rates = Ready, table
	}
	if next.Err != nil {
		ext.Error.Set(span, true)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.generation {
		logger.Info("Discarding stale rates", zap.String("currency", curr), zap.Uint64("generation", gen))
		return
	}
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}

	if next.Err != nil {
		logger.Error("cannot get rates", zap.String("currency", curr), zap.Error(next.Err))
	} else {
		logger.Info("Successfully pulled current rates", zap.String("currency", curr), zap.Int("rates", table.Len()))
	}
	l.setLocked(next)
}

func (l *Loader) setLocked(next *Snapshot) {
	l.current.Store(next)
	observeState(next.State)
	for _, fn := range l.subs {
		fn(*next)
	}
}
