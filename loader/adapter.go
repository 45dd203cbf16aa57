package loader

import (
	"context"
	"maps"
	"slices"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/wippyai/editorbind/errors"
)

// State is the adapter's position in the Unloaded → Loading → Loaded machine.
type State int32

const (
	StateUnloaded State = iota
	StateLoading
	StateLoaded
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// LoadFunc loads the engine. It should stop early and return an error when
// ctx is canceled; errors.IsCanceled decides whether that error is expected.
type LoadFunc[E any] func(ctx context.Context) (E, error)

// Option configures an Adapter.
type Option[E any] func(*Adapter[E])

// WithLogger sets the adapter's logger.
func WithLogger[E any](l *zap.Logger) Option[E] {
	return func(a *Adapter[E]) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithProbe lets the adapter adopt an instance the external loader already
// holds. probe is consulted before starting a load.
func WithProbe[E any](probe func() (E, bool)) Option[E] {
	return func(a *Adapter[E]) {
		a.probe = probe
	}
}

// WithFlight makes the adapter load through g under key. Adapters sharing g
// and key share one call to the load function while it is in flight; the
// call runs under the context of the adapter that started it.
func WithFlight[E any](g *singleflight.Group, key string) Option[E] {
	return func(a *Adapter[E]) {
		if g != nil {
			a.flight = g
			a.flightKey = key
		}
	}
}

const defaultFlightKey = "engine"

// attempt is one load in flight.
type attempt struct {
	done      chan struct{}
	cancel    context.CancelFunc
	err       error
	abandoned bool
	// joined is set when the attempt shared a flight that another adapter
	// canceled while this one still wanted the engine.
	joined bool
}

// Adapter acquires a single engine instance for any number of subscribers.
//
// The first subscription starts the load; subscriptions made while it is in
// flight share it. Once loaded the instance is cached for the lifetime of the
// adapter and handed to later subscribers synchronously. When every waiting
// subscriber leaves before the load resolves, the load is canceled.
type Adapter[E any] struct {
	load      LoadFunc[E]
	probe     func() (E, bool)
	logger    *zap.Logger
	flight    *singleflight.Group
	flightKey string
	value     E
	err       error
	subs      map[uint64]func(E)
	attempt   *attempt
	nextID    uint64
	state     State
	mu        sync.Mutex
}

// New creates an adapter around load. Nothing is loaded until Subscribe.
func New[E any](load LoadFunc[E], opts ...Option[E]) *Adapter[E] {
	a := &Adapter[E]{
		load:      load,
		logger:    Logger(),
		flight:    &singleflight.Group{},
		flightKey: defaultFlightKey,
		subs:      make(map[uint64]func(E)),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// State returns the current state.
func (a *Adapter[E]) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Value returns the engine if it has been loaded.
func (a *Adapter[E]) Value() (E, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.value, a.state == StateLoaded
}

// Err returns the error of the last failed load that was not a cancellation.
func (a *Adapter[E]) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}

// Subscribe asks for the engine. fn is called exactly once with it: right
// away when it is already loaded, otherwise from the loading goroutine when
// the load succeeds, in subscription order. The returned function withdraws
// interest; withdrawing the last waiting subscriber cancels the load.
func (a *Adapter[E]) Subscribe(fn func(E)) (unsubscribe func()) {
	a.mu.Lock()
	if a.state != StateLoaded && a.probe != nil {
		if v, ok := a.probe(); ok {
			a.adoptLocked(v)
		}
	}
	if a.state == StateLoaded {
		v := a.value
		a.mu.Unlock()
		fn(v)
		return func() {}
	}

	id := a.nextID
	a.nextID++
	a.subs[id] = fn
	if a.state == StateUnloaded {
		a.startLocked()
	}
	a.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { a.unsubscribe(id) })
	}
}

// Wait blocks until the engine is loaded, the load fails, or ctx is done.
// Leaving early counts as withdrawing interest.
func (a *Adapter[E]) Wait(ctx context.Context) (E, error) {
	var zero E

	got := make(chan E, 1)
	unsubscribe := a.Subscribe(func(v E) { got <- v })
	defer unsubscribe()

	for {
		a.mu.Lock()
		att := a.attempt
		a.mu.Unlock()

		var failed <-chan struct{}
		if att != nil {
			failed = att.done
		}

		select {
		case v := <-got:
			return v, nil
		case <-ctx.Done():
			return zero, errors.Canceled(errors.PhaseLoad, ctx.Err())
		case <-failed:
			if att.err == nil {
				select {
				case v := <-got:
					return v, nil
				case <-ctx.Done():
					return zero, errors.Canceled(errors.PhaseLoad, ctx.Err())
				}
			}
			if !errors.IsCanceled(att.err) {
				return zero, errors.LoadFailed(att.err)
			}
			// abandoned by earlier subscribers; a restart is pending
			if a.waitRestart(att) {
				continue
			}
			return zero, errors.Canceled(errors.PhaseLoad, att.err)
		}
	}
}

// waitRestart reports whether a newer attempt replaced att.
func (a *Adapter[E]) waitRestart(att *attempt) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.attempt != att || a.state == StateLoaded
}

func (a *Adapter[E]) adoptLocked(v E) {
	a.value = v
	a.state = StateLoaded
	a.err = nil
	a.logger.Debug("engine adopted from loader")
}

func (a *Adapter[E]) startLocked() {
	ctx, cancel := context.WithCancel(context.Background())
	att := &attempt{
		done:   make(chan struct{}),
		cancel: cancel,
	}
	a.attempt = att
	a.state = StateLoading
	a.logger.Debug("engine load started")

	go a.run(ctx, att)
}

func (a *Adapter[E]) run(ctx context.Context, att *attempt) {
	res := <-a.flight.DoChan(a.flightKey, func() (any, error) {
		return a.load(ctx)
	})
	if res.Shared && ctx.Err() == nil && errors.IsCanceled(res.Err) {
		att.joined = true
	}
	att.cancel()

	var v E
	if res.Err == nil {
		v, _ = res.Val.(E)
	}
	a.finish(att, v, res.Err)
}

func (a *Adapter[E]) finish(att *attempt, v E, err error) {
	a.mu.Lock()
	att.err = err

	if err == nil {
		a.value = v
		a.state = StateLoaded
		a.err = nil
		subs := a.subs
		a.subs = make(map[uint64]func(E))
		a.mu.Unlock()

		a.logger.Debug("engine loaded", zap.Int("subscribers", len(subs)))
		// in subscription order; done closes after every delivery
		for _, id := range slices.Sorted(maps.Keys(subs)) {
			subs[id](v)
		}
		close(att.done)
		return
	}

	a.state = StateUnloaded
	canceled := errors.IsCanceled(err)
	if canceled {
		a.logger.Debug("engine load canceled")
	} else {
		a.err = err
		a.logger.Error("engine initialization failed", zap.Error(err))
	}

	// subscribers that arrived after the abandoned load still want the engine
	if canceled && (att.abandoned || att.joined) && len(a.subs) > 0 {
		a.startLocked()
	}
	a.mu.Unlock()
	close(att.done)
}

func (a *Adapter[E]) unsubscribe(id uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.subs[id]; !ok {
		return
	}
	delete(a.subs, id)

	if len(a.subs) == 0 && a.state == StateLoading && a.attempt != nil {
		a.logger.Debug("no subscribers left, canceling engine load")
		a.attempt.abandoned = true
		a.attempt.cancel()
	}
}
