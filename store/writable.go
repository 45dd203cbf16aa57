package store

import "sync"

// Readable is a store that can only be observed.
type Readable[T any] interface {
	// Subscribe calls fn with the current value, then on every change.
	// The returned function detaches fn; calling it twice is harmless.
	Subscribe(fn func(T)) (unsubscribe func())

	// Get returns the current value.
	Get() T
}

// StartFunc runs when a store gains its first subscriber. It may call set to
// push values into the store and returns a stop function that runs when the
// last subscriber leaves.
type StartFunc[T any] func(set func(T)) (stop func())

// WritableOption configures a Writable.
type WritableOption[T any] func(*Writable[T])

// WithEqual replaces the structural comparison used to suppress notifications.
func WithEqual[T any](eq EqualFunc[T]) WritableOption[T] {
	return func(w *Writable[T]) {
		if eq != nil {
			w.equal = eq
		}
	}
}

// WithStart registers a start notifier.
func WithStart[T any](start StartFunc[T]) WritableOption[T] {
	return func(w *Writable[T]) {
		w.start = start
	}
}

type subscription[T any] struct {
	fn func(T)
}

// Writable is a mutable store that notifies subscribers on genuine change.
type Writable[T any] struct {
	value   T
	equal   EqualFunc[T]
	start   StartFunc[T]
	stop    func()
	subs    []*subscription[T]
	mu      sync.Mutex
	started bool
	// starting counts subscribers whose start call has not returned yet
	starting int
}

// NewWritable creates a store holding value.
func NewWritable[T any](value T, opts ...WritableOption[T]) *Writable[T] {
	w := &Writable[T]{
		value: value,
		equal: defaultEqual[T],
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Get returns the current value.
func (w *Writable[T]) Get() T {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.value
}

// Set stores value and notifies subscribers if it differs from the current one.
// It reports whether the value changed.
func (w *Writable[T]) Set(value T) bool {
	w.mu.Lock()
	if w.equal(w.value, value) {
		w.mu.Unlock()
		return false
	}
	w.value = value
	subs := w.snapshot()
	w.mu.Unlock()

	notify(subs, value)
	return true
}

// Update applies fn to the current value and stores the result.
// It reports whether the value changed. fn runs under the store lock and must
// not call back into the store.
func (w *Writable[T]) Update(fn func(T) T) bool {
	w.mu.Lock()
	next := fn(w.value)
	if w.equal(w.value, next) {
		w.mu.Unlock()
		return false
	}
	w.value = next
	subs := w.snapshot()
	w.mu.Unlock()

	notify(subs, next)
	return true
}

// Subscribe calls fn with the current value and then on every change.
func (w *Writable[T]) Subscribe(fn func(T)) func() {
	sub := &subscription[T]{fn: fn}

	w.mu.Lock()
	start := w.start
	needStart := start != nil && !w.started
	if needStart {
		w.started = true
		w.starting++
	}
	w.mu.Unlock()

	var stop func()
	if needStart {
		stop = start(func(v T) { w.Set(v) })
	}

	w.mu.Lock()
	if needStart {
		w.starting--
		w.stop = stop
	}
	w.subs = append(w.subs, sub)
	w.mu.Unlock()

	fn(w.Get())

	var once sync.Once
	return func() {
		once.Do(func() { w.unsubscribe(sub) })
	}
}

// Len returns the number of active subscribers.
func (w *Writable[T]) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.subs)
}

func (w *Writable[T]) unsubscribe(sub *subscription[T]) {
	w.mu.Lock()
	for i, s := range w.subs {
		if s == sub {
			w.subs = append(w.subs[:i:i], w.subs[i+1:]...)
			break
		}
	}
	var stop func()
	if len(w.subs) == 0 && w.starting == 0 && w.started {
		stop = w.stop
		w.stop = nil
		w.started = false
	}
	w.mu.Unlock()

	if stop != nil {
		stop()
	}
}

func (w *Writable[T]) snapshot() []*subscription[T] {
	subs := make([]*subscription[T], len(w.subs))
	copy(subs, w.subs)
	return subs
}

func notify[T any](subs []*subscription[T], value T) {
	for _, s := range subs {
		s.fn(value)
	}
}
