package store

// MultiMode is a store whose changes are routed to a handler chosen by the
// caller's intent.
//
// Generic subscribers see every genuine change. The handler registered for
// the intent passed to Set or Update is called once per genuine change with
// the new value; equal values reach neither.
type MultiMode[T any, K comparable] struct {
	store    *Writable[T]
	handlers map[K]func(T)
}

// NewMultiMode creates a store holding value. The handlers map is copied.
func NewMultiMode[T any, K comparable](value T, handlers map[K]func(T), opts ...WritableOption[T]) *MultiMode[T, K] {
	h := make(map[K]func(T), len(handlers))
	for k, fn := range handlers {
		h[k] = fn
	}
	return &MultiMode[T, K]{
		store:    NewWritable(value, opts...),
		handlers: h,
	}
}

// Subscribe calls fn with the current value, then on every change.
func (m *MultiMode[T, K]) Subscribe(fn func(T)) func() {
	return m.store.Subscribe(fn)
}

// Get returns the current value.
func (m *MultiMode[T, K]) Get() T {
	return m.store.Get()
}

// Set stores value on behalf of kind. It reports whether the value changed.
func (m *MultiMode[T, K]) Set(kind K, value T) bool {
	if !m.store.Set(value) {
		return false
	}
	m.handle(kind, value)
	return true
}

// Update derives the next value from the current one on behalf of kind.
// It reports whether the value changed.
func (m *MultiMode[T, K]) Update(kind K, updater func(T) T) bool {
	var next T
	changed := m.store.Update(func(v T) T {
		next = updater(v)
		return next
	})
	if !changed {
		return false
	}
	m.handle(kind, next)
	return true
}

func (m *MultiMode[T, K]) handle(kind K, value T) {
	if fn := m.handlers[kind]; fn != nil {
		fn(value)
	}
}
