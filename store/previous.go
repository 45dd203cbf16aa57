package store

import "sync"

// Previous is a store that publishes the value staged before the latest
// accepted update.
//
// Every accepted Set or Update shifts the staged value into the published
// slot and stages the incoming one. Subscribers therefore lag one step
// behind, which is what before/after diff views consume. Updates equal to
// the staged value are ignored and do not shift.
type Previous[T any] struct {
	published *Writable[T]
	staged    T
	equal     EqualFunc[T]
	mu        sync.Mutex
}

// NewPrevious creates a store whose published and staged values are init.
func NewPrevious[T any](init T, opts ...WritableOption[T]) *Previous[T] {
	w := NewWritable(init, opts...)
	return &Previous[T]{
		published: w,
		staged:    init,
		equal:     w.equal,
	}
}

// Subscribe calls fn with the published value, then on every change of it.
func (p *Previous[T]) Subscribe(fn func(T)) func() {
	return p.published.Subscribe(fn)
}

// Get returns the published value.
func (p *Previous[T]) Get() T {
	return p.published.Get()
}

// Staged returns the value waiting to be published by the next shift.
func (p *Previous[T]) Staged() T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.staged
}

// Set stages value. It reports whether a shift happened.
func (p *Previous[T]) Set(value T) bool {
	p.mu.Lock()
	if p.equal(p.staged, value) {
		p.mu.Unlock()
		return false
	}
	prev := p.staged
	p.staged = value
	p.mu.Unlock()

	p.published.Set(prev)
	return true
}

// Update stages the result of fn applied to the staged value.
// It reports whether a shift happened.
func (p *Previous[T]) Update(fn func(T) T) bool {
	p.mu.Lock()
	next := fn(p.staged)
	if p.equal(p.staged, next) {
		p.mu.Unlock()
		return false
	}
	prev := p.staged
	p.staged = next
	p.mu.Unlock()

	p.published.Set(prev)
	return true
}
