package resource

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/editorbind/errors"
)

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithObserver adds a lifecycle observer.
func WithObserver(o Observer) TrackerOption {
	return func(t *Tracker) {
		if o != nil {
			t.observers = append(t.observers, o)
		}
	}
}

// WithLogger sets the tracker's logger.
func WithLogger(l *zap.Logger) TrackerOption {
	return func(t *Tracker) {
		if l != nil {
			t.logger = l
		}
	}
}

// Tracker is the per-consumer view of shared resources.
//
// A component creates one Tracker, registers every resource it uses and
// calls ReleaseAll when it goes away. Resources are disposed by the last
// scope to release them unless a live scope pinned them.
type Tracker struct {
	usage     *Usage
	logger    *zap.Logger
	used      []Disposable
	usedIDs   map[string]struct{}
	keepAlive map[string]struct{}
	observers []Observer
	mu        sync.Mutex
}

// NewTracker creates a scope counting into usage.
func NewTracker(usage *Usage, opts ...TrackerOption) *Tracker {
	if usage == nil {
		usage = NewUsage()
	}
	t := &Tracker{
		usage:     usage,
		logger:    Logger(),
		usedIDs:   make(map[string]struct{}),
		keepAlive: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Register records that this scope uses r. Registering the same resource
// twice in one scope counts once. A resource that another scope is disposing,
// or that is already disposed, is refused with a KindDisposed error.
func (t *Tracker) Register(r Disposable) error {
	id := r.Identity()

	t.mu.Lock()
	if _, ok := t.usedIDs[id]; ok {
		t.mu.Unlock()
		return nil
	}
	count, ok := t.usage.acquire(id, r)
	if !ok {
		t.mu.Unlock()
		t.logger.Debug("resource refused, disposed", zap.String("id", id))
		return errors.Disposed(errors.PhaseTrack, fmt.Sprintf("resource %q", id))
	}
	t.usedIDs[id] = struct{}{}
	t.used = append(t.used, r)
	t.mu.Unlock()

	t.logger.Debug("resource registered", zap.String("id", id), zap.Int("count", count))
	t.notify(Event{Type: EventRegistered, Resource: r, Identity: id, Count: count})
	return nil
}

// Pin prevents r from being disposed when its usage count drops to zero,
// whether that happens in this scope's ReleaseAll or in another scope's
// while this one is alive. Pinning does not change the usage count and
// cannot be undone.
func (t *Tracker) Pin(r Disposable) {
	id := r.Identity()

	t.mu.Lock()
	if _, ok := t.keepAlive[id]; ok {
		t.mu.Unlock()
		return
	}
	t.keepAlive[id] = struct{}{}
	t.mu.Unlock()

	t.usage.pin(id)
}

// Registered reports whether this scope has registered r.
func (t *Tracker) Registered(r Disposable) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.usedIDs[r.Identity()]
	return ok
}

// Pinned reports whether this scope has pinned r.
func (t *Tracker) Pinned(r Disposable) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.keepAlive[r.Identity()]
	return ok
}

// Len returns the number of resources registered by this scope.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.used)
}

// ReleaseAll gives up every registered resource and disposes those no scope
// uses any more, except the ones pinned by this scope or by another live
// scope. The scope is empty afterwards and its pins are dropped; calling
// ReleaseAll again does nothing.
func (t *Tracker) ReleaseAll() {
	t.mu.Lock()
	used := t.used
	keepAlive := t.keepAlive
	t.used = nil
	t.usedIDs = make(map[string]struct{})
	t.keepAlive = make(map[string]struct{})
	t.mu.Unlock()

	for _, r := range used {
		id := r.Identity()
		// this scope's pins are still counted here
		count, dispose := t.usage.release(id, r)
		t.notify(Event{Type: EventReleased, Resource: r, Identity: id, Count: count})
		if count > 0 {
			continue
		}
		if !dispose {
			t.logger.Debug("resource kept alive", zap.String("id", id))
			t.notify(Event{Type: EventKept, Resource: r, Identity: id})
			continue
		}

		r.Dispose()
		t.usage.forget(id, r)
		t.logger.Debug("resource disposed", zap.String("id", id))
		t.notify(Event{Type: EventDisposed, Resource: r, Identity: id})
	}

	for id := range keepAlive {
		t.usage.unpin(id)
	}
}

func (t *Tracker) notify(e Event) {
	for _, o := range t.observers {
		o.OnResourceEvent(e)
	}
}
