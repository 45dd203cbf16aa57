package resource

import (
	"reflect"
	"sync"
)

// Usage counts how many scopes depend on each resource identity.
//
// One Usage is shared by every Tracker that may see the same resources.
// It replaces a process-wide map so that independent hosts (and tests) get
// isolated counters.
type Usage struct {
	counts  map[string]int
	pins    map[string]int
	retired map[string]Disposable
	mu      sync.Mutex
}

// NewUsage creates an empty usage counter.
func NewUsage() *Usage {
	return &Usage{
		counts:  make(map[string]int),
		pins:    make(map[string]int),
		retired: make(map[string]Disposable),
	}
}

// Count returns the number of scopes currently holding id.
func (u *Usage) Count(id string) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.counts[id]
}

// Len returns the number of identities with a non-zero count.
func (u *Usage) Len() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.counts)
}

// Pins returns the number of live scopes that pinned id.
func (u *Usage) Pins(id string) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.pins[id]
}

// acquire counts one more holder of r. It refuses r while a scope is
// disposing it, and afterwards if r reports itself disposed.
func (u *Usage) acquire(id string, r Disposable) (int, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if old, ok := u.retired[id]; ok {
		if sameResource(old, r) {
			return 0, false
		}
		delete(u.retired, id)
	}
	if d, ok := r.(interface{ IsDisposed() bool }); ok && d.IsDisposed() {
		return 0, false
	}
	u.counts[id]++
	return u.counts[id], true
}

// release drops one holder of id and returns the remaining count. When the
// count reaches zero and no live scope pinned id, r is claimed for disposal
// and dispose is true: the caller must call r.Dispose and then forget.
// An unknown id releases to zero.
func (u *Usage) release(id string, r Disposable) (count int, dispose bool) {
	u.mu.Lock()
	defer u.mu.Unlock()

	count = u.counts[id]
	if count > 1 {
		u.counts[id] = count - 1
		return count - 1, false
	}
	delete(u.counts, id)

	if u.pins[id] > 0 {
		return 0, false
	}
	u.retired[id] = r
	return 0, true
}

// forget ends the disposal claim on r.
func (u *Usage) forget(id string, r Disposable) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if old, ok := u.retired[id]; ok && sameResource(old, r) {
		delete(u.retired, id)
	}
}

func (u *Usage) pin(id string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.pins[id]++
}

func (u *Usage) unpin(id string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.pins[id] > 1 {
		u.pins[id]--
		return
	}
	delete(u.pins, id)
}

func sameResource(a, b Disposable) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
