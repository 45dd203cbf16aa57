package resource

// Disposable is a shared resource whose lifetime is reference counted.
//
// Identity must be stable for the lifetime of the resource; two values with
// the same identity are treated as the same resource by every Tracker bound
// to the same Usage.
type Disposable interface {
	Identity() string
	Dispose()
}

// EventType identifies a tracker lifecycle notification.
type EventType uint8

const (
	// EventRegistered fires when a scope registers a resource for the first time.
	EventRegistered EventType = iota
	// EventReleased fires for every resource a scope gives up in ReleaseAll.
	EventReleased
	// EventDisposed fires after a resource's Dispose has been called.
	EventDisposed
	// EventKept fires when a released resource reaches zero uses but is pinned.
	EventKept
)

func (t EventType) String() string {
	switch t {
	case EventRegistered:
		return "registered"
	case EventReleased:
		return "released"
	case EventDisposed:
		return "disposed"
	case EventKept:
		return "kept"
	default:
		return "unknown"
	}
}

// Event describes a resource lifecycle change.
type Event struct {
	Resource Disposable
	Identity string
	// Count is the global usage count after the change.
	Count int
	Type  EventType
}

// Observer receives notifications about resource lifecycle events.
type Observer interface {
	OnResourceEvent(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// OnResourceEvent calls f(e).
func (f ObserverFunc) OnResourceEvent(e Event) {
	f(e)
}
