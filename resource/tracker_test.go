package resource

import (
	stderrors "errors"
	"fmt"
	"sync"
	"testing"

	"github.com/wippyai/editorbind/errors"
)

type fakeModel struct {
	id       string
	disposed int
}

func (m *fakeModel) Identity() string { return m.id }
func (m *fakeModel) Dispose()         { m.disposed++ }

type testObserver struct {
	events []Event
}

func (o *testObserver) OnResourceEvent(e Event) {
	o.events = append(o.events, e)
}

func (o *testObserver) types() []EventType {
	out := make([]EventType, len(o.events))
	for i, e := range o.events {
		out[i] = e.Type
	}
	return out
}

func TestTracker_SingleScope(t *testing.T) {
	usage := NewUsage()
	tr := NewTracker(usage)
	m := &fakeModel{id: "m1"}

	tr.Register(m)
	if got := usage.Count("m1"); got != 1 {
		t.Fatalf("Count = %d, want 1", got)
	}
	if !tr.Registered(m) {
		t.Fatal("Registered should be true")
	}

	tr.ReleaseAll()
	if m.disposed != 1 {
		t.Fatalf("disposed %d times, want 1", m.disposed)
	}
	if usage.Len() != 0 {
		t.Fatalf("usage should be empty, has %d entries", usage.Len())
	}
	if tr.Len() != 0 {
		t.Fatal("tracker should be empty after ReleaseAll")
	}
}

func TestTracker_IdempotentRegister(t *testing.T) {
	usage := NewUsage()
	a := NewTracker(usage)
	b := NewTracker(usage)
	m := &fakeModel{id: "m1"}

	a.Register(m)
	a.Register(m)
	b.Register(m)
	if got := usage.Count("m1"); got != 2 {
		t.Fatalf("Count = %d, want 2", got)
	}
	if a.Len() != 1 {
		t.Fatalf("a.Len() = %d, want 1", a.Len())
	}

	a.ReleaseAll()
	if got := usage.Count("m1"); got != 1 {
		t.Fatalf("Count after one release = %d, want 1", got)
	}
	if m.disposed != 0 {
		t.Fatal("model disposed while b still uses it")
	}

	b.ReleaseAll()
	if m.disposed != 1 {
		t.Fatalf("disposed %d times, want 1", m.disposed)
	}
}

func TestTracker_LastReleaseDisposesOnce(t *testing.T) {
	for n := 1; n <= 5; n++ {
		t.Run(fmt.Sprintf("%d scopes", n), func(t *testing.T) {
			usage := NewUsage()
			m := &fakeModel{id: "shared"}

			scopes := make([]*Tracker, n)
			for i := range scopes {
				scopes[i] = NewTracker(usage)
				scopes[i].Register(m)
			}

			for i, s := range scopes {
				s.ReleaseAll()
				s.ReleaseAll()
				want := 0
				if i == n-1 {
					want = 1
				}
				if m.disposed != want {
					t.Fatalf("after release %d: disposed %d, want %d", i+1, m.disposed, want)
				}
			}
		})
	}
}

func TestTracker_PinKeepsAlive(t *testing.T) {
	usage := NewUsage()
	tr := NewTracker(usage)
	m := &fakeModel{id: "m1"}

	tr.Register(m)
	tr.Pin(m)
	if got := usage.Count("m1"); got != 1 {
		t.Fatalf("Pin changed count to %d", got)
	}

	tr.ReleaseAll()
	if m.disposed != 0 {
		t.Fatal("pinned model was disposed")
	}
	if usage.Count("m1") != 0 {
		t.Fatal("count should drop to zero")
	}
	if usage.Pins("m1") != 0 {
		t.Fatal("pin should be dropped with the scope")
	}
}

func TestTracker_PinByOtherLiveScope(t *testing.T) {
	usage := NewUsage()
	a := NewTracker(usage)
	b := NewTracker(usage)
	m := &fakeModel{id: "m1"}

	a.Pin(m)
	b.Register(m)
	b.ReleaseAll()
	if m.disposed != 0 {
		t.Fatal("model pinned by a live scope was disposed")
	}

	a.ReleaseAll()
	c := NewTracker(usage)
	c.Register(m)
	c.ReleaseAll()
	if m.disposed != 1 {
		t.Fatalf("disposed %d times after pinning scope went away, want 1", m.disposed)
	}
}

func TestTracker_PinnedSurvivesOtherRelease(t *testing.T) {
	usage := NewUsage()
	a := NewTracker(usage)
	b := NewTracker(usage)
	m := &fakeModel{id: "m1"}

	a.Register(m)
	a.Pin(m)
	b.Register(m)

	b.ReleaseAll()
	if m.disposed != 0 {
		t.Fatal("model disposed while a still holds it")
	}
	a.ReleaseAll()
	if m.disposed != 0 {
		t.Fatal("pinned model disposed on a's release")
	}
}

func TestTracker_PinIsIdempotent(t *testing.T) {
	usage := NewUsage()
	tr := NewTracker(usage)
	m := &fakeModel{id: "m1"}

	tr.Pin(m)
	tr.Pin(m)
	if got := usage.Pins("m1"); got != 1 {
		t.Fatalf("Pins = %d, want 1", got)
	}
	if !tr.Pinned(m) {
		t.Fatal("Pinned should be true")
	}
	tr.ReleaseAll()
	if usage.Pins("m1") != 0 {
		t.Fatal("pins should be gone")
	}
}

func TestTracker_ReleaseWithoutRegister(t *testing.T) {
	usage := NewUsage()
	tr := NewTracker(usage)
	tr.ReleaseAll()
	tr.ReleaseAll()
	if usage.Len() != 0 {
		t.Fatal("usage should stay empty")
	}
}

func TestTracker_IndependentUsages(t *testing.T) {
	m := &fakeModel{id: "m1"}
	a := NewTracker(NewUsage())
	b := NewTracker(NewUsage())

	a.Register(m)
	b.Register(m)
	a.ReleaseAll()
	if m.disposed != 1 {
		t.Fatalf("separate usages must not share counts, disposed %d", m.disposed)
	}
	b.ReleaseAll()
	if m.disposed != 2 {
		t.Fatalf("disposed %d, want 2", m.disposed)
	}
}

func TestTracker_Observer(t *testing.T) {
	usage := NewUsage()
	obs := &testObserver{}
	a := NewTracker(usage, WithObserver(obs))
	b := NewTracker(usage)
	m1 := &fakeModel{id: "m1"}
	m2 := &fakeModel{id: "m2"}

	a.Register(m1)
	a.Register(m2)
	a.Pin(m2)
	b.Register(m1)
	b.ReleaseAll()
	a.ReleaseAll()

	want := []EventType{
		EventRegistered, EventRegistered,
		EventReleased, EventDisposed,
		EventReleased, EventKept,
	}
	got := obs.types()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d = %s, want %s", i, got[i], want[i])
		}
	}
	if obs.events[2].Identity != "m1" || obs.events[2].Count != 0 {
		t.Fatalf("unexpected release event %+v", obs.events[2])
	}
}

func TestTracker_ObserverFunc(t *testing.T) {
	var seen []string
	tr := NewTracker(NewUsage(), WithObserver(ObserverFunc(func(e Event) {
		seen = append(seen, e.Type.String())
	})))
	tr.Register(&fakeModel{id: "x"})
	tr.ReleaseAll()

	want := []string{"registered", "released", "disposed"}
	if fmt.Sprint(seen) != fmt.Sprint(want) {
		t.Fatalf("seen = %v, want %v", seen, want)
	}
}

type countingModel struct {
	id       string
	mu       sync.Mutex
	disposed int
}

func (m *countingModel) Identity() string { return m.id }
func (m *countingModel) Dispose() {
	m.mu.Lock()
	m.disposed++
	m.mu.Unlock()
}

func (m *countingModel) IsDisposed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.disposed > 0
}

func (m *countingModel) disposals() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.disposed
}

func TestTracker_ConcurrentScopes(t *testing.T) {
	usage := NewUsage()
	m := &countingModel{id: "shared"}

	const scopes = 64
	trackers := make([]*Tracker, scopes)
	for i := range trackers {
		trackers[i] = NewTracker(usage)
		trackers[i].Register(m)
	}

	var wg sync.WaitGroup
	for _, tr := range trackers {
		wg.Add(1)
		go func(tr *Tracker) {
			defer wg.Done()
			tr.ReleaseAll()
		}(tr)
	}
	wg.Wait()

	if got := m.disposals(); got != 1 {
		t.Fatalf("disposed %d times, want exactly 1", got)
	}
}

func TestTracker_RegisterDuringRelease(t *testing.T) {
	usage := NewUsage()
	b := NewTracker(usage)
	m := &fakeModel{id: "m1"}

	var regErr error
	a := NewTracker(usage, WithObserver(ObserverFunc(func(e Event) {
		if e.Type == EventReleased {
			regErr = b.Register(m)
		}
	})))

	a.Register(m)
	a.ReleaseAll()
	if regErr == nil {
		t.Fatal("a resource being disposed must not be registered")
	}
	if !stderrors.Is(regErr, &errors.Error{Phase: errors.PhaseTrack, Kind: errors.KindDisposed}) {
		t.Fatalf("unexpected error %v", regErr)
	}
	if b.Registered(m) {
		t.Fatal("refused resource reported as registered")
	}
	if m.disposed != 1 {
		t.Fatalf("disposed %d times, want 1", m.disposed)
	}
	if got := usage.Count("m1"); got != 0 {
		t.Fatalf("Count = %d, want 0", got)
	}

	b.ReleaseAll()
	if m.disposed != 1 {
		t.Fatalf("disposed %d times after second scope, want 1", m.disposed)
	}
}

func TestTracker_RegisterDisposed(t *testing.T) {
	usage := NewUsage()
	m := &countingModel{id: "m1"}
	a := NewTracker(usage)
	a.Register(m)
	a.ReleaseAll()

	b := NewTracker(usage)
	if err := b.Register(m); err == nil {
		t.Fatal("disposed resource registered")
	}
	b.ReleaseAll()
	if got := m.disposals(); got != 1 {
		t.Fatalf("disposed %d times, want 1", got)
	}

	// a new resource under a fresh identity is unaffected
	if err := b.Register(&countingModel{id: "m2"}); err != nil {
		t.Fatalf("live resource refused: %v", err)
	}
}

func TestTracker_ReleaseRacesRegister(t *testing.T) {
	for i := 0; i < 200; i++ {
		usage := NewUsage()
		m := &countingModel{id: "shared"}
		a := NewTracker(usage)
		b := NewTracker(usage)
		a.Register(m)

		var (
			wg     sync.WaitGroup
			regErr error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			a.ReleaseAll()
		}()
		go func() {
			defer wg.Done()
			regErr = b.Register(m)
		}()
		wg.Wait()

		if regErr == nil {
			if m.disposals() != 0 {
				t.Fatalf("iteration %d: disposed while held", i)
			}
			b.ReleaseAll()
		}
		if n := m.disposals(); n != 1 {
			t.Fatalf("iteration %d: disposed %d times, want 1", i, n)
		}
		if usage.Count("shared") != 0 {
			t.Fatalf("iteration %d: count left behind", i)
		}
	}
}

func TestEventType_String(t *testing.T) {
	if EventType(200).String() != "unknown" {
		t.Fatal("unexpected name for unknown event type")
	}
}
