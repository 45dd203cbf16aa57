package textengine

import (
	"sync"

	"github.com/wippyai/editorbind/engine"
)

// Model is an in-memory text model with grouped undo history.
type Model struct {
	registry  *Registry
	listeners map[uint64]func()
	id        string
	uri       string
	language  string
	text      string
	undo      []string
	nextID    uint64
	version   uint64
	mu        sync.Mutex
	grouping  bool
	disposed  bool
}

var _ engine.Model = (*Model)(nil)

func (m *Model) ID() string       { return m.id }
func (m *Model) URI() string      { return m.uri }
func (m *Model) Identity() string { return m.id }

func (m *Model) Value() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

func (m *Model) Language() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.language
}

// Version increases with every content change.
func (m *Model) Version() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.version
}

func (m *Model) FullRange() engine.Range {
	return fullRange(m.Value())
}

// SetValue replaces the content and clears the undo history.
func (m *Model) SetValue(value string) {
	m.mu.Lock()
	if m.disposed || m.text == value {
		m.mu.Unlock()
		return
	}
	m.text = value
	m.undo = nil
	m.grouping = false
	m.version++
	fns := m.snapshotListeners()
	m.mu.Unlock()

	notifyAll(fns)
}

// applyEdits applies edits inside the open undo group, opening one if needed.
func (m *Model) applyEdits(edits []engine.Edit) bool {
	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return false
	}
	next, ok := applyEdits(m.text, edits)
	if !ok {
		m.mu.Unlock()
		return false
	}
	if next == m.text {
		m.mu.Unlock()
		return true
	}
	if !m.grouping {
		m.undo = append(m.undo, m.text)
		m.grouping = true
	}
	m.text = next
	m.version++
	fns := m.snapshotListeners()
	m.mu.Unlock()

	notifyAll(fns)
	return true
}

func (m *Model) pushUndoStop() {
	m.mu.Lock()
	m.grouping = false
	m.mu.Unlock()
}

// CanUndo reports whether an undo group is available.
func (m *Model) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undo) > 0
}

func (m *Model) undoLast() bool {
	m.mu.Lock()
	if m.disposed || len(m.undo) == 0 {
		m.mu.Unlock()
		return false
	}
	i := len(m.undo) - 1
	m.text = m.undo[i]
	m.undo = m.undo[:i]
	m.grouping = false
	m.version++
	fns := m.snapshotListeners()
	m.mu.Unlock()

	notifyAll(fns)
	return true
}

func (m *Model) setLanguage(language string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.language = language
}

func (m *Model) onChange(fn func()) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

// Dispose releases the model and removes it from the registry. Disposing
// twice is a no-op.
func (m *Model) Dispose() {
	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return
	}
	m.disposed = true
	m.listeners = map[uint64]func(){}
	m.undo = nil
	m.mu.Unlock()

	if m.registry != nil {
		m.registry.remove(m)
	}
}

func (m *Model) IsDisposed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.disposed
}

func (m *Model) snapshotListeners() []func() {
	fns := make([]func(), 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	return fns
}

func notifyAll(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}
