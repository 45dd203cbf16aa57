package textengine

import (
	"sync"

	"github.com/wippyai/editorbind/engine"
)

// Editor is a view onto one Model.
type Editor struct {
	engine    *Engine
	model     *Model
	detach    func()
	listeners map[uint64]func()
	nextID    uint64
	mu        sync.Mutex
	readOnly  bool
	disposed  bool
}

var _ engine.Editor = (*Editor)(nil)

func newEditor(e *Engine, opts engine.EditorOptions) *Editor {
	ed := &Editor{
		engine:    e,
		listeners: make(map[uint64]func()),
		readOnly:  opts.ReadOnly,
	}
	if opts.Theme != "" {
		e.SetTheme(opts.Theme)
	}
	ed.SetModel(opts.Model)
	return ed
}

func (ed *Editor) Model() engine.Model {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	if ed.model == nil {
		return nil
	}
	return ed.model
}

// SetModel switches the displayed model. Models from other engines are
// ignored.
func (ed *Editor) SetModel(m engine.Model) {
	next, _ := m.(*Model)

	ed.mu.Lock()
	if ed.disposed || ed.model == next {
		ed.mu.Unlock()
		return
	}
	if ed.detach != nil {
		ed.detach()
		ed.detach = nil
	}
	ed.model = next
	if next != nil {
		ed.detach = next.onChange(ed.contentChanged)
	}
	ed.mu.Unlock()
}

func (ed *Editor) Value() string {
	ed.mu.Lock()
	m := ed.model
	ed.mu.Unlock()
	if m == nil {
		return ""
	}
	return m.Value()
}

func (ed *Editor) SetValue(value string) {
	if m := ed.current(); m != nil {
		m.SetValue(value)
	}
}

func (ed *Editor) ReadOnly() bool {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.readOnly
}

func (ed *Editor) SetReadOnly(readOnly bool) {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	ed.readOnly = readOnly
}

// ExecuteEdits applies edits to the model. Read-only editors refuse edits.
func (ed *Editor) ExecuteEdits(source string, edits []engine.Edit) bool {
	ed.mu.Lock()
	m, ro := ed.model, ed.readOnly
	ed.mu.Unlock()
	if m == nil || ro {
		return false
	}
	return m.applyEdits(edits)
}

func (ed *Editor) PushUndoStop() {
	if m := ed.current(); m != nil {
		m.pushUndoStop()
	}
}

func (ed *Editor) Undo() bool {
	if m := ed.current(); m != nil {
		return m.undoLast()
	}
	return false
}

func (ed *Editor) OnDidChangeContent(fn func()) func() {
	ed.mu.Lock()
	id := ed.nextID
	ed.nextID++
	ed.listeners[id] = fn
	ed.mu.Unlock()

	return func() {
		ed.mu.Lock()
		delete(ed.listeners, id)
		ed.mu.Unlock()
	}
}

// Dispose detaches the editor from its model. The model stays alive.
func (ed *Editor) Dispose() {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	if ed.disposed {
		return
	}
	ed.disposed = true
	if ed.detach != nil {
		ed.detach()
		ed.detach = nil
	}
	ed.model = nil
	ed.listeners = map[uint64]func(){}
}

func (ed *Editor) current() *Model {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.model
}

func (ed *Editor) contentChanged() {
	ed.mu.Lock()
	fns := make([]func(), 0, len(ed.listeners))
	for _, fn := range ed.listeners {
		fns = append(fns, fn)
	}
	ed.mu.Unlock()

	notifyAll(fns)
}
