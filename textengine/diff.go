package textengine

import (
	"sync"

	"github.com/wippyai/editorbind/engine"
)

// DiffEditor pairs a read-only original editor with an editable modified one.
type DiffEditor struct {
	original  *Editor
	modified  *Editor
	listeners map[uint64]func()
	detach    []func()
	nextID    uint64
	mu        sync.Mutex
}

var _ engine.DiffEditor = (*DiffEditor)(nil)

func newDiffEditor(e *Engine, opts engine.EditorOptions) *DiffEditor {
	d := &DiffEditor{
		original:  newEditor(e, engine.EditorOptions{Theme: opts.Theme, ReadOnly: true}),
		modified:  newEditor(e, engine.EditorOptions{ReadOnly: opts.ReadOnly}),
		listeners: make(map[uint64]func()),
	}
	d.detach = []func(){
		d.original.OnDidChangeContent(d.updated),
		d.modified.OnDidChangeContent(d.updated),
	}
	return d
}

func (d *DiffEditor) SetModels(original, modified engine.Model) {
	d.original.SetModel(original)
	d.modified.SetModel(modified)
	d.updated()
}

func (d *DiffEditor) Original() engine.Model       { return d.original.Model() }
func (d *DiffEditor) Modified() engine.Model       { return d.modified.Model() }
func (d *DiffEditor) ModifiedEditor() engine.Editor { return d.modified }

func (d *DiffEditor) OnDidUpdateDiff(fn func()) func() {
	d.mu.Lock()
	id := d.nextID
	d.nextID++
	d.listeners[id] = fn
	d.mu.Unlock()

	return func() {
		d.mu.Lock()
		delete(d.listeners, id)
		d.mu.Unlock()
	}
}

func (d *DiffEditor) Dispose() {
	d.mu.Lock()
	detach := d.detach
	d.detach = nil
	d.listeners = map[uint64]func(){}
	d.mu.Unlock()

	for _, fn := range detach {
		fn()
	}
	d.original.Dispose()
	d.modified.Dispose()
}

func (d *DiffEditor) updated() {
	d.mu.Lock()
	fns := make([]func(), 0, len(d.listeners))
	for _, fn := range d.listeners {
		fns = append(fns, fn)
	}
	d.mu.Unlock()

	notifyAll(fns)
}
