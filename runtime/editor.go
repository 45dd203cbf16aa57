package runtime

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/editorbind/engine"
	"github.com/wippyai/editorbind/errors"
	"github.com/wippyai/editorbind/resource"
	"github.com/wippyai/editorbind/store"
)

// Intent tags where a value change came from.
type Intent int

const (
	// IntentProp is a change made by the host through a setter.
	IntentProp Intent = iota
	// IntentEngine is a change made inside the editor, such as typing.
	IntentEngine
	// IntentModel resynchronizes after the editor switched models.
	IntentModel
)

func (i Intent) String() string {
	switch i {
	case IntentProp:
		return "prop"
	case IntentEngine:
		return "engine"
	case IntentModel:
		return "model"
	default:
		return "unknown"
	}
}

// ChangeEvent is reported when the user edits the text.
type ChangeEvent struct {
	Value string
}

// EditorProps are the initial properties of an Editor.
type EditorProps struct {
	Value     string
	Language  string
	Theme     string
	Path      string
	ReadOnly  bool
	KeepAlive bool

	OnReady  func(eng engine.Engine, ed engine.Editor)
	OnChange func(ChangeEvent)
}

// Editor is a single code editor bound to a model.
//
// Props can be changed at any time; before the engine loads they are only
// recorded. Value changes from the host are applied to the editor, and
// changes from the editor are reported through OnChange, never both.
type Editor struct {
	ctx      *Context
	tracker  *resource.Tracker
	logger   *zap.Logger
	onReady  func(engine.Engine, engine.Editor)
	onChange func(ChangeEvent)

	value     *store.MultiMode[string, Intent]
	language  *store.Writable[string]
	theme     *store.Writable[string]
	readOnly  *store.Writable[bool]
	path      *store.Writable[string]
	keepAlive bool

	eng       engine.Engine
	editor    engine.Editor
	modelPath string
	cleanups  []func()
	mu        sync.Mutex
	mounted   bool
}

// NewEditor creates an unmounted editor reaching its engine through ctx.
func NewEditor(ctx *Context, props EditorProps) *Editor {
	e := &Editor{
		ctx:       ctx,
		logger:    Logger(),
		onReady:   props.OnReady,
		onChange:  props.OnChange,
		language:  store.NewWritable(props.Language),
		theme:     store.NewWritable(props.Theme),
		readOnly:  store.NewWritable(props.ReadOnly),
		path:      store.NewWritable(props.Path),
		keepAlive: props.KeepAlive,
	}
	if ctx != nil && ctx.Runtime != nil {
		e.logger = ctx.Runtime.logger
		e.tracker = ctx.Runtime.NewTracker()
	} else {
		e.tracker = resource.NewTracker(nil)
	}
	e.value = store.NewMultiMode(props.Value, map[Intent]func(string){
		IntentProp:   e.applyValue,
		IntentEngine: e.emitChange,
	})
	return e
}

// Mount attaches the editor. The editor itself is created once the engine
// is available, which may be immediately.
func (e *Editor) Mount() error {
	if e.ctx == nil || e.ctx.Engine == nil {
		return errors.NotInitialized(errors.PhaseMount, "editor context")
	}

	e.mu.Lock()
	if e.mounted {
		e.mu.Unlock()
		return errors.AlreadyMounted("editor")
	}
	e.mounted = true
	e.mu.Unlock()

	e.addCleanup(e.ctx.Engine.Subscribe(e.engineReady))
	return nil
}

// Unmount disposes the editor and releases its models. Models still used by
// other editors, or pinned with KeepAlive by a live editor, survive.
func (e *Editor) Unmount() {
	e.mu.Lock()
	if !e.mounted {
		e.mu.Unlock()
		return
	}
	e.mounted = false
	cleanups := e.cleanups
	ed := e.editor
	e.cleanups = nil
	e.editor = nil
	e.eng = nil
	e.modelPath = ""
	e.mu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	if ed != nil {
		ed.Dispose()
	}
	e.tracker.ReleaseAll()
}

// Mounted reports whether Mount has been called without a matching Unmount.
func (e *Editor) Mounted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mounted
}

// Editor returns the underlying engine editor, or nil before it exists.
func (e *Editor) Editor() engine.Editor {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.editor
}

// Value returns the current text.
func (e *Editor) Value() string {
	return e.value.Get()
}

// ValueStore exposes the text as a store.
func (e *Editor) ValueStore() store.Readable[string] {
	return e.value
}

// SetValue replaces the text. It does not trigger OnChange.
func (e *Editor) SetValue(v string) {
	e.value.Set(IntentProp, v)
}

func (e *Editor) SetLanguage(language string) { e.language.Set(language) }
func (e *Editor) SetTheme(theme string)       { e.theme.Set(theme) }
func (e *Editor) SetReadOnly(readOnly bool)   { e.readOnly.Set(readOnly) }

// SetPath switches the editor to the model at path, creating it from the
// current value and language when needed.
func (e *Editor) SetPath(path string) { e.path.Set(path) }

func (e *Editor) engineReady(eng engine.Engine) {
	if eng == nil {
		return
	}

	e.mu.Lock()
	if !e.mounted || e.editor != nil {
		e.mu.Unlock()
		return
	}
	path := e.path.Get()
	model := acquireModel(e.tracker, eng.Models(), e.value.Get(), e.language.Get(), path, e.keepAlive)
	ed := eng.CreateEditor(engine.EditorOptions{
		Model:    model,
		Theme:    e.theme.Get(),
		ReadOnly: e.readOnly.Get(),
	})
	e.eng = eng
	e.editor = ed
	e.modelPath = path
	e.mu.Unlock()

	e.logger.Debug("editor created", zap.String("model", model.ID()), zap.String("path", path))

	// an existing model at path keeps its text
	e.value.Set(IntentModel, ed.Value())

	e.addCleanup(ed.OnDidChangeContent(e.contentChanged))
	e.addCleanup(e.language.Subscribe(e.applyLanguage))
	e.addCleanup(e.theme.Subscribe(e.applyTheme))
	e.addCleanup(e.readOnly.Subscribe(ed.SetReadOnly))
	e.addCleanup(e.path.Subscribe(e.applyPath))

	if e.onReady != nil {
		e.onReady(eng, ed)
	}
}

// addCleanup records fn to run on Unmount, or runs it now if the editor was
// unmounted in the meantime.
func (e *Editor) addCleanup(fn func()) {
	e.mu.Lock()
	if !e.mounted {
		e.mu.Unlock()
		fn()
		return
	}
	e.cleanups = append(e.cleanups, fn)
	e.mu.Unlock()
}

func (e *Editor) current() (engine.Engine, engine.Editor) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.eng, e.editor
}

func (e *Editor) contentChanged() {
	_, ed := e.current()
	if ed == nil {
		return
	}
	e.value.Set(IntentEngine, ed.Value())
}

func (e *Editor) applyValue(v string) {
	_, ed := e.current()
	if ed == nil || ed.Value() == v {
		return
	}
	SetEditorValue(ed, v)
}

func (e *Editor) emitChange(v string) {
	if e.onChange != nil {
		e.onChange(ChangeEvent{Value: v})
	}
}

func (e *Editor) applyLanguage(language string) {
	eng, ed := e.current()
	if ed == nil {
		return
	}
	if m := ed.Model(); m != nil && m.Language() != language {
		eng.SetModelLanguage(m, language)
	}
}

func (e *Editor) applyTheme(theme string) {
	eng, _ := e.current()
	if eng == nil || theme == "" || eng.Theme() == theme {
		return
	}
	eng.SetTheme(theme)
}

func (e *Editor) applyPath(path string) {
	e.mu.Lock()
	eng, ed := e.eng, e.editor
	if ed == nil || path == e.modelPath {
		e.mu.Unlock()
		return
	}
	model := acquireModel(e.tracker, eng.Models(), e.value.Get(), e.language.Get(), path, e.keepAlive)
	e.modelPath = path
	e.mu.Unlock()

	ed.SetModel(model)
	e.value.Set(IntentModel, ed.Value())
	e.logger.Debug("editor switched model", zap.String("model", model.ID()), zap.String("path", path))
}
