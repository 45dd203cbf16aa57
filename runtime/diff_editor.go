package runtime

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/editorbind/engine"
	"github.com/wippyai/editorbind/errors"
	"github.com/wippyai/editorbind/resource"
	"github.com/wippyai/editorbind/store"
)

// DiffChangeEvent is reported when the user edits the modified side.
// Previous is the modified text before this edit.
type DiffChangeEvent struct {
	Original string
	Modified string
	Previous string
}

// DiffEditorProps are the initial properties of a DiffEditor.
type DiffEditorProps struct {
	Original     string
	Modified     string
	Language     string
	OriginalPath string
	ModifiedPath string
	Theme        string
	ReadOnly     bool
	KeepAlive    bool

	OnReady  func(eng engine.Engine, diff engine.DiffEditor)
	OnChange func(DiffChangeEvent)
}

// DiffEditor compares a read-only original text with an editable modified
// text.
type DiffEditor struct {
	ctx      *Context
	tracker  *resource.Tracker
	logger   *zap.Logger
	onReady  func(engine.Engine, engine.DiffEditor)
	onChange func(DiffChangeEvent)
	props    DiffEditorProps

	original *store.Writable[string]
	modified *store.MultiMode[string, Intent]
	history  *store.Previous[string]
	language *store.Writable[string]
	theme    *store.Writable[string]

	eng      engine.Engine
	diff     engine.DiffEditor
	cleanups []func()
	mu       sync.Mutex
	mounted  bool
}

// NewDiffEditor creates an unmounted diff editor reaching its engine through
// ctx.
func NewDiffEditor(ctx *Context, props DiffEditorProps) *DiffEditor {
	d := &DiffEditor{
		ctx:      ctx,
		logger:   Logger(),
		onReady:  props.OnReady,
		onChange: props.OnChange,
		props:    props,
		original: store.NewWritable(props.Original),
		history:  store.NewPrevious(props.Modified),
		language: store.NewWritable(props.Language),
		theme:    store.NewWritable(props.Theme),
	}
	if ctx != nil && ctx.Runtime != nil {
		d.logger = ctx.Runtime.logger
		d.tracker = ctx.Runtime.NewTracker()
	} else {
		d.tracker = resource.NewTracker(nil)
	}
	d.modified = store.NewMultiMode(props.Modified, map[Intent]func(string){
		IntentProp:   d.applyModified,
		IntentEngine: d.emitChange,
	})
	d.modified.Subscribe(func(v string) { d.history.Set(v) })
	return d
}

// Mount attaches the diff editor; see Editor.Mount.
func (d *DiffEditor) Mount() error {
	if d.ctx == nil || d.ctx.Engine == nil {
		return errors.NotInitialized(errors.PhaseMount, "diff editor context")
	}

	d.mu.Lock()
	if d.mounted {
		d.mu.Unlock()
		return errors.AlreadyMounted("diff editor")
	}
	d.mounted = true
	d.mu.Unlock()

	d.addCleanup(d.ctx.Engine.Subscribe(d.engineReady))
	return nil
}

// Unmount disposes the diff editor and releases both models.
func (d *DiffEditor) Unmount() {
	d.mu.Lock()
	if !d.mounted {
		d.mu.Unlock()
		return
	}
	d.mounted = false
	cleanups := d.cleanups
	diff := d.diff
	d.cleanups = nil
	d.diff = nil
	d.eng = nil
	d.mu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	if diff != nil {
		diff.Dispose()
	}
	d.tracker.ReleaseAll()
}

func (d *DiffEditor) Mounted() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mounted
}

// Diff returns the underlying engine diff editor, or nil before it exists.
func (d *DiffEditor) Diff() engine.DiffEditor {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.diff
}

func (d *DiffEditor) Original() string { return d.original.Get() }
func (d *DiffEditor) Modified() string { return d.modified.Get() }

// Previous exposes the modified text as it was one change ago.
func (d *DiffEditor) Previous() store.Readable[string] {
	return d.history
}

func (d *DiffEditor) SetOriginal(v string)        { d.original.Set(v) }
func (d *DiffEditor) SetModified(v string)        { d.modified.Set(IntentProp, v) }
func (d *DiffEditor) SetLanguage(language string) { d.language.Set(language) }
func (d *DiffEditor) SetTheme(theme string)       { d.theme.Set(theme) }

func (d *DiffEditor) engineReady(eng engine.Engine) {
	if eng == nil {
		return
	}

	d.mu.Lock()
	if !d.mounted || d.diff != nil {
		d.mu.Unlock()
		return
	}
	language := d.language.Get()
	models := eng.Models()
	original := acquireModel(d.tracker, models, d.original.Get(), language, d.props.OriginalPath, d.props.KeepAlive)
	modified := acquireModel(d.tracker, models, d.modified.Get(), language, d.props.ModifiedPath, d.props.KeepAlive)
	diff := eng.CreateDiffEditor(engine.EditorOptions{
		Theme:    d.theme.Get(),
		ReadOnly: d.props.ReadOnly,
	})
	diff.SetModels(original, modified)
	d.eng = eng
	d.diff = diff
	d.mu.Unlock()

	d.logger.Debug("diff editor created",
		zap.String("original", original.ID()),
		zap.String("modified", modified.ID()))

	d.original.Set(original.Value())
	d.modified.Set(IntentModel, modified.Value())

	d.addCleanup(diff.ModifiedEditor().OnDidChangeContent(d.contentChanged))
	d.addCleanup(d.original.Subscribe(d.applyOriginal))
	d.addCleanup(d.language.Subscribe(d.applyLanguage))
	d.addCleanup(d.theme.Subscribe(d.applyTheme))

	if d.onReady != nil {
		d.onReady(eng, diff)
	}
}

func (d *DiffEditor) addCleanup(fn func()) {
	d.mu.Lock()
	if !d.mounted {
		d.mu.Unlock()
		fn()
		return
	}
	d.cleanups = append(d.cleanups, fn)
	d.mu.Unlock()
}

func (d *DiffEditor) current() (engine.Engine, engine.DiffEditor) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.eng, d.diff
}

func (d *DiffEditor) contentChanged() {
	_, diff := d.current()
	if diff == nil {
		return
	}
	d.modified.Set(IntentEngine, diff.ModifiedEditor().Value())
}

func (d *DiffEditor) applyModified(v string) {
	_, diff := d.current()
	if diff == nil {
		return
	}
	ed := diff.ModifiedEditor()
	if ed.Value() != v {
		SetEditorValue(ed, v)
	}
}

func (d *DiffEditor) applyOriginal(v string) {
	_, diff := d.current()
	if diff == nil {
		return
	}
	if m := diff.Original(); m != nil && m.Value() != v {
		m.SetValue(v)
	}
}

func (d *DiffEditor) applyLanguage(language string) {
	eng, diff := d.current()
	if diff == nil {
		return
	}
	for _, m := range []engine.Model{diff.Original(), diff.Modified()} {
		if m != nil && m.Language() != language {
			eng.SetModelLanguage(m, language)
		}
	}
}

func (d *DiffEditor) applyTheme(theme string) {
	eng, _ := d.current()
	if eng == nil || theme == "" || eng.Theme() == theme {
		return
	}
	eng.SetTheme(theme)
}

func (d *DiffEditor) emitChange(v string) {
	if d.onChange == nil {
		return
	}
	d.onChange(DiffChangeEvent{
		Original: d.original.Get(),
		Modified: v,
		Previous: d.history.Get(),
	})
}
