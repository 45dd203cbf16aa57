package textengine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/wippyai/editorbind/engine"
)

// Engine is an in-memory implementation of engine.Engine.
type Engine struct {
	registry *Registry
	theme    string
	mu       sync.Mutex
}

var _ engine.Engine = (*Engine)(nil)

// New creates a ready engine using the "vs" theme.
func New() *Engine {
	return &Engine{
		registry: NewRegistry(),
		theme:    engine.ThemeVS,
	}
}

func (e *Engine) Models() engine.ModelRegistry { return e.registry }

// Registry returns the concrete model registry.
func (e *Engine) Registry() *Registry { return e.registry }

func (e *Engine) CreateEditor(opts engine.EditorOptions) engine.Editor {
	return newEditor(e, opts)
}

func (e *Engine) CreateDiffEditor(opts engine.EditorOptions) engine.DiffEditor {
	return newDiffEditor(e, opts)
}

// SetTheme sets the global theme. Themes are engine-wide, as in most
// embeddable editors.
func (e *Engine) SetTheme(theme string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.theme = theme
}

func (e *Engine) Theme() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.theme
}

func (e *Engine) SetModelLanguage(m engine.Model, language string) {
	if model, ok := m.(*Model); ok {
		model.setLanguage(language)
	}
}

// Loader simulates an expensive, cancelable engine initialization. It keeps
// the instance once created, like script loaders that cache the engine
// globally.
type Loader struct {
	instance *Engine
	// Delay is how long initialization takes.
	Delay time.Duration
	inits atomic.Int32
	mu    sync.Mutex
}

// Init creates the engine after Delay, or fails with ctx.Err() when ctx is
// canceled first.
func (l *Loader) Init(ctx context.Context) (engine.Engine, error) {
	l.inits.Add(1)

	if l.Delay > 0 {
		timer := time.NewTimer(l.Delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.instance == nil {
		l.instance = New()
	}
	return l.instance, nil
}

// Instance returns the engine if Init has completed.
func (l *Loader) Instance() (engine.Engine, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.instance == nil {
		return nil, false
	}
	return l.instance, true
}

// Inits returns how many times Init was called.
func (l *Loader) Inits() int {
	return int(l.inits.Load())
}
