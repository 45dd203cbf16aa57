package main

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wippyai/editorbind/config"
	"github.com/wippyai/editorbind/runtime"
	"github.com/wippyai/editorbind/textengine"
)

const demoMain = `package main

import "fmt"

func main() {
	fmt.Println("hello")
}
`

// demoModels opens the same file in two panes plus a pinned notes buffer.
// Panes mount concurrently, so either may create the shared model.
func demoModels() []config.Model {
	return []config.Model{
		{Name: "main", Path: "inmemory://workspace/main.go", Language: "go", Value: demoMain},
		{Name: "mirror", Path: "inmemory://workspace/main.go", Language: "go", Value: demoMain},
		{Name: "notes", Path: "inmemory://workspace/NOTES.md", Language: "markdown", Value: "# notes\n", KeepAlive: true},
	}
}

type pane struct {
	cfg    config.Model
	editor *runtime.Editor
}

type host struct {
	cfg    *config.Config
	logger *zap.Logger
	loader *textengine.Loader
	rt     *runtime.Runtime
	panes  []*pane
	diff   *runtime.DiffEditor
}

// changeFunc receives edits made inside a pane.
type changeFunc func(p *pane, ev runtime.ChangeEvent)

func newHost(cfg *config.Config, logger *zap.Logger, onChange changeFunc) (*host, error) {
	ld := &textengine.Loader{Delay: cfg.LoadDelay}
	rt := runtime.New(ld.Init,
		runtime.WithLogger(logger),
		runtime.WithProbe(ld.Instance),
	)

	reg := runtime.NewRegistry()
	if err := reg.Provide(runtime.DefaultToken, rt.Context()); err != nil {
		return nil, err
	}
	ctx, err := reg.Lookup(runtime.DefaultToken)
	if err != nil {
		return nil, err
	}

	models := cfg.Models
	if len(models) == 0 {
		models = demoModels()
	}

	h := &host{
		cfg:    cfg,
		logger: logger,
		loader: ld,
		rt:     rt,
	}
	for _, m := range models {
		p := &pane{cfg: m}
		p.editor = runtime.NewEditor(ctx, runtime.EditorProps{
			Value:     m.Value,
			Language:  m.Language,
			Theme:     cfg.Theme,
			Path:      m.Path,
			KeepAlive: m.KeepAlive,
			OnChange: func(ev runtime.ChangeEvent) {
				if onChange != nil {
					onChange(p, ev)
				}
			},
		})
		h.panes = append(h.panes, p)
	}

	first := models[0]
	h.diff = runtime.NewDiffEditor(ctx, runtime.DiffEditorProps{
		Original: first.Value,
		Modified: first.Value,
		Language: first.Language,
		Theme:    cfg.Theme,
	})
	return h, nil
}

// mount attaches every pane concurrently and waits for the engine.
func (h *host) mount(ctx context.Context) error {
	var g errgroup.Group
	for _, p := range h.panes {
		g.Go(p.editor.Mount)
	}
	g.Go(h.diff.Mount)
	if err := g.Wait(); err != nil {
		return err
	}

	if _, err := h.rt.Wait(ctx); err != nil {
		return err
	}
	h.logger.Info("engine ready",
		zap.Int("panes", len(h.panes)),
		zap.Int("inits", h.loader.Inits()))
	return nil
}

func (h *host) unmount() {
	for _, p := range h.panes {
		p.editor.Unmount()
	}
	h.diff.Unmount()
}

// primary is the pane the diff view follows.
func (h *host) primary() *pane {
	return h.panes[0]
}
