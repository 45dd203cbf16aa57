package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/wippyai/editorbind/engine"
	"github.com/wippyai/editorbind/textengine"
)

// runSummary mounts every pane, performs one edit and reports what each pane
// sees. It is used when stdout is not a terminal.
func runSummary(ctx context.Context, w io.Writer, h *host) error {
	if err := h.mount(ctx); err != nil {
		return fmt.Errorf("mount: %w", err)
	}

	eng, ok := h.loader.Instance()
	if !ok {
		return fmt.Errorf("engine not loaded")
	}

	fmt.Fprintf(w, "Engine loaded (theme %s, %d init)\n", eng.Theme(), h.loader.Inits())
	fmt.Fprintf(w, "\nPanes:\n")
	for _, p := range h.panes {
		printPane(w, h, p)
	}

	primary := h.primary()
	edited := primary.editor.Value() + "// edited\n"
	if inner := primary.editor.Editor(); inner != nil {
		end := inner.Model().FullRange().End
		inner.ExecuteEdits("summary", []engine.Edit{{
			Range: engine.Range{Start: end, End: end},
			Text:  "// edited\n",
		}})
	}
	h.diff.SetModified(primary.editor.Value())

	fmt.Fprintf(w, "\nAfter editing %s:\n", primary.cfg.Name)
	for _, p := range h.panes {
		marker := " "
		if p.editor.Value() == edited {
			marker = "*"
		}
		fmt.Fprintf(w, "  %s %-10s %d lines\n", marker, p.cfg.Name, lineCount(p.editor.Value()))
	}
	fmt.Fprintf(w, "  diff: %d -> %d lines (previous %d)\n",
		lineCount(h.diff.Original()),
		lineCount(h.diff.Modified()),
		lineCount(h.diff.Previous().Get()))

	h.unmount()

	if te, ok := eng.(*textengine.Engine); ok {
		created, disposed := te.Registry().Stats()
		fmt.Fprintf(w, "\nModels: %d created, %d disposed, %d kept alive\n",
			created, disposed, te.Registry().Len())
	}
	return nil
}

func printPane(w io.Writer, h *host, p *pane) {
	path := p.cfg.Path
	if path == "" {
		path = "(anonymous)"
	}
	var refs int
	if inner := p.editor.Editor(); inner != nil {
		if m := inner.Model(); m != nil {
			refs = h.rt.Usage().Count(m.Identity())
		}
	}
	fmt.Fprintf(w, "  %-10s %-32s %-10s refs=%d keepAlive=%t\n",
		p.cfg.Name, path, p.cfg.Language, refs, p.cfg.KeepAlive)
}

func lineCount(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(strings.TrimSuffix(s, "\n"), "\n") + 1
}
