package textengine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/editorbind/engine"
)

func TestFullRange(t *testing.T) {
	tests := []struct {
		text string
		end  engine.Position
	}{
		{"", engine.Position{Line: 1, Column: 1}},
		{"abc", engine.Position{Line: 1, Column: 4}},
		{"a\nbcd", engine.Position{Line: 2, Column: 4}},
		{"a\n", engine.Position{Line: 2, Column: 1}},
		{"héllo", engine.Position{Line: 1, Column: 6}},
	}
	for _, tt := range tests {
		r := fullRange(tt.text)
		assert.Equal(t, engine.Position{Line: 1, Column: 1}, r.Start, tt.text)
		assert.Equal(t, tt.end, r.End, tt.text)
	}
}

func TestApplyEdits(t *testing.T) {
	pos := func(l, c int) engine.Position { return engine.Position{Line: l, Column: c} }

	tests := []struct {
		name  string
		text  string
		edits []engine.Edit
		want  string
		ok    bool
	}{
		{
			name:  "full replace",
			text:  "one\ntwo",
			edits: []engine.Edit{{Range: fullRange("one\ntwo"), Text: "three"}},
			want:  "three",
			ok:    true,
		},
		{
			name:  "insert",
			text:  "ac",
			edits: []engine.Edit{{Range: engine.Range{Start: pos(1, 2), End: pos(1, 2)}, Text: "b"}},
			want:  "abc",
			ok:    true,
		},
		{
			name: "two edits out of order",
			text: "abc\ndef",
			edits: []engine.Edit{
				{Range: engine.Range{Start: pos(2, 1), End: pos(2, 2)}, Text: "D"},
				{Range: engine.Range{Start: pos(1, 1), End: pos(1, 2)}, Text: "A"},
			},
			want: "Abc\nDef",
			ok:   true,
		},
		{
			name:  "reversed range",
			text:  "abc",
			edits: []engine.Edit{{Range: engine.Range{Start: pos(1, 3), End: pos(1, 1)}, Text: "x"}},
			want:  "xc",
			ok:    true,
		},
		{
			name: "overlap rejected",
			text: "abcdef",
			edits: []engine.Edit{
				{Range: engine.Range{Start: pos(1, 1), End: pos(1, 4)}, Text: "x"},
				{Range: engine.Range{Start: pos(1, 2), End: pos(1, 5)}, Text: "y"},
			},
			want: "abcdef",
			ok:   false,
		},
		{
			name:  "clamped past end",
			text:  "ab",
			edits: []engine.Edit{{Range: engine.Range{Start: pos(1, 3), End: pos(9, 9)}, Text: "c"}},
			want:  "abc",
			ok:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := applyEdits(tt.text, tt.edits)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry_GetOrCreate(t *testing.T) {
	r := NewRegistry()

	_, ok := r.GetModel("inmemory://a")
	assert.False(t, ok)

	m := r.CreateModel("x", "go", "inmemory://a")
	got, ok := r.GetModel("inmemory://a")
	require.True(t, ok)
	assert.Same(t, m, got)

	anon := r.CreateModel("y", "", "")
	assert.NotEqual(t, m.ID(), anon.ID())
	assert.Equal(t, 1, r.Len())

	m.Dispose()
	m.Dispose()
	_, ok = r.GetModel("inmemory://a")
	assert.False(t, ok)
	assert.True(t, m.IsDisposed())

	created, disposed := r.Stats()
	assert.Equal(t, int64(2), created)
	assert.Equal(t, int64(1), disposed)
}

func TestEditor_EditsAndUndo(t *testing.T) {
	e := New()
	m := e.Models().CreateModel("hello", "plaintext", "")
	ed := e.CreateEditor(engine.EditorOptions{Model: m})

	changes := 0
	stop := ed.OnDidChangeContent(func() { changes++ })
	defer stop()

	require.True(t, ed.ExecuteEdits("", []engine.Edit{{Range: m.FullRange(), Text: "world"}}))
	require.True(t, ed.ExecuteEdits("", []engine.Edit{{Range: m.FullRange(), Text: "world!"}}))
	ed.PushUndoStop()
	assert.Equal(t, "world!", ed.Value())
	assert.Equal(t, 2, changes)

	// both edits belong to one undo group
	require.True(t, ed.Undo())
	assert.Equal(t, "hello", ed.Value())
	assert.False(t, ed.Undo())
	assert.Equal(t, 3, changes)
}

func TestEditor_SetValueClearsHistory(t *testing.T) {
	e := New()
	m := e.Models().CreateModel("a", "", "")
	ed := e.CreateEditor(engine.EditorOptions{Model: m})

	ed.ExecuteEdits("", []engine.Edit{{Range: m.FullRange(), Text: "b"}})
	ed.PushUndoStop()
	ed.SetValue("c")

	assert.Equal(t, "c", m.Value())
	assert.False(t, ed.Undo())
}

func TestEditor_ReadOnlyRefusesEdits(t *testing.T) {
	e := New()
	m := e.Models().CreateModel("a", "", "")
	ed := e.CreateEditor(engine.EditorOptions{Model: m, ReadOnly: true})

	assert.False(t, ed.ExecuteEdits("", []engine.Edit{{Range: m.FullRange(), Text: "b"}}))
	ed.SetValue("b")
	assert.Equal(t, "b", ed.Value())

	ed.SetReadOnly(false)
	assert.True(t, ed.ExecuteEdits("", []engine.Edit{{Range: m.FullRange(), Text: "c"}}))
}

func TestEditor_SharedModelNotifiesAllViews(t *testing.T) {
	e := New()
	m := e.Models().CreateModel("", "go", "inmemory://shared.go")
	a := e.CreateEditor(engine.EditorOptions{Model: m})
	b := e.CreateEditor(engine.EditorOptions{Model: m})

	seen := 0
	b.OnDidChangeContent(func() { seen++ })

	a.SetValue("package main")
	assert.Equal(t, "package main", b.Value())
	assert.Equal(t, 1, seen)

	b.Dispose()
	a.SetValue("package other")
	assert.Equal(t, 1, seen)
	assert.False(t, m.IsDisposed(), "disposing an editor keeps the model")
}

func TestEditor_SetModel(t *testing.T) {
	e := New()
	m1 := e.Models().CreateModel("one", "", "")
	m2 := e.Models().CreateModel("two", "", "")
	ed := e.CreateEditor(engine.EditorOptions{Model: m1})

	changes := 0
	ed.OnDidChangeContent(func() { changes++ })

	ed.SetModel(m2)
	assert.Equal(t, "two", ed.Value())
	m1.SetValue("ignored")
	assert.Zero(t, changes)
	m2.SetValue("tracked")
	assert.Equal(t, 1, changes)
}

func TestDiffEditor(t *testing.T) {
	e := New()
	orig := e.Models().CreateModel("a", "", "")
	mod := e.Models().CreateModel("b", "", "")
	d := e.CreateDiffEditor(engine.EditorOptions{})

	updates := 0
	d.OnDidUpdateDiff(func() { updates++ })

	d.SetModels(orig, mod)
	assert.Same(t, orig, d.Original())
	assert.Same(t, mod, d.Modified())
	assert.Equal(t, 1, updates)

	d.ModifiedEditor().SetValue("c")
	assert.Equal(t, 2, updates)

	d.Dispose()
	mod.SetValue("d")
	assert.Equal(t, 2, updates)
}

func TestEngine_ThemeAndLanguage(t *testing.T) {
	e := New()
	assert.Equal(t, engine.ThemeVS, e.Theme())

	m := e.Models().CreateModel("", "plaintext", "")
	e.CreateEditor(engine.EditorOptions{Model: m, Theme: engine.ThemeVSDark})
	assert.Equal(t, engine.ThemeVSDark, e.Theme())

	e.SetModelLanguage(m, "go")
	assert.Equal(t, "go", m.Language())
}

func TestLoader(t *testing.T) {
	l := &Loader{Delay: 5 * time.Millisecond}

	_, ok := l.Instance()
	assert.False(t, ok)

	e1, err := l.Init(context.Background())
	require.NoError(t, err)
	e2, err := l.Init(context.Background())
	require.NoError(t, err)
	assert.Same(t, e1, e2)

	got, ok := l.Instance()
	require.True(t, ok)
	assert.Same(t, e1, got)
	assert.Equal(t, 2, l.Inits())
}

func TestLoader_Canceled(t *testing.T) {
	l := &Loader{Delay: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.Init(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, ok := l.Instance()
	assert.False(t, ok)
}
