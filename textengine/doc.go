// Package textengine is a small in-memory text-editing engine implementing
// the engine contract.
//
// It is the stand-in for a heavy, externally loaded editor: models live in a
// URI registry, editors and diff editors view them, edits are grouped into
// undo stops, and a Loader simulates slow, cancelable initialization.
//
//	l := &textengine.Loader{Delay: 200 * time.Millisecond}
//	eng, err := l.Init(ctx)
//
//	m := eng.Models().CreateModel("package main", "go", "inmemory://main.go")
//	ed := eng.CreateEditor(engine.EditorOptions{Model: m})
//	ed.ExecuteEdits("", []engine.Edit{{Range: m.FullRange(), Text: "package foo"}})
//	ed.PushUndoStop()
//	ed.Undo() // back to "package main"
package textengine
