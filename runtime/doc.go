// Package runtime hosts an editor engine for a tree of components.
//
// # Quick Start
//
//	loader := &textengine.Loader{Delay: 200 * time.Millisecond}
//	rt := runtime.New(loader.Init, runtime.WithLogger(logger))
//
//	reg := runtime.NewRegistry()
//	reg.Provide(runtime.DefaultToken, rt.Context())
//
//	ctx, err := reg.Lookup(runtime.DefaultToken)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ed := runtime.NewEditor(ctx, runtime.EditorProps{
//	    Value:    "package main",
//	    Language: "go",
//	    Path:     "file:///main.go",
//	    OnChange: func(ev runtime.ChangeEvent) { fmt.Println(ev.Value) },
//	})
//	if err := ed.Mount(); err != nil {
//	    log.Fatal(err)
//	}
//	defer ed.Unmount()
//
// # Engine
//
// The engine is loaded on first use and shared by every component of a
// Runtime. Runtime.Engine exposes it as a store that holds nil until the
// load completes. A load nobody waits for any more is canceled.
//
// # Models
//
// Editors that name the same Path share one model. Each component tracks the
// models it uses; a model is disposed when the last component using it
// unmounts, unless a live component mounted with KeepAlive pinned it.
//
// # Values
//
// SetValue pushes text into the editor as one undoable edit and does not
// trigger OnChange. Edits made inside the editor update Value and are reported
// through OnChange. DiffEditor additionally reports the modified text as it
// was before each edit.
package runtime
