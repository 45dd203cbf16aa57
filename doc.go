// Package editorbind binds a heavy, lazily loaded code editor engine to
// component-style hosts.
//
// The engine is expensive to start and its text models outlive the editors
// that display them. This module provides the pieces a host needs to share
// one engine among many editors without leaking models or starting the
// engine twice.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	editorbind/          Root package (documentation only)
//	├── loader/          Single-flight engine acquisition with cancellation
//	├── resource/        Reference-counted model disposal with keep-alive pins
//	├── store/           Observable values: Writable, MultiMode, Previous
//	├── engine/          Contract a concrete editor engine implements
//	├── textengine/      In-memory engine implementing the contract
//	├── runtime/         Editor and DiffEditor components wired to the above
//	├── config/          HCL host configuration
//	├── errors/          Structured error types
//	└── cmd/editorhost/  Terminal host demonstrating shared and pinned models
//
// # Quick Start
//
//	ld := &textengine.Loader{Delay: 200 * time.Millisecond}
//	rt := runtime.New(ld.Init)
//
//	ed := runtime.NewEditor(rt.Context(), runtime.EditorProps{
//	    Value:    "package main",
//	    Language: "go",
//	    Path:     "inmemory://workspace/main.go",
//	})
//	if err := ed.Mount(); err != nil {
//	    return err
//	}
//	defer ed.Unmount()
//
// # Engine Loading
//
// loader.Adapter starts at most one load no matter how many subscribers ask
// for the engine. Subscribers arriving after the load completed are served
// immediately. When every waiting subscriber leaves, the load is canceled and
// the cancellation is not reported as a failure.
//
// # Model Lifetime
//
// Each component owns a resource.Tracker. Trackers count into a shared
// resource.Usage; a model is disposed by the last tracker releasing it unless
// a live tracker pinned it.
//
// # Stores
//
// store.Writable suppresses notifications for structurally equal values.
// store.MultiMode tags each write with an intent and runs the handler for
// that intent after subscribers are notified, which keeps host updates and
// editor updates from echoing into each other. store.Previous publishes the
// value held before the latest change.
//
// # Thread Safety
//
// All exported types are safe for concurrent use. Callbacks run with no
// internal lock held, either on the goroutine that caused the change or on
// the loading goroutine.
//
// # Logging
//
// Packages log through zap. Each has Logger and SetLogger; the default is a
// no-op logger.
package editorbind
