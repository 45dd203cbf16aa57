// Package loader acquires one expensive engine instance for many consumers.
//
// An Adapter wraps the external loader (a LoadFunc) with a small state
// machine:
//
//	Unloaded ──Subscribe──▶ Loading ──success──▶ Loaded (terminal)
//	    ▲                      │
//	    └──failure / cancel────┘
//
// # Subscribing
//
//	adapter := loader.New(func(ctx context.Context) (*Engine, error) {
//	    return LoadEngine(ctx)
//	})
//
//	stop := adapter.Subscribe(func(e *Engine) {
//	    // called once, from the loading goroutine or synchronously
//	    // when the engine is already loaded
//	})
//	defer stop() // withdraw interest, e.g. when the component unmounts
//
// Concurrent subscribers share a single load and are served in the order
// they subscribed. Later subscribers receive the
// cached engine before Subscribe returns and never trigger a new load.
//
// # Cancellation
//
// When the last waiting subscriber withdraws before the load resolves, the
// context passed to the LoadFunc is canceled. Cancellation is advisory: a
// load that resolves anyway still caches and delivers its result. Errors
// classified by errors.IsCanceled are expected and only logged at debug
// level; any other failure is logged as an error, kept in Err and leaves the
// adapter Unloaded so that the next subscription retries.
//
// # Sharing a load
//
// Adapters that wrap the same external loader can share one call to it:
//
//	var flight singleflight.Group
//	a := loader.New(load, loader.WithFlight[*Engine](&flight, "engine"))
//	b := loader.New(load, loader.WithFlight[*Engine](&flight, "engine"))
//
// The shared call runs under the context of the adapter that started it. If
// that adapter abandons the load, the others see a cancellation they did not
// ask for and start again when they still have subscribers.
//
// # Blocking use
//
// Wait subscribes and blocks until the engine is available:
//
//	eng, err := adapter.Wait(ctx)
package loader
