// Package resource tracks shared, disposable resources across independent
// consumers.
//
// Several components may be handed the same underlying resource, for
// instance two editor views on the same file model. None of them may dispose
// it while another still depends on it, and none of them knows about the
// others. Each component owns a Tracker; all trackers share one Usage that
// counts, per resource identity, how many scopes hold the resource.
//
// # Lifecycle
//
//	usage := resource.NewUsage()   // one per host
//
//	a := resource.NewTracker(usage) // one per component
//	b := resource.NewTracker(usage)
//
//	a.Register(model) // count 1
//	a.Register(model) // still 1, registration is idempotent per scope
//	b.Register(model) // count 2
//
//	a.ReleaseAll()    // count 1, model stays
//	b.ReleaseAll()    // count 0, model.Dispose() is called
//
// # Keep-alive
//
// Pin marks a resource that must outlive its users:
//
//	a.Register(model)
//	a.Pin(model)
//	a.ReleaseAll() // count 0, model is kept
//
// A pin holds for as long as the pinning scope is alive and there is no way
// to remove it early. Once the pinning scope has released, the resource is
// disposed by the next scope that registers and releases it, or by its owner
// directly.
//
// The decision to dispose is taken under the Usage lock, together with the
// final release. From then on Register refuses the resource with a
// KindDisposed error, as it does for any resource whose IsDisposed method
// reports true. Callers that get the error need a fresh resource.
//
// # Observers
//
// Register observers to follow lifecycle events:
//
//	t := resource.NewTracker(usage, resource.WithObserver(resource.ObserverFunc(func(e resource.Event) {
//	    log.Printf("%s %s (count %d)", e.Type, e.Identity, e.Count)
//	})))
//
// Releasing a scope that registered nothing, or releasing twice, is a no-op.
package resource
