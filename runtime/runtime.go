package runtime

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/wippyai/editorbind/engine"
	"github.com/wippyai/editorbind/loader"
	"github.com/wippyai/editorbind/resource"
	"github.com/wippyai/editorbind/store"
)

// Option configures a Runtime.
type Option func(*options)

type options struct {
	logger *zap.Logger
	probe  func() (engine.Engine, bool)
	usage  *resource.Usage
	flight *singleflight.Group
}

// WithLogger sets the logger shared by the runtime, its loader and trackers.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithProbe lets the runtime adopt an engine the external loader already
// initialized.
func WithProbe(probe func() (engine.Engine, bool)) Option {
	return func(o *options) {
		o.probe = probe
	}
}

// WithUsage shares usage counts with another runtime.
func WithUsage(u *resource.Usage) Option {
	return func(o *options) {
		if u != nil {
			o.usage = u
		}
	}
}

// WithSharedLoad makes runtimes built with the same group share one engine
// load while it is in flight. Combine with WithUsage when they also share the
// engine's models.
func WithSharedLoad(g *singleflight.Group) Option {
	return func(o *options) {
		o.flight = g
	}
}

// Runtime hosts one editor engine for any number of components.
type Runtime struct {
	loader *loader.Adapter[engine.Engine]
	usage  *resource.Usage
	logger *zap.Logger
	engine *store.Writable[engine.Engine]
}

// New creates a runtime that acquires its engine through load. Nothing is
// loaded until a component mounts or Engine is subscribed to.
func New(load loader.LoadFunc[engine.Engine], opts ...Option) *Runtime {
	o := options{logger: Logger()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.usage == nil {
		o.usage = resource.NewUsage()
	}

	lopts := []loader.Option[engine.Engine]{loader.WithLogger[engine.Engine](o.logger)}
	if o.probe != nil {
		lopts = append(lopts, loader.WithProbe(o.probe))
	}
	if o.flight != nil {
		lopts = append(lopts, loader.WithFlight[engine.Engine](o.flight, "engine"))
	}

	r := &Runtime{
		loader: loader.New(load, lopts...),
		usage:  o.usage,
		logger: o.logger,
	}
	r.engine = store.NewWritable[engine.Engine](nil,
		store.WithEqual[engine.Engine](sameEngine),
		store.WithStart[engine.Engine](func(set func(engine.Engine)) func() {
			return r.loader.Subscribe(set)
		}),
	)
	return r
}

func sameEngine(a, b engine.Engine) bool {
	return a == b
}

// Engine exposes the engine as a store: nil until loaded, then the instance.
// Subscribing starts the load; when every subscriber leaves before it
// resolves, the load is canceled.
func (r *Runtime) Engine() store.Readable[engine.Engine] {
	return r.engine
}

// Loader returns the adapter acquiring the engine.
func (r *Runtime) Loader() *loader.Adapter[engine.Engine] {
	return r.loader
}

// Usage returns the usage counts shared by this runtime's trackers.
func (r *Runtime) Usage() *resource.Usage {
	return r.usage
}

// NewTracker creates a resource scope counting into the runtime's usage.
func (r *Runtime) NewTracker(opts ...resource.TrackerOption) *resource.Tracker {
	opts = append([]resource.TrackerOption{resource.WithLogger(r.logger)}, opts...)
	return resource.NewTracker(r.usage, opts...)
}

// Wait blocks until the engine is loaded or ctx is done.
func (r *Runtime) Wait(ctx context.Context) (engine.Engine, error) {
	return r.loader.Wait(ctx)
}

// Context returns the handle components use to reach this runtime.
func (r *Runtime) Context() *Context {
	return &Context{
		Engine:  r.Engine(),
		Runtime: r,
	}
}
