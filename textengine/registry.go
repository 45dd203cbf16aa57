package textengine

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/wippyai/editorbind/engine"
)

// Registry holds the live models of an engine, indexed by URI.
type Registry struct {
	byURI    map[string]*Model
	created  atomic.Int64
	disposed atomic.Int64
	nextID   uint64
	mu       sync.Mutex
}

var _ engine.ModelRegistry = (*Registry)(nil)

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byURI: make(map[string]*Model),
	}
}

func (r *Registry) GetModel(uri string) (engine.Model, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.byURI[uri]
	if !ok {
		return nil, false
	}
	return m, true
}

// CreateModel creates a model. Creating a model for a URI that is already
// taken replaces the registry entry; callers that want sharing use GetModel
// first.
func (r *Registry) CreateModel(value, language, uri string) engine.Model {
	r.mu.Lock()
	r.nextID++
	m := &Model{
		registry:  r,
		listeners: make(map[uint64]func()),
		id:        "$model" + strconv.FormatUint(r.nextID, 10),
		uri:       uri,
		language:  language,
		text:      value,
	}
	if uri != "" {
		r.byURI[uri] = m
	}
	r.mu.Unlock()

	r.created.Add(1)
	return m
}

// Len returns the number of URI-addressed live models.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byURI)
}

// Stats returns how many models were created and disposed so far.
func (r *Registry) Stats() (created, disposed int64) {
	return r.created.Load(), r.disposed.Load()
}

func (r *Registry) remove(m *Model) {
	r.disposed.Add(1)
	if m.uri == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byURI[m.uri] == m {
		delete(r.byURI, m.uri)
	}
}
