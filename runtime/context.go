package runtime

import (
	"sync"

	"github.com/wippyai/editorbind/engine"
	"github.com/wippyai/editorbind/errors"
	"github.com/wippyai/editorbind/store"
)

// Token identifies a context slot. Tokens compare by identity, so two tokens
// created with the same name are distinct.
type Token struct {
	key *tokenKey
}

type tokenKey struct {
	name string
}

// NewToken creates a token; name is used in errors and logs only.
func NewToken(name string) Token {
	return Token{key: &tokenKey{name: name}}
}

// Name returns the token's name.
func (t Token) Name() string {
	if t.key == nil {
		return ""
	}
	return t.key.name
}

// DefaultToken is the slot components look up when none is given.
var DefaultToken = NewToken("editor")

// Context is what a host provides to the components below it.
type Context struct {
	Engine  store.Readable[engine.Engine]
	Runtime *Runtime
}

// Registry maps tokens to contexts, standing in for a component tree's
// context lookup.
type Registry struct {
	entries map[*tokenKey]*Context
	mu      sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[*tokenKey]*Context)}
}

// Provide binds ctx to tok, replacing any previous binding.
func (r *Registry) Provide(tok Token, ctx *Context) error {
	if tok.key == nil {
		return errors.InvalidInput(errors.PhaseContext, "zero token")
	}
	if ctx == nil {
		return errors.New(errors.PhaseContext, errors.KindInvalidInput).
			Path(tok.Name()).
			Detail("nil context").
			Build()
	}
	r.mu.Lock()
	r.entries[tok.key] = ctx
	r.mu.Unlock()
	return nil
}

// Lookup returns the context bound to tok.
func (r *Registry) Lookup(tok Token) (*Context, error) {
	r.mu.RLock()
	ctx, ok := r.entries[tok.key]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.NotFound(errors.PhaseContext, "context", tok.Name())
	}
	return ctx, nil
}

// Remove drops the binding for tok.
func (r *Registry) Remove(tok Token) {
	r.mu.Lock()
	delete(r.entries, tok.key)
	r.mu.Unlock()
}
