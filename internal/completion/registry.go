package completion

import (
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/NikitaCOEUR/paramcomplete/internal/derrors"
)

// IDPrefix marks handler ids so they never collide with literal text
const IDPrefix = "@"

// Registry maps completion ids to handlers and value types to default ids.
// Reads may run concurrently; registration is expected to happen at start-up.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]*Handler
	defaults map[reflect.Type]string
}

// NewRegistry creates a registry with the built-in handlers installed
func NewRegistry() *Registry {
	r := &Registry{
		handlers: make(map[string]*Handler),
		defaults: make(map[reflect.Type]string),
	}
	registerBuiltins(r)
	return r
}

// NormalizeID lowercases id and ensures it carries the handler prefix
func NormalizeID(id string) string {
	return IDPrefix + strings.TrimPrefix(strings.ToLower(id), IDPrefix)
}

// Register stores fn under id and returns the handler it replaced, if any
func (r *Registry) Register(id string, fn HandlerFunc, async bool) *Handler {
	mode := ModeSync
	if async {
		mode = ModeAsync
	}
	h := &Handler{ID: NormalizeID(id), Fn: fn, Mode: mode}

	r.mu.Lock()
	defer r.mu.Unlock()
	prev := r.handlers[h.ID]
	r.handlers[h.ID] = h
	return prev
}

// RegisterSync registers a handler that must only run on synchronous requests
func (r *Registry) RegisterSync(id string, fn HandlerFunc) *Handler {
	return r.Register(id, fn, false)
}

// RegisterAsync registers a handler that is safe to run on any thread
func (r *Registry) RegisterAsync(id string, fn HandlerFunc) *Handler {
	return r.Register(id, fn, true)
}

// RegisterStatic registers a fixed list of candidates that ignores its context
func (r *Registry) RegisterStatic(id string, values []string) *Handler {
	fixed := append([]string(nil), values...)
	return r.RegisterAsync(id, func(_ *Context) ([]string, error) {
		return append([]string(nil), fixed...), nil
	})
}

// RegisterStaticList registers a fixed '|' separated list, e.g. "red|green|blue"
func (r *Registry) RegisterStaticList(id, list string) *Handler {
	return r.RegisterStatic(id, SplitSegments(list))
}

// Lookup finds a handler; the id is case-insensitive and the prefix optional
func (r *Registry) Lookup(id string) (*Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[NormalizeID(id)]
	return h, ok
}

// SetDefault records id as the default completion for each of types.
// The handler must already be registered.
func (r *Registry) SetDefault(id string, types ...reflect.Type) (*Handler, error) {
	key := NormalizeID(id)

	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.handlers[key]
	if !ok {
		return nil, derrors.NewUnknownHandlerError(key)
	}
	for _, t := range types {
		r.defaults[t] = key
	}
	return h, nil
}

// DefaultFor returns the default completion id recorded for t
func (r *Registry) DefaultFor(t reflect.Type) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.defaults[t]
	return id, ok
}

// IDs returns all registered handler ids in sorted order
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.handlers))
	for id := range r.handlers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
