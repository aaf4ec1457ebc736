// Package completion resolves parameter completions for registered commands.
//
// A command carries a whitespace-separated completion spec, one token per
// input-consuming parameter, and each parameter may override its token. Each
// token is a '|' separated list of segments; a segment naming a registered
// handler (optionally followed by ":=config") is expanded by that handler,
// anything else is kept as literal text.
package completion

import "errors"

// ErrTextLookup is returned by a handler that has nothing sensible to offer.
// The whole spec then falls back to the token currently typed.
var ErrTextLookup = errors.New("completion text lookup failed")

// Mode tags which execution contexts may safely invoke a handler
type Mode int

const (
	// ModeSync handlers must run on the thread the platform designates as restricted
	ModeSync Mode = iota
	// ModeAsync handlers may run on any thread
	ModeAsync
)

func (m Mode) String() string {
	if m == ModeAsync {
		return "async"
	}
	return "sync"
}

// Issuer is whoever asked for completions
type Issuer interface {
	Name() string
}

// Context is built for a single handler invocation and discarded afterwards
type Context struct {
	Command   *Command
	Issuer    Issuer
	Input     string   // token currently being typed
	Config    string   // text after ":=" in the segment
	HasConfig bool     // false when the segment had no ":="
	Args      []string // full argument list, including Input as the last entry
	Async     bool
}

// HandlerFunc produces candidates for a context. A nil slice with a nil error
// means no candidates; return ErrTextLookup to fall back to the raw input.
type HandlerFunc func(ctx *Context) ([]string, error)

// Handler is a registered completion provider
type Handler struct {
	ID   string
	Fn   HandlerFunc
	Mode Mode
}

// Eligible reports whether the handler may run for a request with the given async flag
func (h *Handler) Eligible(async bool) bool {
	return !async || h.Mode == ModeAsync
}
