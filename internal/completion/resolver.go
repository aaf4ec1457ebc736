package completion

import (
	"errors"
	"fmt"
	"strings"

	"github.com/NikitaCOEUR/paramcomplete/internal/derrors"
	"github.com/NikitaCOEUR/paramcomplete/internal/logger"
)

// OutcomeKind tells how a resolution ended
type OutcomeKind int

const (
	// OutcomeOK means every segment was expanded
	OutcomeOK OutcomeKind = iota
	// OutcomeAbort means a handler gave up or failed; candidates hold the raw input
	OutcomeAbort
	// OutcomeSyncRequired means an async request reached a sync-only handler
	OutcomeSyncRequired
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeOK:
		return "ok"
	case OutcomeAbort:
		return "abort"
	case OutcomeSyncRequired:
		return "sync-required"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
}

// Outcome is the result of a resolution
type Outcome struct {
	Kind       OutcomeKind
	Candidates []string
	// Err is the handler failure behind an abort, or the sync violation
	Err error
}

// Request describes one completion request
type Request struct {
	Command *Command
	Issuer  Issuer
	// Args are the command's arguments typed so far; the last one is being completed
	Args  []string
	Async bool
}

func (req Request) input() string {
	if len(req.Args) == 0 {
		return ""
	}
	return req.Args[len(req.Args)-1]
}

// Resolver turns command metadata and a partial command line into candidates
type Resolver struct {
	registry *Registry
	replacer Replacer
	log      *logger.Logger
}

// Option configures a Resolver
type Option func(*Resolver)

// WithReplacer sets the macro expansion applied to specs before parsing
func WithReplacer(replacer Replacer) Option {
	return func(r *Resolver) {
		if replacer != nil {
			r.replacer = replacer
		}
	}
}

// WithLogger sets the resolver's logger
func WithLogger(log *logger.Logger) Option {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// NewResolver creates a resolver backed by registry
func NewResolver(registry *Registry, opts ...Option) *Resolver {
	r := &Resolver{
		registry: registry,
		replacer: NopReplacer{},
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Registry returns the handler registry the resolver dispatches to
func (r *Resolver) Registry() *Registry { return r.registry }

// Complete resolves candidates for the last of args. A nil slice with a
// *derrors.SyncCompletionRequiredError means the request must be retried
// synchronously.
func (r *Resolver) Complete(cmd *Command, issuer Issuer, args []string, async bool) ([]string, error) {
	out := r.Resolve(Request{Command: cmd, Issuer: issuer, Args: args, Async: async})
	if out.Kind == OutcomeSyncRequired {
		return nil, out.Err
	}
	return out.Candidates, nil
}

// Resolve picks the spec for the argument being typed and expands it
func (r *Resolver) Resolve(req Request) Outcome {
	if len(req.Args) == 0 {
		req.Args = []string{""}
	}
	argIndex := len(req.Args) - 1
	input := req.input()

	specs := ResolvePositions(req.Command)

	var spec string
	switch {
	case argIndex < len(specs):
		spec = specs[argIndex]
	case len(specs) > 0:
		// trailing open-ended parameters reuse the last spec
		spec = specs[len(specs)-1]
	default:
		r.log.Debug().
			Str("command", commandName(req.Command)).
			Int("arg_index", argIndex).
			Msg("No completion spec for argument")
		return Outcome{Kind: OutcomeOK, Candidates: []string{input}}
	}

	return r.Values(req, spec)
}

// Values expands spec segment by segment and concatenates the candidates.
// Duplicates are kept.
func (r *Resolver) Values(req Request, spec string) Outcome {
	input := req.input()
	spec = r.replacer.Replace(spec)

	candidates := []string{}
	for _, segment := range SplitSegments(spec) {
		id, config, hasConfig := strings.Cut(segment, ":=")

		handler, ok := r.registry.Lookup(id)
		if !ok {
			candidates = append(candidates, segment)
			continue
		}

		if !handler.Eligible(req.Async) {
			err := derrors.NewSyncCompletionRequiredError(handler.ID)
			r.log.Debug().
				Str("command", commandName(req.Command)).
				Str("handler", handler.ID).
				Msg("Async completion reached a sync-only handler")
			return Outcome{Kind: OutcomeSyncRequired, Err: err}
		}

		ctx := &Context{
			Command:   req.Command,
			Issuer:    req.Issuer,
			Input:     input,
			Config:    config,
			HasConfig: hasConfig,
			Args:      req.Args,
			Async:     req.Async,
		}

		values, err := invoke(handler, ctx)
		if err != nil {
			if !errors.Is(err, ErrTextLookup) {
				r.report(req, err)
			}
			r.log.Debug().
				Str("handler", handler.ID).
				Err(err).
				Msg("Completion handler aborted, falling back to input")
			return Outcome{Kind: OutcomeAbort, Candidates: []string{input}, Err: err}
		}
		candidates = append(candidates, values...)
	}

	return Outcome{Kind: OutcomeOK, Candidates: candidates}
}

// report hands a handler failure to the command's exception handler, or logs it
func (r *Resolver) report(req Request, err error) {
	if req.Command != nil && req.Command.OnError != nil {
		req.Command.HandleException(req.Issuer, req.Args, err)
		return
	}
	r.log.Error().
		Str("command", commandName(req.Command)).
		Strs("args", req.Args).
		Err(err).
		Msg("Completion handler failed")
}

// invoke runs a handler, turning failures and panics into a HandlerError.
// ErrTextLookup passes through untouched.
func invoke(h *Handler, ctx *Context) (values []string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			values = nil
			err = derrors.NewHandlerError(h.ID, "completion handler panicked", fmt.Errorf("%v", rec))
		}
	}()

	values, err = h.Fn(ctx)
	if err != nil && !errors.Is(err, ErrTextLookup) {
		err = derrors.NewHandlerError(h.ID, "completion handler failed", err)
	}
	return values, err
}

// SplitSegments splits on '|'. Trailing empty segments are dropped, but an
// empty spec still yields one empty literal.
func SplitSegments(spec string) []string {
	segments := strings.Split(spec, "|")
	for len(segments) > 1 && segments[len(segments)-1] == "" {
		segments = segments[:len(segments)-1]
	}
	return segments
}

// Filter keeps the candidates starting with prefix
func Filter(candidates []string, prefix string) []string {
	if prefix == "" {
		return candidates
	}

	filtered := []string{}
	for _, c := range candidates {
		if strings.HasPrefix(strings.ToLower(c), strings.ToLower(prefix)) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

func commandName(cmd *Command) string {
	if cmd == nil {
		return ""
	}
	return cmd.Name
}
