package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/NikitaCOEUR/paramcomplete/internal/completion"
	"github.com/NikitaCOEUR/paramcomplete/internal/derrors"
	"github.com/NikitaCOEUR/paramcomplete/internal/timing"
)

// CompleteParams contains parameters for the Complete command
type CompleteParams struct {
	ConfigPath string
	LogLevel   string
	Command    string
	Args       []string // arguments after the command name; the last one is being completed
	Async      bool
	NoFilter   bool // print every candidate instead of only those matching the typed prefix
	Out        io.Writer
	LogOut     io.Writer
}

// Complete prints the completion candidates for the last argument, one per line
func Complete(params CompleteParams) error {
	timer := timing.NewTimer()

	c, err := initializeComponents(params.ConfigPath, params.LogLevel, params.LogOut)
	if err != nil {
		return err
	}

	cmd, err := c.manifest.Command(params.Command)
	if err != nil {
		return err
	}
	cmd.OnError = func(issuer completion.Issuer, args []string, err error) bool {
		c.log.Warn().
			Str("command", cmd.Name).
			Str("issuer", issuer.Name()).
			Strs("args", args).
			Err(err).
			Msg("Completion handler failed")
		return true
	}

	args := params.Args
	if len(args) == 0 {
		args = []string{""}
	}

	timer.Stage("load")

	candidates, err := c.resolver.Complete(cmd, consoleIssuer{}, args, params.Async)

	var syncErr *derrors.SyncCompletionRequiredError
	if errors.As(err, &syncErr) {
		// sync handlers are allowed on the CLI's own thread
		c.log.Debug().Str("handler", syncErr.ID).Msg("Retrying completion synchronously")
		candidates, err = c.resolver.Complete(cmd, consoleIssuer{}, args, false)
	}
	if err != nil {
		return err
	}
	timer.Stage("resolve")

	if !params.NoFilter {
		candidates = completion.Filter(candidates, args[len(args)-1])
	}
	timer.Stage("filter")

	c.log.Debug().
		Str("command", cmd.Name).
		Strs("args", args).
		Int("candidates", len(candidates)).
		Str("timing", timer.Summary()).
		Dur("total_ms", timer.Elapsed()).
		Msg("Resolved completions")

	out := writerOrStdout(params.Out)
	for _, candidate := range candidates {
		if _, err := fmt.Fprintln(out, candidate); err != nil {
			return err
		}
	}
	return nil
}
