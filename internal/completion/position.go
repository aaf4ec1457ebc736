package completion

import "strings"

// ExceptionHandler receives handler failures for reporting. The returned bool
// mirrors command exception handlers elsewhere in the framework and is ignored here.
type ExceptionHandler func(issuer Issuer, args []string, err error) bool

// Command is the completion metadata of a registered command
type Command struct {
	Name string
	// Completion holds one whitespace-separated token per input-consuming
	// parameter that has no override of its own.
	Completion string
	Parameters []Parameter
	// OnError reports handler failures; nil means log them
	OnError ExceptionHandler
}

// Parameter is the completion metadata of one command parameter
type Parameter struct {
	Name string
	// Completion overrides the command's positional token; empty means none
	Completion string
	// Injected parameters are supplied by the framework and consume no input
	Injected bool
}

// ConsumesInput reports whether the parameter takes a token from the command line
func (p Parameter) ConsumesInput() bool {
	return !p.Injected
}

// HandleException forwards err to the command's exception handler
func (c *Command) HandleException(issuer Issuer, args []string, err error) bool {
	if c == nil || c.OnError == nil {
		return false
	}
	return c.OnError(issuer, args, err)
}

// ResolvePositions merges the command's positional tokens with parameter
// overrides into one spec per input-consuming parameter, in parameter order.
// The walk stops at the first parameter that needs a positional token when
// none are left.
func ResolvePositions(cmd *Command) []string {
	if cmd == nil {
		return nil
	}
	queue := strings.Fields(cmd.Completion)
	var specs []string

	for _, param := range cmd.Parameters {
		if !param.ConsumesInput() {
			continue
		}
		if param.Completion != "" {
			specs = append(specs, strings.Fields(param.Completion)...)
			continue
		}
		if len(queue) == 0 {
			break
		}
		specs = append(specs, queue[0])
		queue = queue[1:]
	}
	return specs
}
