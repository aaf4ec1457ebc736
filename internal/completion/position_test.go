package completion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func params(names ...string) []Parameter {
	ps := make([]Parameter, len(names))
	for i, n := range names {
		ps[i] = Parameter{Name: n}
	}
	return ps
}

func TestResolvePositions(t *testing.T) {
	tests := []struct {
		name string
		cmd  *Command
		want []string
	}{
		{
			name: "nil command",
			cmd:  nil,
			want: nil,
		},
		{
			name: "one token per parameter",
			cmd:  &Command{Completion: "@players @items", Parameters: params("target", "item")},
			want: []string{"@players", "@items"},
		},
		{
			name: "more tokens than parameters",
			cmd:  &Command{Completion: "@players @items @range:=1-64", Parameters: params("target")},
			want: []string{"@players"},
		},
		{
			name: "fewer tokens than parameters truncates",
			cmd:  &Command{Completion: "@players", Parameters: params("target", "item", "amount")},
			want: []string{"@players"},
		},
		{
			name: "empty command spec",
			cmd:  &Command{Completion: "", Parameters: params("target")},
			want: nil,
		},
		{
			name: "extra whitespace is ignored",
			cmd:  &Command{Completion: "  @players\t\t@items  ", Parameters: params("target", "item")},
			want: []string{"@players", "@items"},
		},
		{
			name: "injected parameters are skipped",
			cmd: &Command{
				Completion: "@players @items",
				Parameters: []Parameter{
					{Name: "sender", Injected: true},
					{Name: "target"},
					{Name: "world", Injected: true},
					{Name: "item"},
				},
			},
			want: []string{"@players", "@items"},
		},
		{
			name: "override takes precedence and keeps the queue",
			cmd: &Command{
				Completion: "@players @items",
				Parameters: []Parameter{
					{Name: "target"},
					{Name: "amount", Completion: "@range:=1-64"},
					{Name: "item"},
				},
			},
			want: []string{"@players", "@range:=1-64", "@items"},
		},
		{
			name: "multi-token override contributes every piece",
			cmd: &Command{
				Completion: "@players",
				Parameters: []Parameter{
					{Name: "pair", Completion: "a b"},
					{Name: "target"},
				},
			},
			want: []string{"a", "b", "@players"},
		},
		{
			name: "override after queue is exhausted still applies",
			cmd: &Command{
				Completion: "",
				Parameters: []Parameter{
					{Name: "flag", Completion: "yes|no"},
				},
			},
			want: []string{"yes|no"},
		},
		{
			name: "truncation stops before later overrides",
			cmd: &Command{
				Completion: "",
				Parameters: []Parameter{
					{Name: "target"},
					{Name: "flag", Completion: "yes|no"},
				},
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePositions(tt.cmd))
		})
	}
}

func TestResolvePositions_LengthIsMinOfTokensAndParameters(t *testing.T) {
	tokens := []string{"", "@a", "@a @b", "@a @b @c", "@a @b @c @d @e"}
	for _, spec := range tokens {
		for n := 0; n <= 4; n++ {
			cmd := &Command{Completion: spec, Parameters: make([]Parameter, n)}
			k := len(strings.Fields(spec))
			want := k
			if n < want {
				want = n
			}
			assert.Len(t, ResolvePositions(cmd), want, "spec %q with %d parameters", spec, n)
		}
	}
}

func TestParameter_ConsumesInput(t *testing.T) {
	assert.True(t, Parameter{Name: "target"}.ConsumesInput())
	assert.False(t, Parameter{Name: "sender", Injected: true}.ConsumesInput())
}

func TestCommand_HandleException(t *testing.T) {
	var nilCmd *Command
	assert.False(t, nilCmd.HandleException(nil, nil, assert.AnError))
	assert.False(t, (&Command{}).HandleException(nil, nil, assert.AnError))

	var got error
	cmd := &Command{OnError: func(_ Issuer, _ []string, err error) bool {
		got = err
		return true
	}}
	assert.True(t, cmd.HandleException(nil, []string{"x"}, assert.AnError))
	assert.Equal(t, assert.AnError, got)
}
