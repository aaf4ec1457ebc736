package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/NikitaCOEUR/paramcomplete/internal/completion"
	"github.com/NikitaCOEUR/paramcomplete/internal/config"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	asyncStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	syncStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// HandlersParams contains parameters for the Handlers command
type HandlersParams struct {
	ConfigPath string
	LogLevel   string
	Out        io.Writer
	LogOut     io.Writer
}

// Handlers lists the registered completion handlers and each command's resolved specs
func Handlers(params HandlersParams) error {
	c, err := initializeComponents(params.ConfigPath, params.LogLevel, params.LogOut)
	if err != nil {
		return err
	}

	hash, err := c.loader.Hash(c.path)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(writerOrStdout(params.Out), renderHandlers(c.resolver.Registry(), c.manifest, c.path, hash))
	return err
}

func renderHandlers(registry *completion.Registry, manifest *config.Manifest, path, hash string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Completion handlers"))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(fmt.Sprintf("%s (sha256:%s)", path, shortHash(hash))))
	b.WriteString("\n\n")

	ids := registry.IDs()
	width := 0
	for _, id := range ids {
		width = max(width, len(id))
	}
	for _, id := range ids {
		h, _ := registry.Lookup(id)
		mode := syncStyle.Render(h.Mode.String())
		if h.Mode == completion.ModeAsync {
			mode = asyncStyle.Render(h.Mode.String())
		}
		b.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-*s", width, id)), mode))
	}

	if len(manifest.Commands) == 0 {
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Commands"))
	b.WriteString("\n")
	for _, cc := range manifest.Commands {
		cmd, err := manifest.Command(cc.Name)
		if err != nil {
			continue
		}
		b.WriteString(fmt.Sprintf("  %s", keyStyle.Render(cmd.Name)))
		if len(cc.Aliases) > 0 {
			b.WriteString(subtleStyle.Render(fmt.Sprintf(" (%s)", strings.Join(cc.Aliases, ", "))))
		}
		b.WriteString("\n")

		specs := completion.ResolvePositions(cmd)
		if len(specs) == 0 {
			b.WriteString(subtleStyle.Render("    no completions"))
			b.WriteString("\n")
			continue
		}
		for i, spec := range specs {
			b.WriteString(fmt.Sprintf("    %s %s\n", subtleStyle.Render(fmt.Sprintf("%d.", i+1)), spec))
		}
	}

	return b.String()
}
