// Package main is the entry point for the paramcomplete CLI application.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	pcli "github.com/NikitaCOEUR/paramcomplete/internal/cli"
	"github.com/NikitaCOEUR/paramcomplete/pkg/version"
	"github.com/urfave/cli/v3"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(out, errOut io.Writer) *cli.Command {
	return &cli.Command{
		Name:                  "paramcomplete",
		Usage:                 "Resolve command parameter completions from a manifest",
		Version:               version.String(),
		EnableShellCompletion: true,
		Writer:                out,
		ErrWriter:             errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Manifest file (defaults to .paramcomplete.{yml,yaml,toml,json} in the current directory)",
				Sources: cli.EnvVars("PARAMCOMPLETE_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error); overrides the manifest's log_level",
				Sources: cli.EnvVars("PARAMCOMPLETE_LOG_LEVEL"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "complete",
				Usage:     "Print completion candidates for the last argument of a command",
				ArgsUsage: "<command> [args...]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "async",
						Usage: "Resolve as an off-thread request; sync-only handlers force a synchronous retry",
					},
					&cli.BoolFlag{
						Name:  "no-filter",
						Usage: "Print every candidate instead of only those matching the typed prefix",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					words := completionWords(cmd.Args().Slice())
					if len(words) == 0 {
						return fmt.Errorf("missing command name")
					}
					return pcli.Complete(pcli.CompleteParams{
						ConfigPath: cmd.String("config"),
						LogLevel:   cmd.String("log-level"),
						Command:    words[0],
						Args:       words[1:],
						Async:      cmd.Bool("async"),
						NoFilter:   cmd.Bool("no-filter"),
						Out:        out,
						LogOut:     errOut,
					})
				},
			},
			{
				Name:  "handlers",
				Usage: "List completion handlers and the specs resolved for each command",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return pcli.Handlers(pcli.HandlersParams{
						ConfigPath: cmd.String("config"),
						LogLevel:   cmd.String("log-level"),
						Out:        out,
						LogOut:     errOut,
					})
				},
			},
			{
				Name:      "validate",
				Usage:     "Validate a completion manifest",
				ArgsUsage: "[config-file]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					configPath := cmd.String("config")
					if cmd.Args().Len() > 0 {
						configPath = cmd.Args().Get(0)
					}
					return pcli.Validate(configPath, out)
				},
			},
			{
				Name:      "schema",
				Usage:     "Display or export the JSON Schema for completion manifests",
				ArgsUsage: "[output-file]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (prints to stdout if not specified)",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					outputPath := cmd.String("output")
					if outputPath == "" && cmd.Args().Len() > 0 {
						outputPath = cmd.Args().Get(0)
					}
					return pcli.Schema(outputPath, out)
				},
			},
		},
	}
}

// completionWords drops the first "--" separator so typed words starting with '-' pass through
func completionWords(args []string) []string {
	words := make([]string, 0, len(args))
	skipFirstDoubleDash := true
	for _, arg := range args {
		if arg == "--" && skipFirstDoubleDash {
			skipFirstDoubleDash = false
			continue
		}
		words = append(words, arg)
	}
	return words
}
