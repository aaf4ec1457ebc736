package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/NikitaCOEUR/paramcomplete/internal/completion"
	"github.com/NikitaCOEUR/paramcomplete/internal/config"
	"github.com/NikitaCOEUR/paramcomplete/internal/logger"
)

// consoleIssuer is the issuer for completions requested from the command line
type consoleIssuer struct{}

func (consoleIssuer) Name() string { return "console" }

// components holds the objects built from a manifest
type components struct {
	path     string
	loader   *config.Loader
	manifest *config.Manifest
	resolver *completion.Resolver
	log      *logger.Logger
}

// resolveConfigPath returns path, or the manifest found in the current directory
func resolveConfigPath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	if found := config.FindConfig(currentDir); found != "" {
		return found, nil
	}
	return "", fmt.Errorf("no config file found in current directory")
}

// initializeComponents loads the manifest and wires the resolver.
// An explicit logLevel wins over the manifest's log_level.
func initializeComponents(configPath, logLevel string, logOut io.Writer) (*components, error) {
	path, err := resolveConfigPath(configPath)
	if err != nil {
		return nil, err
	}

	loader := config.New()
	manifest, err := loader.Load(path)
	if err != nil {
		return nil, err
	}

	if logLevel == "" {
		logLevel = manifest.LogLevel
	}
	log := logger.New(logLevel, logOut)

	resolver := completion.NewResolver(
		manifest.Registry(),
		completion.WithReplacer(manifest.BuildReplacements()),
		completion.WithLogger(log.With("component", "resolver")),
	)

	return &components{path: path, loader: loader, manifest: manifest, resolver: resolver, log: log}, nil
}

// shortHash abbreviates a manifest hash for display
func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}

func writerOrStdout(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}
