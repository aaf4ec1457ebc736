package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/NikitaCOEUR/paramcomplete/internal/config"
	"github.com/NikitaCOEUR/paramcomplete/internal/derrors"
)

// Validate validates a completion manifest and prints the result to out
func Validate(configPath string, out io.Writer) error {
	out = writerOrStdout(out)

	configPath, err := resolveConfigPath(configPath)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "Validating: %s\n\n", configPath)

	content, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Structure first, then the semantic checks
	result, err := config.ValidateWithSchema(configPath, content)
	if err != nil {
		return err
	}

	loader := config.New()
	if result.Valid {
		customResult, err := loader.Validate(configPath)
		if err != nil {
			return err
		}
		if !customResult.Valid {
			result.Valid = false
			result.Errors = append(result.Errors, customResult.Errors...)
		}
	}

	if result.Valid {
		hash, err := loader.Hash(configPath)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, "✅ Configuration is valid!")
		_, _ = fmt.Fprintf(out, "Manifest hash: sha256:%s\n", hash)
		return nil
	}

	_, _ = fmt.Fprintln(out, "❌ Configuration has errors:")
	for i, validationErr := range result.Errors {
		_, _ = fmt.Fprintf(out, "%d. [%s] %s\n", i+1, validationErr.Field, validationErr.Message)
	}
	_, _ = fmt.Fprintf(out, "\nFound %d error(s)\n", len(result.Errors))

	return derrors.NewValidationError(configPath, "validation failed", nil)
}
