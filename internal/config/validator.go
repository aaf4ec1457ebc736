package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/NikitaCOEUR/paramcomplete/internal/completion"
)

// ValidationError represents a validation error with details
type ValidationError struct {
	Field   string
	Message string
}

// ValidationResult contains the results of manifest validation
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

func (r *ValidationResult) add(field, format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a manifest file for problems the schema cannot express.
// The parsed manifest stays in the loader's cache.
func (l *Loader) Validate(path string) (*ValidationResult, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	result := &ValidationResult{Valid: true, Errors: []ValidationError{}}

	manifest, err := l.Load(path)
	if err != nil {
		result.add("syntax", "Failed to parse config: %v", err)
		return result, nil
	}

	validateManifest(manifest, result)
	return result, nil
}

func validateManifest(m *Manifest, result *ValidationResult) {
	builtins := completion.NewRegistry()

	for id, values := range m.StaticCompletions() {
		if _, ok := builtins.Lookup(id); ok {
			result.add("static/"+id, "Static completion '%s' shadows a built-in handler", id)
		}
		if len(values) == 0 || (len(values) == 1 && strings.TrimSpace(values[0]) == "") {
			result.add("static/"+id, "Static completion '%s' has no values", id)
		}
	}

	for key, value := range m.Replacements {
		if strings.TrimSpace(value) == "" {
			result.add("replacements/"+key, "Replacement '%s' is empty", key)
		}
	}

	seen := make(map[string]string)
	for i, cmd := range m.Commands {
		field := fmt.Sprintf("commands/%d", i)
		if strings.TrimSpace(cmd.Name) == "" {
			result.add(field, "Command name is empty")
			continue
		}
		field = "commands/" + cmd.Name

		for _, name := range append([]string{cmd.Name}, cmd.Aliases...) {
			key := strings.ToLower(name)
			if owner, exists := seen[key]; exists {
				result.add(field, "Name conflict: '%s' is already used by command '%s'", name, owner)
				continue
			}
			seen[key] = cmd.Name
		}

		for j, p := range cmd.Parameters {
			if strings.TrimSpace(p.Name) == "" {
				result.add(fmt.Sprintf("%s/parameters/%d", field, j), "Parameter name is empty")
			}
			if p.Injected && p.Completion != "" {
				result.add(fmt.Sprintf("%s/parameters/%s", field, p.Name), "Injected parameter '%s' consumes no input and cannot declare a completion", p.Name)
			}
		}
	}
}
