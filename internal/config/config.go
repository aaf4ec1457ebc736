// Package config loads completion manifests: the commands, parameter specs,
// static completions and replacements that feed the resolver.
package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/NikitaCOEUR/paramcomplete/internal/completion"
	"github.com/NikitaCOEUR/paramcomplete/internal/derrors"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// SupportedConfigNames contains supported manifest file names (in order of preference)
var SupportedConfigNames = []string{
	".paramcomplete.yml",
	".paramcomplete.yaml",
	".paramcomplete.toml",
	".paramcomplete.json",
}

// ParameterConfig describes one command parameter
type ParameterConfig struct {
	Name       string `koanf:"name"`
	Completion string `koanf:"completion"`
	Injected   bool   `koanf:"injected"`
}

// CommandConfig describes one command and its completion specs
type CommandConfig struct {
	Name       string            `koanf:"name"`
	Aliases    []string          `koanf:"aliases"`
	Completion string            `koanf:"completion"`
	Parameters []ParameterConfig `koanf:"parameters"`
}

// Manifest is a parsed completion manifest
type Manifest struct {
	LogLevel     string                 `koanf:"log_level"`
	Replacements map[string]string      `koanf:"replacements"`
	Static       map[string]interface{} `koanf:"static"` // "a|b|c" or a list of strings
	Commands     []CommandConfig        `koanf:"commands"`
}

// StaticCompletions returns the static completion lists keyed by id
func (m *Manifest) StaticCompletions() map[string][]string {
	result := make(map[string][]string, len(m.Static))
	for id, value := range m.Static {
		switch v := value.(type) {
		case string:
			result[id] = completion.SplitSegments(v)
		case []interface{}:
			values := make([]string, 0, len(v))
			for _, item := range v {
				values = append(values, fmt.Sprint(item))
			}
			result[id] = values
		case []string:
			result[id] = append([]string(nil), v...)
		}
	}
	return result
}

// Registry builds a handler registry with the built-ins and the manifest's static completions
func (m *Manifest) Registry() *completion.Registry {
	registry := completion.NewRegistry()
	static := m.StaticCompletions()
	ids := make([]string, 0, len(static))
	for id := range static {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if list, ok := m.Static[id].(string); ok {
			registry.RegisterStaticList(id, list)
			continue
		}
		registry.RegisterStatic(id, static[id])
	}
	return registry
}

// BuildReplacements returns the manifest's replacement set
func (m *Manifest) BuildReplacements() *completion.Replacements {
	replacements := completion.NewReplacements()
	for key, value := range m.Replacements {
		replacements.Add(key, value)
	}
	return replacements
}

// Command finds a command by name or alias, case-insensitively
func (m *Manifest) Command(name string) (*completion.Command, error) {
	for _, cmd := range m.Commands {
		if strings.EqualFold(cmd.Name, name) || containsFold(cmd.Aliases, name) {
			return cmd.toCommand(), nil
		}
	}
	return nil, derrors.NewNotFoundError("command", fmt.Sprintf("unknown command: %s", name))
}

func (c CommandConfig) toCommand() *completion.Command {
	params := make([]completion.Parameter, 0, len(c.Parameters))
	for _, p := range c.Parameters {
		params = append(params, completion.Parameter{
			Name:       p.Name,
			Completion: p.Completion,
			Injected:   p.Injected,
		})
	}
	return &completion.Command{
		Name:       c.Name,
		Completion: c.Completion,
		Parameters: params,
	}
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}

// cachedManifest stores a parsed manifest with its modification time and hash
type cachedManifest struct {
	manifest *Manifest
	modTime  time.Time
	size     int64
	hash     string
}

// Loader handles loading and parsing manifest files
type Loader struct {
	parsedCache map[string]*cachedManifest
}

// New creates a new manifest loader
func New() *Loader {
	return &Loader{
		parsedCache: make(map[string]*cachedManifest),
	}
}

func parserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
}

// Load reads and parses a manifest file
func (l *Loader) Load(path string) (*Manifest, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to stat manifest", err)
	}

	if cached, exists := l.parsedCache[path]; exists {
		if !fileInfo.ModTime().After(cached.modTime) && fileInfo.Size() == cached.size {
			return cached.manifest, nil
		}
		delete(l.parsedCache, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to read manifest", err)
	}

	manifest, err := Parse(path, data)
	if err != nil {
		return nil, err
	}

	l.parsedCache[path] = &cachedManifest{
		manifest: manifest,
		modTime:  fileInfo.ModTime(),
		size:     fileInfo.Size(),
		hash:     computeHash(data),
	}
	return manifest, nil
}

// Parse decodes manifest content; the format is picked from path's extension
func Parse(path string, data []byte) (*Manifest, error) {
	parser, err := parserFor(path)
	if err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to load manifest", err)
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to load manifest", err)
	}

	manifest := &Manifest{
		Replacements: make(map[string]string),
		Static:       make(map[string]interface{}),
	}
	if err := k.Unmarshal("", manifest); err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to unmarshal manifest", err)
	}
	return manifest, nil
}

// Hash returns the SHA-256 of a manifest file, reusing the cached value when unchanged
func (l *Loader) Hash(path string) (string, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return "", err
	}

	if cached, exists := l.parsedCache[path]; exists {
		if !fileInfo.ModTime().After(cached.modTime) && fileInfo.Size() == cached.size && cached.hash != "" {
			return cached.hash, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return computeHash(data), nil
}

func computeHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// FindConfig returns the first supported manifest in dir, or "" if none exists
func FindConfig(dir string) string {
	for _, name := range SupportedConfigNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
