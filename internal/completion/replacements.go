package completion

import (
	"bytes"
	"regexp"
	"sort"
	"strings"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// Replacer expands macros in a completion spec before it is parsed
type Replacer interface {
	Replace(spec string) string
}

// NopReplacer leaves specs untouched
type NopReplacer struct{}

// Replace returns spec as is
func (NopReplacer) Replace(spec string) string { return spec }

// Replacements substitutes %key and %{key} with registered values, case-insensitively.
// Specs containing "{{" are then rendered as Go templates with sprig functions,
// with the registered values available as {{.key}}.
type Replacements struct {
	mu       sync.RWMutex
	values   map[string]string
	patterns map[string]*regexp.Regexp
}

// NewReplacements creates an empty replacement set
func NewReplacements() *Replacements {
	return &Replacements{
		values:   make(map[string]string),
		patterns: make(map[string]*regexp.Regexp),
	}
}

// Add registers a replacement and returns the previous value for key, if any
func (r *Replacements) Add(key, value string) (string, bool) {
	key = strings.ToLower(strings.TrimPrefix(key, "%"))
	pattern := regexp.MustCompile(`(?i)%\{` + regexp.QuoteMeta(key) + `\}|%` + regexp.QuoteMeta(key) + `\b`)

	r.mu.Lock()
	defer r.mu.Unlock()
	prev, ok := r.values[key]
	r.values[key] = value
	r.patterns[key] = pattern
	return prev, ok
}

// Keys returns the registered replacement keys in sorted order
func (r *Replacements) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.values))
	for k := range r.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Replace expands all registered macros in spec
func (r *Replacements) Replace(spec string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if strings.Contains(spec, "%") {
		// longest keys first so %item never eats the prefix of %items
		keys := make([]string, 0, len(r.values))
		for k := range r.values {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })
		for _, k := range keys {
			value := r.values[k]
			spec = r.patterns[k].ReplaceAllLiteralString(spec, value)
		}
	}

	if strings.Contains(spec, "{{") {
		spec = r.render(spec)
	}
	return spec
}

// render expands a template spec, leaving it unchanged when it does not parse or execute
func (r *Replacements) render(spec string) string {
	tmpl, err := template.New("completion").Funcs(sprig.TxtFuncMap()).Option("missingkey=zero").Parse(spec)
	if err != nil {
		return spec
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, r.values); err != nil {
		return spec
	}
	return buf.String()
}
