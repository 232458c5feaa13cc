// Package locale implements the message catalog the tokenizer's
// Diagnostic.Format renders through: a set of named, dotted-key string
// tables with `{}` positional substitution, loaded from embedded YAML.
//
// This package owns only the catalog mechanism. The catalog's contents
// cover every message family in original_source/src/messages.rs (elements,
// tokenization, analysis, resolution, validation, loaders) so a downstream
// parser built against the same tokenizer package can share one loader, but
// this package never emits any of those keys itself -- see
// tokenizer/diagnostic.go for the three keys this repository actually uses.
package locale

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalogs/*.yaml
var catalogFS embed.FS

// rawCatalog mirrors original_source/src/messages.rs's Messages struct: one
// section per concern, each a flat map of message name to template.
type rawCatalog struct {
	Elements     map[string]string `yaml:"elements"`
	Tokenization map[string]string `yaml:"tokenization"`
	Analysis     map[string]string `yaml:"analysis"`
	Resolution   map[string]string `yaml:"resolution"`
	Validation   map[string]string `yaml:"validation"`
	Loaders      map[string]string `yaml:"loaders"`
}

func (r rawCatalog) flatten() map[string]string {
	out := make(map[string]string)
	add := func(section string, m map[string]string) {
		for k, v := range m {
			out[section+"."+k] = v
		}
	}
	add("elements", r.Elements)
	add("tokenization", r.Tokenization)
	add("analysis", r.Analysis)
	add("resolution", r.Resolution)
	add("validation", r.Validation)
	add("loaders", r.Loaders)
	return out
}

// Catalog is one locale's flattened message table. Keys are dotted
// section.field pairs, e.g. "tokenization.invalid_line".
type Catalog struct {
	Name     string
	messages map[string]string
	fallback *Catalog
}

// Format substitutes args positionally into key's `{}` placeholders, the
// same convention as original_source's rt_format! macro calls. A key
// missing from this catalog falls back to the default ("en") catalog before
// falling back to the literal key, so a partially translated catalog still
// produces readable output for the messages it hasn't translated yet.
func (c *Catalog) Format(key string, args ...interface{}) string {
	tmpl, ok := c.messages[key]
	if !ok {
		if c.fallback != nil {
			return c.fallback.Format(key, args...)
		}
		return key
	}
	return formatPositional(tmpl, args)
}

func formatPositional(tmpl string, args []interface{}) string {
	var b strings.Builder
	argIdx := 0
	for i := 0; i < len(tmpl); {
		if tmpl[i] == '{' && i+1 < len(tmpl) && tmpl[i+1] == '}' {
			if argIdx < len(args) {
				fmt.Fprintf(&b, "%v", args[argIdx])
				argIdx++
			}
			i += 2
			continue
		}
		b.WriteByte(tmpl[i])
		i++
	}
	return b.String()
}

// Catalogs is the full set of loaded locales, keyed by name ("en", "de", ...).
type Catalogs struct {
	byName  map[string]*Catalog
	Default *Catalog
}

// Load parses every embedded catalogs/*.yaml file into a Catalogs set. "en"
// is always present and is the fallback for every other locale, matching
// original_source/src/messages.rs's get_en_messages being the one
// unconditionally available catalog.
func Load() (*Catalogs, error) {
	entries, err := catalogFS.ReadDir("catalogs")
	if err != nil {
		return nil, fmt.Errorf("locale: reading embedded catalogs: %w", err)
	}

	cs := &Catalogs{byName: make(map[string]*Catalog, len(entries))}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".yaml")
		data, err := catalogFS.ReadFile("catalogs/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("locale: reading catalog %q: %w", name, err)
		}
		var raw rawCatalog
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("locale: parsing catalog %q: %w", name, err)
		}
		cs.byName[name] = &Catalog{Name: name, messages: raw.flatten()}
	}

	def, ok := cs.byName["en"]
	if !ok {
		return nil, fmt.Errorf("locale: no default %q catalog embedded", "en")
	}
	cs.Default = def
	for name, c := range cs.byName {
		if name != "en" {
			c.fallback = def
		}
	}
	return cs, nil
}

// Get returns the named catalog, falling back to the default ("en")
// catalog when name is empty or unknown.
func (cs *Catalogs) Get(name string) *Catalog {
	if name == "" {
		return cs.Default
	}
	if c, ok := cs.byName[name]; ok {
		return c
	}
	return cs.Default
}
