package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Source identifies where a raw option value came from.
type Source string

const (
	// SourceDefault marks values taken from schema defaults.
	SourceDefault Source = "default"
	// SourceFile marks values taken from the configuration file.
	SourceFile Source = "file"
	// SourceCLI marks values taken from command-line arguments.
	SourceCLI Source = "cli"
)

// RawValues is the merged raw value set: option name to one or more untyped
// tokens, each with the source that supplied it. Command-line values win over
// file values, which win over defaults; list options take all their tokens
// from a single source.
type RawValues struct {
	values  map[string][]any
	sources map[string]Source
}

func newRawValues() *RawValues {
	return &RawValues{
		values:  make(map[string][]any),
		sources: make(map[string]Source),
	}
}

// Get returns the tokens for an option and whether any source supplied it.
func (r *RawValues) Get(name string) ([]any, bool) {
	tokens, ok := r.values[name]
	return tokens, ok
}

// First returns the first token for an option, for single-valued options.
func (r *RawValues) First(name string) (any, bool) {
	tokens, ok := r.values[name]
	if !ok || len(tokens) == 0 {
		return nil, false
	}
	return tokens[0], true
}

// Origin returns which source supplied the option's value.
func (r *RawValues) Origin(name string) (Source, bool) {
	src, ok := r.sources[name]
	return src, ok
}

func (r *RawValues) set(name string, src Source, tokens []any) {
	r.values[name] = tokens
	r.sources[name] = src
}

// Load builds the raw value set for one process startup. Command-line values
// are applied first; if filePath is non-empty the file fills only the options
// the command line did not set; schema defaults fill the rest. After the
// merge, every required option must have at least one value or Load fails
// with a MissingOptionError naming the offending key.
func Load(reg *Registry, cliValues map[string][]any, filePath string) (*RawValues, error) {
	raw := newRawValues()

	for name, tokens := range cliValues {
		if _, ok := reg.Lookup(name); !ok {
			return nil, fmt.Errorf("unknown option %q on command line", name)
		}
		if len(tokens) == 0 {
			continue
		}
		raw.set(name, SourceCLI, tokens)
	}

	if filePath != "" {
		fileValues, err := parseFile(reg, filePath)
		if err != nil {
			return nil, err
		}
		for name, tokens := range fileValues {
			if _, set := raw.values[name]; set {
				continue // command line wins
			}
			raw.set(name, SourceFile, tokens)
		}
	}

	for _, d := range reg.Descriptors() {
		if _, set := raw.values[d.Name]; set || d.Default == nil {
			continue
		}
		raw.set(d.Name, SourceDefault, defaultTokens(d))
	}

	for _, name := range reg.Required() {
		if _, set := raw.values[name]; !set {
			return nil, &MissingOptionError{Name: name}
		}
	}

	return raw, nil
}

func defaultTokens(d Descriptor) []any {
	if list, ok := d.Default.([]string); ok {
		tokens := make([]any, len(list))
		for i, v := range list {
			tokens[i] = v
		}
		return tokens
	}
	return []any{d.Default}
}

// parseFile reads a configuration file and returns the raw values it supplies
// for registered options. Sections are named after the option domains and
// keys carry no domain prefix inside their section. Unrecognized sections and
// keys are tolerated. The format is TOML unless the file extension selects
// YAML.
func parseFile(reg *Registry, path string) (map[string][]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileUnreadableError{Path: path, Cause: err}
	}

	sections := make(map[string]any)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &sections); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	default:
		if err := toml.Unmarshal(data, &sections); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	}

	out := make(map[string][]any)
	for section, value := range sections {
		table, ok := value.(map[string]any)
		if !ok {
			continue
		}
		for key, v := range table {
			name := section + "." + key
			d, ok := reg.Lookup(name)
			if !ok {
				continue
			}
			tokens, err := fileTokens(d, v)
			if err != nil {
				return nil, fmt.Errorf("configuration file %q: %w", path, err)
			}
			if len(tokens) > 0 {
				out[name] = tokens
			}
		}
	}
	return out, nil
}

func fileTokens(d Descriptor, value any) ([]any, error) {
	switch v := value.(type) {
	case []any:
		if !d.IsList() {
			return nil, fmt.Errorf("option %s does not accept a list", d.Name)
		}
		return v, nil
	case map[string]any:
		return nil, fmt.Errorf("option %s has an unexpected table value", d.Name)
	default:
		// A scalar for a list option is accepted as a single-element list.
		return []any{v}, nil
	}
}
