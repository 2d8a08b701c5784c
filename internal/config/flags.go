package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// AddFlags registers one command-line flag per schema option, named by the
// option's dotted name so that every option is addressable directly, e.g.
// --fscp.listen_on or --tap_adapter.enabled. Defaults and help text come from
// the descriptors, so usage output documents the full option surface.
func AddFlags(fs *pflag.FlagSet, reg *Registry) {
	for _, d := range reg.Descriptors() {
		switch d.Kind {
		case KindBool:
			def, _ := d.Default.(bool)
			fs.Bool(d.Name, def, d.Help)
		case KindUint:
			def, _ := d.Default.(uint)
			fs.Uint(d.Name, def, d.Help)
		case KindStringList:
			fs.StringArray(d.Name, nil, d.Help)
		default:
			def, _ := d.Default.(string)
			fs.String(d.Name, def, d.Help)
		}
	}
}

// CollectFlags reads back only the schema flags the user actually set,
// keyed by option name. Flags left at their default are omitted so that
// configuration-file values keep their place in the precedence order.
func CollectFlags(reg *Registry, fs *pflag.FlagSet) (map[string][]any, error) {
	out := make(map[string][]any)
	for _, d := range reg.Descriptors() {
		if fs.Lookup(d.Name) == nil || !fs.Changed(d.Name) {
			continue
		}
		switch d.Kind {
		case KindBool:
			v, err := fs.GetBool(d.Name)
			if err != nil {
				return nil, fmt.Errorf("flag %s: %w", d.Name, err)
			}
			out[d.Name] = []any{v}
		case KindUint:
			v, err := fs.GetUint(d.Name)
			if err != nil {
				return nil, fmt.Errorf("flag %s: %w", d.Name, err)
			}
			out[d.Name] = []any{v}
		case KindStringList:
			vs, err := fs.GetStringArray(d.Name)
			if err != nil {
				return nil, fmt.Errorf("flag %s: %w", d.Name, err)
			}
			tokens := make([]any, len(vs))
			for i, v := range vs {
				tokens[i] = v
			}
			out[d.Name] = tokens
		default:
			v, err := fs.GetString(d.Name)
			if err != nil {
				return nil, fmt.Errorf("flag %s: %w", d.Name, err)
			}
			out[d.Name] = []any{v}
		}
	}
	return out, nil
}
