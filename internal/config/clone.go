// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

// Clone returns an alias-free deep copy of Config.
// Nil collections stay nil.
func Clone(in Config) Config {
	out := in
	out.Content = cloneStringSlice(in.Content)
	out.Theme.FontFamily = CloneFonts(in.Theme.FontFamily)
	out.Theme.Extend = CloneMap(in.Theme.Extend)
	out.Plugins = clonePlugins(in.Plugins)
	return out
}

func cloneStringSlice(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// CloneFonts copies a font role mapping.
func CloneFonts(in map[string][]string) map[string][]string {
	if in == nil {
		return nil
	}
	out := make(map[string][]string, len(in))
	for k, v := range in {
		out[k] = cloneStringSlice(v)
	}
	return out
}

func clonePlugins(in []Plugin) []Plugin {
	if in == nil {
		return nil
	}
	out := make([]Plugin, len(in))
	for i := range in {
		out[i] = in[i]
		out[i].Options = CloneMap(in[i].Options)
	}
	return out
}

// CloneMap deep-copies a decoded mapping such as theme.extend or plugin
// options.
func CloneMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = CloneValue(v)
	}
	return out
}

// CloneValue copies the container types produced by the YAML and JSON decoders.
// Scalars are immutable and returned as is.
func CloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return CloneMap(t)
	case []any:
		if t == nil {
			return t
		}
		out := make([]any, len(t))
		for i := range t {
			out[i] = CloneValue(t[i])
		}
		return out
	case []string:
		return cloneStringSlice(t)
	default:
		return v
	}
}
