package command

import (
	"sort"
	"strings"
)

// Options holds WP-CLI style associative arguments. A bare flag ("--force")
// is stored with an empty value.
type Options map[string]string

// ParseArgs splits raw arguments into positionals and options. "--k=v" sets
// k to v, "--k" sets k to "", and a lone "--" ends option parsing.
func ParseArgs(raw []string) ([]string, Options) {
	args := []string{}
	opts := Options{}
	for i := 0; i < len(raw); i++ {
		a := raw[i]
		if a == "--" {
			args = append(args, raw[i+1:]...)
			break
		}
		if !strings.HasPrefix(a, "--") || len(a) == 2 {
			args = append(args, a)
			continue
		}
		kv := strings.TrimPrefix(a, "--")
		if k, v, ok := strings.Cut(kv, "="); ok {
			opts[k] = v
		} else {
			opts[kv] = ""
		}
	}
	return args, opts
}

// Has reports whether key was given, with or without a value.
func (o Options) Has(key string) bool {
	_, ok := o[key]
	return ok
}

// Get returns the value of key, or def when key is absent or bare.
func (o Options) Get(key, def string) string {
	if v, ok := o[key]; ok && v != "" {
		return v
	}
	return def
}

// Without returns a copy of o lacking keys.
func (o Options) Without(keys ...string) Options {
	out := make(Options, len(o))
	for k, v := range o {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// With returns a copy of o with key set to value.
func (o Options) With(key, value string) Options {
	out := o.Without()
	out[key] = value
	return out
}

// Argv renders o back into "--k=v" / "--k" arguments, sorted by key.
func (o Options) Argv() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	argv := make([]string, 0, len(keys))
	for _, k := range keys {
		if v := o[k]; v != "" {
			argv = append(argv, "--"+k+"="+v)
		} else {
			argv = append(argv, "--"+k)
		}
	}
	return argv
}
