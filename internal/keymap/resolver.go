package keymap

import "strings"

// Resolver maps key strings to commands. Bindings whose key contains a
// space form a two-key sequence such as "s t".
type Resolver struct {
	bindings  map[string]Command   // key -> command
	byCommand map[Command][]string // command -> keys (for help)
	prefixes  map[string]bool      // first keys of sequences
}

// NewResolver creates a resolver from bindings.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		bindings:  make(map[string]Command),
		byCommand: make(map[Command][]string),
		prefixes:  make(map[string]bool),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			r.bindings[key] = b.Command
			if first, _, ok := strings.Cut(key, " "); ok {
				r.prefixes[first] = true
			}
		}
		r.byCommand[b.Command] = append(r.byCommand[b.Command], b.Keys...)
	}
	for cmd, keys := range r.byCommand {
		r.byCommand[cmd] = dedupe(keys)
	}
	return r
}

// Resolve returns the command for a key, or empty string if not bound.
func (r *Resolver) Resolve(key string) Command {
	return r.bindings[key]
}

// IsPrefix reports whether key starts a key sequence.
func (r *Resolver) IsPrefix(key string) bool {
	return r.prefixes[key]
}

// KeysFor returns the keys bound to a command.
func (r *Resolver) KeysFor(cmd Command) []string {
	return r.byCommand[cmd]
}

func dedupe(s []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(s))
	for _, v := range s {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}
