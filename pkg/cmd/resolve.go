package cmd

import "strings"

// Resolver turns raw message text into an Invocation.
type Resolver struct {
	Prefix   string
	Registry *Registry
}

// NewResolver returns a resolver for the given prefix over reg.
// A nil reg means DefaultRegistry.
func NewResolver(prefix string, reg *Registry) *Resolver {
	if reg == nil {
		reg = DefaultRegistry
	}
	return &Resolver{Prefix: strings.ToLower(prefix), Registry: reg}
}

// Resolve reports which command text invokes, if any. It never fails: text
// from a bot, text without the prefix and unknown command words all come back
// unresolved, and unresolved means do nothing.
//
// A bare-mode word in first position wins over the prefix check. For prefixed
// commands the name is matched case-insensitively while Args keep the casing
// of the original text.
func (r *Resolver) Resolve(text string, fromBot bool) (*Invocation, bool) {
	if fromBot {
		return nil, false
	}

	lower := strings.ToLower(strings.TrimSpace(text))
	words := strings.Fields(lower)
	if len(words) == 0 {
		return nil, false
	}

	if c, ok := r.Registry.Lookup(ModeBare, words[0]); ok {
		return &Invocation{Name: c.Name(), Alias: words[0], Mode: ModeBare}, true
	}

	if r.Prefix == "" || !strings.HasPrefix(lower, r.Prefix) {
		return nil, false
	}

	// Slice the trimmed original by prefix length; lowercasing does not change
	// the byte length of an ASCII prefix.
	rest := strings.TrimSpace(text)[len(r.Prefix):]
	tokens := strings.Fields(rest)
	if len(tokens) == 0 {
		return nil, false
	}

	alias := strings.ToLower(tokens[0])
	c, ok := r.Registry.Lookup(ModePrefixed, alias)
	if !ok {
		return nil, false
	}

	return &Invocation{
		Name:  c.Name(),
		Alias: alias,
		Mode:  ModePrefixed,
		Args:  tokens[1:],
	}, true
}
