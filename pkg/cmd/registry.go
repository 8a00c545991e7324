package cmd

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// DefaultRegistry is the global registry command packages register into from init().
var DefaultRegistry = NewRegistry()

// Registry stores commands by canonical name and alias, separately per Mode.
// It does not dispatch; the Resolver and adapters look commands up and run them.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
	lookup   map[Mode]map[string]Command
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
		lookup: map[Mode]map[string]Command{
			ModePrefixed: {},
			ModeBare:     {},
		},
	}
}

// Register adds a command under its name and aliases. Names are case-insensitive.
// Registering a second command under an already taken word panics: the
// command table is static and a collision is a programming error.
func (r *Registry) Register(c Command) {
	r.mu.Lock()
	defer r.mu.Unlock()

	table, ok := r.lookup[c.Mode()]
	if !ok {
		table = make(map[string]Command)
		r.lookup[c.Mode()] = table
	}

	words := append([]string{c.Name()}, c.Aliases()...)
	for _, w := range words {
		w = strings.ToLower(w)
		if prev, taken := table[w]; taken && prev.Name() != c.Name() {
			panic(fmt.Sprintf("cmd: %q already registered by %s", w, prev.Name()))
		}
	}
	for _, w := range words {
		table[strings.ToLower(w)] = c
	}
	r.commands[strings.ToLower(c.Name())] = c
}

// Get returns the command with the given canonical name, or nil.
func (r *Registry) Get(name string) Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.commands[strings.ToLower(name)]
}

// Lookup resolves a name or alias within one Mode.
func (r *Registry) Lookup(mode Mode, word string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.lookup[mode][strings.ToLower(word)]
	return c, ok
}

// GetAll returns all registered commands, sorted by name.
func (r *Registry) GetAll() []Command {
	r.mu.RLock()
	list := make([]Command, 0, len(r.commands))
	for _, c := range r.commands {
		list = append(list, c)
	}
	r.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		return list[i].Name() < list[j].Name()
	})
	return list
}
