// Package cmd provides a transport-agnostic command core: a command is something
// with a name, aliases, an invocation mode, and Run(ctx, invocation). How the
// invocation reaches it (Discord message, slash interaction, tests) is defined
// by adapters that wrap this.
package cmd

import "context"

// Mode says how a command is invoked from plain text.
type Mode int

const (
	// ModePrefixed commands are only recognised after the configured prefix.
	ModePrefixed Mode = iota
	// ModeBare commands are recognised by their first word alone, no prefix.
	ModeBare
)

func (m Mode) String() string {
	switch m {
	case ModeBare:
		return "bare"
	default:
		return "prefixed"
	}
}

// Invocation is the result of resolving one inbound text. Adapters set Data to
// their own context (e.g. the Discord message context) before running it.
type Invocation struct {
	// Name is the canonical name of the resolved command.
	Name string
	// Alias is the word the user actually typed.
	Alias string
	Mode  Mode
	// Args holds the residual tokens with their original casing.
	Args []string
	Data interface{}
}

// Arg returns the i-th argument or "" when absent.
func (inv *Invocation) Arg(i int) string {
	if inv == nil || i < 0 || i >= len(inv.Args) {
		return ""
	}
	return inv.Args[i]
}

// Command is the universal contract: identity plus execution. Permissions and
// transport-specific registration stay in adapters.
type Command interface {
	Name() string
	Description() string
	Aliases() []string
	Mode() Mode
	Run(ctx context.Context, inv *Invocation) error
}
