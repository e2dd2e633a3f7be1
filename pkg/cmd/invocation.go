// Package cmd provides a transport-agnostic command core: a command is something
// with a name, description, and Run(ctx, invocation). How it is matched and
// dispatched (chat prefix, CLI) is defined by adapters that wrap this.
package cmd

import (
	"context"
	"strings"
)

// Invocation carries the minimal input any command runner can pass: the raw
// input, its arguments and an opaque payload. Adapters set Data to their
// context (e.g. a chat message plus the services needed to answer it).
type Invocation struct {
	Input string
	Args  []string
	Data  interface{}
}

// NewInvocation splits input on whitespace; the first field is the command
// word and is not part of Args.
func NewInvocation(input string, data interface{}) *Invocation {
	fields := strings.Fields(input)
	inv := &Invocation{Input: input, Data: data}
	if len(fields) > 1 {
		inv.Args = fields[1:]
	}
	return inv
}

// Command is the universal contract: identity plus execution. Matching rules,
// failure replies and transport-specific details stay in adapters.
type Command interface {
	Name() string
	Description() string
	Run(ctx context.Context, inv *Invocation) error
}

// Matcher is implemented by commands triggered by free text.
type Matcher interface {
	Match(input string) bool
}

// Exact matches input equal to word.
type Exact string

func (e Exact) Match(input string) bool { return input == string(e) }

// Prefix matches input starting with word.
type Prefix string

func (p Prefix) Match(input string) bool { return strings.HasPrefix(input, string(p)) }
