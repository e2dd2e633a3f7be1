package cmd

import "context"

// Unwrappable is implemented by wrapped commands so adapters can reach the
// underlying command (e.g. to type-assert to Matcher or a failure replier).
type Unwrappable interface {
	Command
	Unwrap() Command
}

// Wrapped decorates a command with a custom Run while keeping its identity.
type Wrapped struct {
	Inner   Command
	RunFunc func(ctx context.Context, inv *Invocation) error
}

func (w *Wrapped) Name() string        { return w.Inner.Name() }
func (w *Wrapped) Description() string { return w.Inner.Description() }
func (w *Wrapped) Unwrap() Command     { return w.Inner }

func (w *Wrapped) Run(ctx context.Context, inv *Invocation) error {
	if w.RunFunc == nil {
		return w.Inner.Run(ctx, inv)
	}
	return w.RunFunc(ctx, inv)
}

// Wrap returns a command that runs run instead of c.Run. Middleware builds on this.
func Wrap(c Command, run func(ctx context.Context, inv *Invocation) error) Command {
	return &Wrapped{Inner: c, RunFunc: run}
}

// Root unwraps c down to the command that was originally registered.
func Root(c Command) Command {
	for {
		u, ok := c.(Unwrappable)
		if !ok {
			return c
		}
		c = u.Unwrap()
	}
}
