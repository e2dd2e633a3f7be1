// Package middleware holds the cmd.Middleware chain applied to chat commands.
package middleware

import (
	"context"
	"fmt"
	"log"

	"babble-bot/internal/command"
	"babble-bot/internal/observability"
	"babble-bot/pkg/cmd"
)

// WithCommandLogger wraps a command to log its execution
func WithCommandLogger() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			err := c.Run(ctx, inv)

			if v, ok := inv.Data.(*command.MessageContext); ok && v.Message != nil {
				m := v.Message
				if err != nil {
					log.Printf("[CMD] %s (%s) ran %s in guild %s: failed: %v", m.Author.Username, m.Author.ID, c.Name(), m.GuildID, err)
				} else {
					log.Printf("[CMD] %s (%s) ran %s in guild %s", m.Author.Username, m.Author.ID, c.Name(), m.GuildID)
				}
			}

			return err
		})
	}
}

// WithRecover turns a panic inside a command into an error, so one broken
// handler cannot take the bot down.
func WithRecover() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("command %s panicked: %v", c.Name(), r)
				}
			}()
			return c.Run(ctx, inv)
		})
	}
}

// WithMetrics counts command runs by result.
func WithMetrics(m *observability.Metrics) cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			err := c.Run(ctx, inv)
			m.Command(c.Name(), err)
			return err
		})
	}
}
