package middleware

import (
	"context"

	"webhyper/internal/command"
	"webhyper/pkg/cmd"
)

// WithGuildOnly drops invocations that did not come from a guild channel.
func WithGuildOnly() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			if v, ok := inv.Data.(*command.MessageContext); ok && v.Message.GuildID == "" {
				return nil
			}
			return c.Run(ctx, inv)
		})
	}
}
