package middleware

import (
	"context"
	"errors"
	"log"
	"time"

	"webhyper/internal/command"
	"webhyper/internal/metrics"
	"webhyper/pkg/cmd"
)

// WithCommandLogger logs each invocation and reports it to metrics.Default.
func WithCommandLogger() cmd.Middleware {
	return WithCommandLoggerTo(metrics.Default)
}

// WithCommandLoggerTo is WithCommandLogger with an explicit metrics set.
func WithCommandLoggerTo(m *metrics.Metrics) cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			start := time.Now()
			err := c.Run(ctx, inv)
			took := time.Since(start)

			outcome := metrics.OutcomeOK
			switch {
			case errors.Is(err, ErrDenied):
				outcome = metrics.OutcomeDenied
			case err != nil:
				outcome = metrics.OutcomeError
			}
			m.Observe(c.Name(), outcome, took)

			if v, ok := inv.Data.(*command.MessageContext); ok {
				msg := v.Message
				log.Printf("[INFO] %s ran %s (%s) in guild %s channel %s: %s in %s",
					command.UserTag(msg.Author), c.Name(), inv.Mode, msg.GuildID, msg.ChannelID, outcome, took.Round(time.Millisecond))
			}
			return err
		})
	}
}
