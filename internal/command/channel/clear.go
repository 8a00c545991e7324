// Package channel holds the channel-level commands: bulk self-delete,
// slowmode, lock and nuke.
package channel

import (
	"log"

	"webhyper/internal/command"
	"webhyper/internal/middleware"
	"webhyper/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// clearLimit is how many of the invoker's own messages one clear removes.
const clearLimit = 20

// ClearCommand deletes the invoker's recent messages. It is a bare word, and
// everything about it is silent: denial, nothing found and failures alike.
type ClearCommand struct{}

func (c *ClearCommand) Name() string        { return "cl" }
func (c *ClearCommand) Description() string { return "Delete your own recent messages" }
func (c *ClearCommand) Aliases() []string   { return []string{"clear", "limpar"} }
func (c *ClearCommand) Mode() cmd.Mode      { return cmd.ModeBare }
func (c *ClearCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionManageMessages}
}

func (c *ClearCommand) Run(ctx *command.MessageContext) error {
	p, m := ctx.Platform, ctx.Message

	n, err := command.DeleteRecentBy(p, m.ChannelID, m.Author.ID, clearLimit)
	if err != nil {
		log.Printf("[WARN] clear failed in guild %s channel %s: %v", m.GuildID, m.ChannelID, err)
		return nil
	}
	if n == 0 {
		return nil
	}

	// Usually already gone with the batch.
	_ = p.DeleteMessage(m.ChannelID, m.ID)
	return nil
}

func init() {
	command.RegisterCommand(
		&ClearCommand{},
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
		middleware.WithGuildOnly(),
		middleware.WithRecover(),
	)
}
