package channel

import (
	"fmt"

	"webhyper/internal/command"
	"webhyper/internal/middleware"
	"webhyper/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// NukeCommand replaces the channel with a fresh copy in the same spot.
// Steps are not rolled back: a failed delete leaves both channels behind.
type NukeCommand struct{}

func (c *NukeCommand) Name() string        { return "nuke" }
func (c *NukeCommand) Description() string { return "Recreate this channel, wiping its history" }
func (c *NukeCommand) Aliases() []string   { return []string{} }
func (c *NukeCommand) Mode() cmd.Mode      { return cmd.ModePrefixed }
func (c *NukeCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionManageChannels}
}

func (c *NukeCommand) Run(ctx *command.MessageContext) error {
	if err := nuke(ctx.Platform, ctx.Message.ChannelID); err != nil {
		ctx.Fail(c.Name(), command.Replies.NukeFailed, err)
	}
	return nil
}

func nuke(p command.Platform, channelID string) error {
	old, err := p.Channel(channelID)
	if err != nil {
		return fmt.Errorf("load channel: %w", err)
	}
	fresh, err := p.CloneChannel(old)
	if err != nil {
		return fmt.Errorf("clone channel: %w", err)
	}
	if err := p.DeleteChannel(old.ID); err != nil {
		return fmt.Errorf("delete original %s (clone %s kept): %w", old.ID, fresh.ID, err)
	}
	if err := p.MoveChannel(fresh.ID, old.Position, old.ParentID); err != nil {
		return fmt.Errorf("move clone %s: %w", fresh.ID, err)
	}
	if err := p.Send(fresh.ID, command.Replies.Nuked); err != nil {
		return fmt.Errorf("announce in %s: %w", fresh.ID, err)
	}
	return nil
}

func init() {
	command.RegisterCommand(
		&NukeCommand{},
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
		middleware.WithGuildOnly(),
		middleware.WithRecover(),
	)
}
