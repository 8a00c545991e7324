package channel

import (
	"webhyper/internal/command"
	"webhyper/internal/middleware"
	"webhyper/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// LockCommand denies Send Messages to @everyone in the channel; UnlockCommand
// returns it to the inherited state rather than allowing it.
type LockCommand struct{}

func (c *LockCommand) Name() string        { return "lock" }
func (c *LockCommand) Description() string { return "Stop @everyone from sending messages here" }
func (c *LockCommand) Aliases() []string   { return []string{} }
func (c *LockCommand) Mode() cmd.Mode      { return cmd.ModePrefixed }
func (c *LockCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionManageChannels}
}
func (c *LockCommand) PermissionDenied() string { return command.Replies.DeniedChannels }

func (c *LockCommand) Run(ctx *command.MessageContext) error {
	return setEveryoneSend(ctx, c.Name(), command.OverwriteDeny, command.Replies.Locked, command.Replies.LockFailed)
}

type UnlockCommand struct{}

func (c *UnlockCommand) Name() string        { return "unlock" }
func (c *UnlockCommand) Description() string { return "Let @everyone send messages here again" }
func (c *UnlockCommand) Aliases() []string   { return []string{} }
func (c *UnlockCommand) Mode() cmd.Mode      { return cmd.ModePrefixed }
func (c *UnlockCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionManageChannels}
}
func (c *UnlockCommand) PermissionDenied() string { return command.Replies.DeniedChannels }

func (c *UnlockCommand) Run(ctx *command.MessageContext) error {
	return setEveryoneSend(ctx, c.Name(), command.OverwriteInherit, command.Replies.Unlocked, command.Replies.UnlockFailed)
}

// setEveryoneSend edits the @everyone overwrite; that role's ID is the guild ID.
func setEveryoneSend(ctx *command.MessageContext, name string, state command.Overwrite, done, failed string) error {
	m := ctx.Message
	if err := ctx.Platform.SetSendMessages(m.ChannelID, m.GuildID, state); err != nil {
		ctx.Fail(name, failed, err)
		return nil
	}
	ctx.Reply(done)
	return nil
}

func init() {
	command.RegisterCommand(
		&LockCommand{},
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
		middleware.WithGuildOnly(),
		middleware.WithRecover(),
	)
	command.RegisterCommand(
		&UnlockCommand{},
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
		middleware.WithGuildOnly(),
		middleware.WithRecover(),
	)
}
