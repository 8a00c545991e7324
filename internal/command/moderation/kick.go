package moderation

import (
	"webhyper/internal/command"
	"webhyper/internal/middleware"
	"webhyper/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

type KickCommand struct{}

func (c *KickCommand) Name() string        { return "kick" }
func (c *KickCommand) Description() string { return "Kick a member from the server" }
func (c *KickCommand) Aliases() []string   { return []string{} }
func (c *KickCommand) Mode() cmd.Mode      { return cmd.ModePrefixed }
func (c *KickCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionKickMembers}
}
func (c *KickCommand) PermissionDenied() string { return command.Replies.DeniedKick }

func (c *KickCommand) Run(ctx *command.MessageContext) error {
	p, m := ctx.Platform, ctx.Message

	target := command.FirstMentionedMember(p, m)
	if target == nil {
		ctx.Reply(command.Replies.MentionUser)
		return nil
	}
	h, err := command.LoadHierarchy(p, m.GuildID)
	if err != nil {
		ctx.Fail(c.Name(), command.Replies.KickFailed, err)
		return nil
	}
	if !h.Kickable(target) {
		ctx.Reply(command.Replies.CannotKick)
		return nil
	}
	reason := command.JoinReason(from(ctx.Args, 1))

	if err := p.Kick(m.GuildID, target.User.ID, reason); err != nil {
		ctx.Fail(c.Name(), command.Replies.KickFailed, err)
		return nil
	}

	embed := command.PunishmentRecord{
		Target:    target.User,
		Reason:    reason,
		Action:    "User Kicked from Server",
		Color:     command.ColorOrange,
		Moderator: ctx.Moderator(),
	}.Embed(ctx.BotName)
	if err := ctx.SendEmbed(embed); err != nil {
		ctx.Fail(c.Name(), command.Replies.KickFailed, err)
	}
	return nil
}

func init() {
	command.RegisterCommand(
		&KickCommand{},
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
		middleware.WithGuildOnly(),
		middleware.WithRecover(),
	)
}
