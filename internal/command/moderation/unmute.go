package moderation

import (
	"webhyper/internal/command"
	"webhyper/internal/middleware"
	"webhyper/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

type UnmuteCommand struct{}

func (c *UnmuteCommand) Name() string        { return "unmute" }
func (c *UnmuteCommand) Description() string { return "Lift a member's timeout" }
func (c *UnmuteCommand) Aliases() []string   { return []string{"desmutar"} }
func (c *UnmuteCommand) Mode() cmd.Mode      { return cmd.ModePrefixed }
func (c *UnmuteCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionModerateMembers}
}
func (c *UnmuteCommand) PermissionDenied() string { return command.Replies.DeniedUnmute }

func (c *UnmuteCommand) Run(ctx *command.MessageContext) error {
	p, m := ctx.Platform, ctx.Message

	target := command.FirstMentionedMember(p, m)
	if target == nil {
		ctx.Reply(command.Replies.MentionUser)
		return nil
	}
	// An expired timeout is left on the member record until it is cleared.
	until := target.CommunicationDisabledUntil
	if until == nil || !until.After(command.Now()) {
		ctx.Reply(command.Replies.NotMuted)
		return nil
	}

	if err := p.Timeout(m.GuildID, target.User.ID, nil, ""); err != nil {
		ctx.Fail(c.Name(), command.Replies.UnmuteFailed, err)
		return nil
	}

	embed := command.PunishmentRecord{
		Target:    target.User,
		Reason:    command.Replies.UnmutedReason,
		Action:    "User Unmuted",
		Color:     command.ColorGreen,
		Moderator: ctx.Moderator(),
	}.Embed(ctx.BotName)
	if err := ctx.SendEmbed(embed); err != nil {
		ctx.Fail(c.Name(), command.Replies.UnmuteFailed, err)
	}
	return nil
}

func init() {
	command.RegisterCommand(
		&UnmuteCommand{},
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
		middleware.WithGuildOnly(),
		middleware.WithRecover(),
	)
}
