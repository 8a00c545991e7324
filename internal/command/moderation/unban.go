package moderation

import (
	"fmt"

	"webhyper/internal/command"
	"webhyper/internal/middleware"
	"webhyper/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// UnbanCommand lifts a ban by raw user ID; the user is no longer in the
// guild, so there is nothing to mention.
type UnbanCommand struct{}

func (c *UnbanCommand) Name() string        { return "unban" }
func (c *UnbanCommand) Description() string { return "Lift a ban by user ID" }
func (c *UnbanCommand) Aliases() []string   { return []string{"desbanir"} }
func (c *UnbanCommand) Mode() cmd.Mode      { return cmd.ModePrefixed }
func (c *UnbanCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionBanMembers}
}
func (c *UnbanCommand) PermissionDenied() string { return command.Replies.DeniedUnban }

func (c *UnbanCommand) Run(ctx *command.MessageContext) error {
	p, m := ctx.Platform, ctx.Message

	if len(ctx.Args) == 0 {
		ctx.Replyf(command.Replies.UnbanUsage, ctx.Prefix)
		return nil
	}
	userID := ctx.Args[0]

	// Not banned and API failure get the same reply.
	ban, err := p.GuildBan(m.GuildID, userID)
	if err != nil {
		ctx.Fail(c.Name(), command.Replies.UnbanFailed, err)
		return nil
	}
	reason := command.JoinReason(from(ctx.Args, 1))
	if err := p.Unban(m.GuildID, userID, reason); err != nil {
		ctx.Fail(c.Name(), command.Replies.UnbanFailed, err)
		return nil
	}

	embed := &discordgo.MessageEmbed{
		Title: "User Unbanned",
		Color: command.ColorGreen,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "User", Value: fmt.Sprintf("%s (%s)", command.UserTag(ban.User), userID), Inline: true},
			{Name: "Moderator", Value: ctx.Moderator(), Inline: true},
			{Name: "Unban Reason", Value: reason},
		},
		Footer:    command.Footer(ctx.BotName),
		Timestamp: command.Timestamp(),
	}
	if err := ctx.SendEmbed(embed); err != nil {
		ctx.Fail(c.Name(), command.Replies.UnbanFailed, err)
	}
	return nil
}

func init() {
	command.RegisterCommand(
		&UnbanCommand{},
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
		middleware.WithGuildOnly(),
		middleware.WithRecover(),
	)
}
