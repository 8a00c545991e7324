package moderation

import (
	"webhyper/internal/command"
	"webhyper/internal/middleware"
	"webhyper/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

type BanCommand struct{}

func (c *BanCommand) Name() string        { return "ban" }
func (c *BanCommand) Description() string { return "Permanently ban a member" }
func (c *BanCommand) Aliases() []string   { return []string{} }
func (c *BanCommand) Mode() cmd.Mode      { return cmd.ModePrefixed }
func (c *BanCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionBanMembers}
}
func (c *BanCommand) PermissionDenied() string { return command.Replies.DeniedBan }

func (c *BanCommand) Run(ctx *command.MessageContext) error {
	p, m := ctx.Platform, ctx.Message

	target := command.FirstMentionedMember(p, m)
	if target == nil {
		ctx.Reply(command.Replies.MentionUser)
		return nil
	}
	h, err := command.LoadHierarchy(p, m.GuildID)
	if err != nil {
		ctx.Fail(c.Name(), command.Replies.BanFailed, err)
		return nil
	}
	if !h.Bannable(target) {
		ctx.Reply(command.Replies.CannotBan)
		return nil
	}
	reason := command.JoinReason(from(ctx.Args, 1))

	if _, err := command.DeleteRecentBy(p, m.ChannelID, target.User.ID, cleanupLimit); err != nil {
		ctx.Fail(c.Name(), command.Replies.BanFailed, err)
		return nil
	}
	if err := p.Ban(m.GuildID, target.User.ID, reason); err != nil {
		ctx.Fail(c.Name(), command.Replies.BanFailed, err)
		return nil
	}

	embed := command.PunishmentRecord{
		Target:    target.User,
		Reason:    reason,
		Action:    "User Permanently Banned",
		Color:     command.ColorRed,
		Moderator: ctx.Moderator(),
	}.Embed(ctx.BotName)
	if err := ctx.SendEmbed(embed); err != nil {
		ctx.Fail(c.Name(), command.Replies.BanFailed, err)
	}
	return nil
}

func init() {
	command.RegisterCommand(
		&BanCommand{},
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
		middleware.WithGuildOnly(),
		middleware.WithRecover(),
	)
}
