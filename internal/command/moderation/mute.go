package moderation

import (
	"errors"

	"webhyper/internal/command"
	"webhyper/internal/middleware"
	"webhyper/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// MuteCommand times a member out for a bounded duration.
type MuteCommand struct{}

func (c *MuteCommand) Name() string        { return "mute" }
func (c *MuteCommand) Description() string { return "Time out a member (s/m/h/d, up to 28 days)" }
func (c *MuteCommand) Aliases() []string   { return []string{"timeout"} }
func (c *MuteCommand) Mode() cmd.Mode      { return cmd.ModePrefixed }
func (c *MuteCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionModerateMembers}
}
func (c *MuteCommand) PermissionDenied() string { return command.Replies.DeniedMute }

func (c *MuteCommand) Run(ctx *command.MessageContext) error {
	p, m := ctx.Platform, ctx.Message

	target := command.FirstMentionedMember(p, m)
	if target == nil {
		ctx.Reply(command.Replies.MentionUser)
		return nil
	}
	h, err := command.LoadHierarchy(p, m.GuildID)
	if err != nil {
		ctx.Fail(c.Name(), command.Replies.MuteFailed, err)
		return nil
	}
	if !h.Moderatable(target) {
		ctx.Reply(command.Replies.CannotMute)
		return nil
	}

	// The duration follows the mention and is echoed back as typed.
	var raw string
	if len(ctx.Args) > 1 {
		raw = ctx.Args[1]
	}
	d, err := command.ParseTimeout(raw)
	switch {
	case errors.Is(err, command.ErrMissingDuration):
		ctx.Reply(command.Replies.MissingTime)
		return nil
	case errors.Is(err, command.ErrDurationTooLong):
		ctx.Reply(command.Replies.MaxTimeout)
		return nil
	case err != nil:
		ctx.Reply(command.Replies.InvalidTime)
		return nil
	}
	reason := command.JoinReason(from(ctx.Args, 2))

	if _, err := command.DeleteRecentBy(p, m.ChannelID, target.User.ID, cleanupLimit); err != nil {
		ctx.Fail(c.Name(), command.Replies.MuteFailed, err)
		return nil
	}
	until := command.Now().Add(d)
	if err := p.Timeout(m.GuildID, target.User.ID, &until, reason); err != nil {
		ctx.Fail(c.Name(), command.Replies.MuteFailed, err)
		return nil
	}

	embed := command.PunishmentRecord{
		Target:    target.User,
		Reason:    reason,
		Action:    "User Muted",
		Color:     command.ColorBlue,
		Moderator: ctx.Moderator(),
		Duration:  raw,
	}.Embed(ctx.BotName)
	if err := ctx.SendEmbed(embed); err != nil {
		ctx.Fail(c.Name(), command.Replies.MuteFailed, err)
	}
	return nil
}

func init() {
	command.RegisterCommand(
		&MuteCommand{},
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
		middleware.WithGuildOnly(),
		middleware.WithRecover(),
	)
}
