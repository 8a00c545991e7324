package moderation

import (
	"fmt"
	"log"

	"webhyper/internal/command"
	"webhyper/internal/middleware"
	"webhyper/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// WarnCommand sends a member a warning in DMs. The warning counts even when
// the DM cannot be delivered.
type WarnCommand struct{}

func (c *WarnCommand) Name() string        { return "warn" }
func (c *WarnCommand) Description() string { return "Warn a member in DMs" }
func (c *WarnCommand) Aliases() []string   { return []string{} }
func (c *WarnCommand) Mode() cmd.Mode      { return cmd.ModePrefixed }
func (c *WarnCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionModerateMembers}
}
func (c *WarnCommand) PermissionDenied() string { return command.Replies.DeniedWarn }

func (c *WarnCommand) Run(ctx *command.MessageContext) error {
	p, m := ctx.Platform, ctx.Message

	target := command.FirstMentionedMember(p, m)
	if target == nil {
		ctx.Reply(command.Replies.MentionUser)
		return nil
	}
	reason := command.JoinReason(from(ctx.Args, 1))

	server := m.GuildID
	if g, err := p.Guild(m.GuildID); err == nil {
		server = g.Name
	} else {
		log.Printf("[WARN] warn: failed to load guild %s: %v", m.GuildID, err)
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Warning Received",
		Color:       command.ColorAmber,
		Description: fmt.Sprintf("**Server:** %s\n**Reason:** %s\n**Moderator:** %s", server, reason, ctx.Moderator()),
		Footer:      command.Footer(ctx.BotName),
		Timestamp:   command.Timestamp(),
	}

	tag := command.UserTag(target.User)
	if err := p.DirectEmbed(target.User.ID, embed); err != nil {
		log.Printf("[INFO] warn: could not DM %s: %v", target.User.ID, err)
		ctx.Replyf(command.Replies.WarnedClosedDM, tag)
		return nil
	}
	ctx.Replyf(command.Replies.WarnedDM, tag)
	return nil
}

func init() {
	command.RegisterCommand(
		&WarnCommand{},
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
		middleware.WithGuildOnly(),
		middleware.WithRecover(),
	)
}
