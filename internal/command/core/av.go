package core

import (
	"webhyper/internal/command"
	"webhyper/internal/middleware"
	"webhyper/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// AvatarCommand shows a member's avatar, or the invoker's when nobody is mentioned.
type AvatarCommand struct{}

func (c *AvatarCommand) Name() string             { return "av" }
func (c *AvatarCommand) Description() string      { return "Show a user's avatar" }
func (c *AvatarCommand) Aliases() []string        { return []string{} }
func (c *AvatarCommand) Mode() cmd.Mode           { return cmd.ModePrefixed }
func (c *AvatarCommand) UserPermissions() []int64 { return []int64{} }

func (c *AvatarCommand) Run(ctx *command.MessageContext) error {
	user := ctx.Message.Author
	if member := command.FirstMentionedMember(ctx.Platform, ctx.Message); member != nil {
		user = member.User
	}

	embed := &discordgo.MessageEmbed{
		Title:  "Avatar of " + command.UserTag(user),
		Color:  command.ColorPurple,
		Image:  &discordgo.MessageEmbedImage{URL: user.AvatarURL("1024")},
		Footer: &discordgo.MessageEmbedFooter{Text: "Click to enlarge"},
	}
	return ctx.SendEmbed(embed)
}

func init() {
	command.RegisterCommand(
		&AvatarCommand{},
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
		middleware.WithGuildOnly(),
		middleware.WithRecover(),
	)
}
