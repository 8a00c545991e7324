package core

import (
	"fmt"
	"log"
	"strconv"

	"webhyper/internal/command"
	"webhyper/internal/middleware"
	"webhyper/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

type ServerInfoCommand struct{}

func (c *ServerInfoCommand) Name() string             { return "serverinfo" }
func (c *ServerInfoCommand) Description() string      { return "Show information about this server" }
func (c *ServerInfoCommand) Aliases() []string        { return []string{"info"} }
func (c *ServerInfoCommand) Mode() cmd.Mode           { return cmd.ModePrefixed }
func (c *ServerInfoCommand) UserPermissions() []int64 { return []int64{} }

func (c *ServerInfoCommand) Run(ctx *command.MessageContext) error {
	guildID := ctx.Message.GuildID

	guild, err := ctx.Platform.Guild(guildID)
	if err != nil {
		log.Printf("[ERR] serverinfo: failed to load guild %s: %v", guildID, err)
		ctx.Reply(command.Replies.InfoFailed)
		return nil
	}
	channels, err := ctx.Platform.GuildChannels(guildID)
	if err != nil {
		log.Printf("[WARN] serverinfo: failed to list channels of %s: %v", guildID, err)
	}

	members := guild.MemberCount
	if members == 0 {
		members = guild.ApproximateMemberCount
	}
	created := "unknown"
	if ts, err := discordgo.SnowflakeTimestamp(guild.ID); err == nil {
		created = fmt.Sprintf("<t:%d:D>", ts.Unix())
	}

	embed := &discordgo.MessageEmbed{
		Title: "Server Info: " + guild.Name,
		Color: command.ColorBlue,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Owner", Value: "<@" + guild.OwnerID + ">", Inline: true},
			{Name: "Created", Value: created, Inline: true},
			{Name: "Members", Value: strconv.Itoa(members), Inline: true},
			{Name: "Channels", Value: strconv.Itoa(len(channels)), Inline: true},
			{Name: "Boosts", Value: fmt.Sprintf("%d (Tier %d)", guild.PremiumSubscriptionCount, guild.PremiumTier), Inline: true},
			{Name: "ID", Value: guild.ID},
		},
		Footer:    command.Footer(ctx.BotName),
		Timestamp: command.Timestamp(),
	}
	if icon := guild.IconURL("256"); icon != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: icon}
	}
	return ctx.SendEmbed(embed)
}

func init() {
	command.RegisterCommand(
		&ServerInfoCommand{},
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
		middleware.WithGuildOnly(),
		middleware.WithRecover(),
	)
}
