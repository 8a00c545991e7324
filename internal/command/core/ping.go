package core

import (
	"webhyper/internal/command"
	"webhyper/internal/middleware"
	"webhyper/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

type PingCommand struct{}

func (c *PingCommand) Name() string             { return "ping" }
func (c *PingCommand) Description() string      { return "Check that the bot is online" }
func (c *PingCommand) Aliases() []string        { return []string{} }
func (c *PingCommand) Mode() cmd.Mode           { return cmd.ModePrefixed }
func (c *PingCommand) UserPermissions() []int64 { return []int64{} }

func (c *PingCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *PingCommand) Run(ctx *command.MessageContext) error {
	ctx.Reply(online(ctx.BotName))
	return nil
}

func (c *PingCommand) Slash(ctx *command.SlashInteractionContext) error {
	return ctx.Respond(online(ctx.BotName))
}

func online(botName string) string {
	return botName + " online!"
}

func init() {
	command.RegisterCommand(
		&PingCommand{},
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
		middleware.WithGuildOnly(),
		middleware.WithRecover(),
	)
}
