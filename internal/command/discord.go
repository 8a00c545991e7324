package command

import (
	"context"
	"fmt"
	"log"

	"webhyper/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// Discord-specific contexts (what the runtime passes when executing).

// MessageContext is handed to a command resolved from a text message.
type MessageContext struct {
	Platform Platform
	Message  *discordgo.Message
	// Args are the tokens after the command word, original casing.
	Args    []string
	Prefix  string
	BotName string
}

// Reply answers the triggering message. A failed send is logged, not returned:
// there is nobody left to tell.
func (c *MessageContext) Reply(content string) {
	if err := c.Platform.Reply(c.Message, content); err != nil {
		log.Printf("[WARN] Failed to reply in channel %s: %v", c.Message.ChannelID, err)
	}
}

// Replyf is Reply with formatting.
func (c *MessageContext) Replyf(format string, a ...interface{}) {
	c.Reply(fmt.Sprintf(format, a...))
}

// Fail logs an external failure of the named command and sends its generic
// failure reply. The error itself never reaches the user.
func (c *MessageContext) Fail(name, reply string, err error) {
	log.Printf("[ERR] %s failed in guild %s channel %s: %v", name, c.Message.GuildID, c.Message.ChannelID, err)
	c.Reply(reply)
}

// SendEmbed posts an embed in the triggering channel.
func (c *MessageContext) SendEmbed(embed *discordgo.MessageEmbed) error {
	return c.Platform.SendEmbed(c.Message.ChannelID, embed)
}

// Moderator is the tag of the invoking user.
func (c *MessageContext) Moderator() string {
	return UserTag(c.Message.Author)
}

// SlashInteractionContext is handed to a command invoked as a slash command.
type SlashInteractionContext struct {
	Event   *discordgo.InteractionCreate
	BotName string
	// Respond answers the interaction with a visible message.
	Respond func(content string) error
}

// Providers: how a command is registered with Discord.

// SlashProvider is implemented by commands that also register a slash command.
type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

// SlashHandler is implemented by commands that also answer slash interactions.
type SlashHandler interface {
	Slash(ctx *SlashInteractionContext) error
}

// DiscordMeta is exposed by the Discord adapter so middleware can read
// permissions without depending on the concrete command type.
type DiscordMeta interface {
	UserPermissions() []int64
}

// DeniedReplier lets a command choose the text sent when the invoker lacks
// permission. Commands without it get Replies.NoPermission.
type DeniedReplier interface {
	PermissionDenied() string
}

// DiscordCommand is what individual Discord commands implement.
type DiscordCommand interface {
	Name() string
	Description() string
	Aliases() []string
	Mode() cmd.Mode
	UserPermissions() []int64
	Run(ctx *MessageContext) error
}

// DiscordAdapter adapts a DiscordCommand to cmd.Command so it can live in the
// universal registry. It also implements SlashProvider, SlashHandler,
// DeniedReplier and DiscordMeta by delegating to the inner command.
type DiscordAdapter struct {
	Cmd DiscordCommand
}

func (a *DiscordAdapter) Name() string             { return a.Cmd.Name() }
func (a *DiscordAdapter) Description() string      { return a.Cmd.Description() }
func (a *DiscordAdapter) Aliases() []string        { return a.Cmd.Aliases() }
func (a *DiscordAdapter) Mode() cmd.Mode           { return a.Cmd.Mode() }
func (a *DiscordAdapter) UserPermissions() []int64 { return a.Cmd.UserPermissions() }

func (a *DiscordAdapter) Run(ctx context.Context, inv *cmd.Invocation) error {
	mc, ok := inv.Data.(*MessageContext)
	if !ok {
		return fmt.Errorf("command %s: unexpected invocation data %T", a.Cmd.Name(), inv.Data)
	}
	mc.Args = inv.Args
	return a.Cmd.Run(mc)
}

func (a *DiscordAdapter) SlashDefinition() *discordgo.ApplicationCommand {
	if sp, ok := a.Cmd.(SlashProvider); ok {
		return sp.SlashDefinition()
	}
	return nil
}

func (a *DiscordAdapter) Slash(ctx *SlashInteractionContext) error {
	if sh, ok := a.Cmd.(SlashHandler); ok {
		return sh.Slash(ctx)
	}
	return nil
}

func (a *DiscordAdapter) PermissionDenied() string {
	if dr, ok := a.Cmd.(DeniedReplier); ok {
		return dr.PermissionDenied()
	}
	return Replies.NoPermission
}

// RegisterCommand registers a Discord command with the default registry and applies middlewares.
func RegisterCommand(discordCmd DiscordCommand, mws ...cmd.Middleware) {
	RegisterCommandIn(cmd.DefaultRegistry, discordCmd, mws...)
}

// RegisterCommandIn is RegisterCommand against an explicit registry.
func RegisterCommandIn(reg *cmd.Registry, discordCmd DiscordCommand, mws ...cmd.Middleware) {
	reg.Register(cmd.Apply(&DiscordAdapter{Cmd: discordCmd}, mws...))
}

// Meta returns the adapter behind a possibly wrapped registry command.
func Meta(c cmd.Command) (*DiscordAdapter, bool) {
	a, ok := cmd.Root(c).(*DiscordAdapter)
	return a, ok
}
