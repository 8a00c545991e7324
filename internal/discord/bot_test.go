package discord

import (
	"context"
	"strings"
	"testing"

	"webhyper/internal/command"
	"webhyper/internal/command/commandtest"
	"webhyper/internal/config"
	"webhyper/internal/middleware"
	"webhyper/pkg/cmd"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoCommand struct {
	perms []int64
	ran   int
}

func (c *echoCommand) Name() string             { return "echo" }
func (c *echoCommand) Description() string      { return "Repeat the arguments" }
func (c *echoCommand) Aliases() []string        { return []string{"say"} }
func (c *echoCommand) Mode() cmd.Mode           { return cmd.ModePrefixed }
func (c *echoCommand) UserPermissions() []int64 { return c.perms }

func (c *echoCommand) Run(ctx *command.MessageContext) error {
	c.ran++
	ctx.Reply(strings.Join(ctx.Args, " "))
	return nil
}

func (c *echoCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{Name: c.Name(), Description: c.Description()}
}

func (c *echoCommand) Slash(ctx *command.SlashInteractionContext) error {
	return ctx.Respond("echo from " + ctx.BotName)
}

func newTestBot(c *echoCommand) *Bot {
	reg := cmd.NewRegistry()
	command.RegisterCommandIn(reg, c,
		middleware.WithUserPermissionCheck(),
		middleware.WithGuildOnly(),
		middleware.WithRecover(),
	)
	return NewBot(&config.Config{Prefix: commandtest.Prefix, BotName: commandtest.BotName}, reg)
}

func TestHandleMessageRunsResolvedCommand(t *testing.T) {
	p := commandtest.New()
	p.AddMember("42", "mod")
	echo := &echoCommand{}
	b := newTestBot(echo)

	b.handleMessage(context.Background(), p, p.Post(commandtest.ChannelID, "42", "W! Say Hello There"))

	require.Equal(t, 1, echo.ran)
	out := p.Outbound()
	require.Len(t, out, 1)
	assert.Equal(t, "Hello There", out[0].Content)
}

func TestHandleMessageIgnores(t *testing.T) {
	cases := map[string]struct {
		author  string
		content string
	}{
		"bot author":      {commandtest.BotID, "w!echo hi"},
		"no prefix":       {"42", "echo hi"},
		"unknown command": {"42", "w!nothing"},
		"prefix only":     {"42", "w!"},
		"empty":           {"42", ""},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			p := commandtest.New()
			echo := &echoCommand{}
			b := newTestBot(echo)

			b.handleMessage(context.Background(), p, p.Post(commandtest.ChannelID, tc.author, tc.content))

			assert.Zero(t, echo.ran)
			assert.Empty(t, p.Outbound())
		})
	}
}

func TestHandleMessageDenied(t *testing.T) {
	p := commandtest.New()
	echo := &echoCommand{perms: []int64{discordgo.PermissionManageMessages}}
	b := newTestBot(echo)

	b.handleMessage(context.Background(), p, p.Post(commandtest.ChannelID, "42", "w!echo hi"))

	assert.Zero(t, echo.ran)
	out := p.Outbound()
	require.Len(t, out, 1)
	assert.Equal(t, command.Replies.NoPermission, out[0].Content)
}

func TestHandleMessageOutsideGuild(t *testing.T) {
	p := commandtest.New()
	echo := &echoCommand{}
	b := newTestBot(echo)

	msg := p.Post(commandtest.ChannelID, "42", "w!echo hi")
	msg.GuildID = ""
	b.handleMessage(context.Background(), p, msg)

	assert.Zero(t, echo.ran)
	assert.Empty(t, p.Outbound())
}

func TestHandleMessageNil(t *testing.T) {
	b := newTestBot(&echoCommand{})
	assert.NotPanics(t, func() {
		b.handleMessage(context.Background(), commandtest.New(), nil)
		b.handleMessage(context.Background(), commandtest.New(), &discordgo.Message{Content: "w!echo"})
	})
}

func slashEvent(typ discordgo.InteractionType, name string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type: typ,
		Data: discordgo.ApplicationCommandInteractionData{Name: name},
	}}
}

func TestHandleInteraction(t *testing.T) {
	b := newTestBot(&echoCommand{})

	var got []string
	respond := func(content string) error {
		got = append(got, content)
		return nil
	}

	b.handleInteraction(slashEvent(discordgo.InteractionApplicationCommand, "echo"), respond)
	b.handleInteraction(slashEvent(discordgo.InteractionApplicationCommand, "missing"), respond)
	b.handleInteraction(&discordgo.InteractionCreate{Interaction: &discordgo.Interaction{Type: discordgo.InteractionPing}}, respond)

	assert.Equal(t, []string{"echo from " + commandtest.BotName}, got)
}
