package discord

import (
	"context"
	"errors"
	"fmt"
	"log"

	"webhyper/internal/command"
	"webhyper/internal/config"
	"webhyper/internal/middleware"
	"webhyper/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// Bot is a Discord bot
type Bot struct {
	dg       *discordgo.Session
	cfg      *config.Config
	registry *cmd.Registry
	resolver *cmd.Resolver
	platform command.Platform
}

// NewBot prepares a bot over reg; a nil reg means cmd.DefaultRegistry.
func NewBot(cfg *config.Config, reg *cmd.Registry) *Bot {
	if reg == nil {
		reg = cmd.DefaultRegistry
	}
	return &Bot{
		cfg:      cfg,
		registry: reg,
		resolver: cmd.NewResolver(cfg.Prefix, reg),
	}
}

// Run connects to the gateway and serves events until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	dg, err := discordgo.New("Bot " + b.cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	b.dg = dg
	b.platform = NewPlatform(dg)

	b.configureIntents()
	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onMessageCreate)
	dg.AddHandler(b.onInteractionCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	log.Println("[INFO] Shutdown signal received. Cleaning up...")
	return nil
}

// configureIntents asks only for what text commands need; message content is
// a privileged intent and must be enabled for the application.
func (b *Bot) configureIntents() {
	b.dg.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMessages |
		discordgo.IntentMessageContent
}

// onReady is called when the bot is ready
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	if b.cfg.InitSlashCommands {
		if err := b.registerCommands(context.Background(), b.cfg.SlashGuildID); err != nil {
			log.Println("[ERR] Error registering slash commands:", err)
		}
	} else {
		log.Println("[INFO] Registering slash commands skipped")
	}

	log.Printf("[INFO] Discord bot %v is running in %d guilds.", r.User.Username, len(r.Guilds))
}

// onMessageCreate is called when a message is created
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	b.handleMessage(context.Background(), b.platform, m.Message)
}

// handleMessage resolves a text message and runs the command it names. Every
// outcome a user should see has already been sent by the command; what comes
// back here is only logged.
func (b *Bot) handleMessage(ctx context.Context, p command.Platform, m *discordgo.Message) {
	if m == nil || m.Author == nil {
		return
	}
	inv, ok := b.resolver.Resolve(m.Content, m.Author.Bot)
	if !ok {
		return
	}
	c := b.registry.Get(inv.Name)
	if c == nil {
		return
	}

	inv.Data = &command.MessageContext{
		Platform: p,
		Message:  m,
		Prefix:   b.cfg.Prefix,
		BotName:  b.cfg.BotName,
	}
	if err := c.Run(ctx, inv); err != nil && !errors.Is(err, middleware.ErrDenied) {
		log.Printf("[ERR] Error running command %s: %v", inv.Name, err)
	}
}

// onInteractionCreate is called when an interaction is created
func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.handleInteraction(i, func(content string) error {
		return Respond(s, i, content)
	})
}

func (b *Bot) handleInteraction(i *discordgo.InteractionCreate, respond func(string) error) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	name := i.ApplicationCommandData().Name

	c := b.registry.Get(name)
	if c == nil {
		log.Printf("[WARN] Unknown command: %s", name)
		return
	}
	a, ok := command.Meta(c)
	if !ok {
		return
	}

	ctx := &command.SlashInteractionContext{
		Event:   i,
		BotName: b.cfg.BotName,
		Respond: respond,
	}
	if err := a.Slash(ctx); err != nil {
		log.Printf("[ERR] Error running slash command %s: %v", name, err)
	}
}
