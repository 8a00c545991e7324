package discord

import (
	"context"
	"fmt"
	"log"
	"time"

	"webhyper/internal/command"
	"webhyper/pkg/cmd"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"
)

// commandAPI is the part of *discordgo.Session the slash sync talks to.
type commandAPI interface {
	ApplicationCommands(appID, guildID string, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
	ApplicationCommandCreate(appID, guildID string, c *discordgo.ApplicationCommand, options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error)
	ApplicationCommandDelete(appID, guildID, cmdID string, options ...discordgo.RequestOption) error
}

// registrationRate keeps creates and deletes well under Discord's global limit.
var registrationRate = rate.Every(time.Second / 40)

// registerCommands syncs slash commands with Discord. An empty guildID means
// global commands.
func (b *Bot) registerCommands(ctx context.Context, guildID string) error {
	appID, err := b.appID()
	if err != nil {
		return err
	}
	s := &slashSync{
		api:     b.dg,
		appID:   appID,
		guildID: guildID,
		limiter: rate.NewLimiter(registrationRate, 1),
	}
	return s.run(ctx, buildCommandDefinitions(b.registry))
}

type slashSync struct {
	api     commandAPI
	appID   string
	guildID string
	limiter *rate.Limiter
}

// run deletes remote commands that are no longer defined locally and creates
// the ones whose definition changed. Individual failures are logged and the
// sync carries on.
func (s *slashSync) run(ctx context.Context, local []*discordgo.ApplicationCommand) error {
	remote, err := s.api.ApplicationCommands(s.appID, s.guildID)
	if err != nil {
		return fmt.Errorf("list application commands: %w", err)
	}
	remoteByName := make(map[string]*discordgo.ApplicationCommand, len(remote))
	for _, c := range remote {
		remoteByName[c.Name] = c
	}

	if err := s.deleteObsolete(ctx, remoteByName, local); err != nil {
		return err
	}
	return s.upsertChanged(ctx, remoteByName, local)
}

// deleteObsolete removes commands from Discord that are no longer in the local registry.
func (s *slashSync) deleteObsolete(ctx context.Context, remote map[string]*discordgo.ApplicationCommand, local []*discordgo.ApplicationCommand) error {
	localNames := make(map[string]struct{}, len(local))
	for _, d := range local {
		localNames[d.Name] = struct{}{}
	}

	for name, rc := range remote {
		if _, exists := localNames[name]; exists {
			continue
		}
		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}
		log.Printf("[INFO] [%s] Deleting obsolete command: %s", s.scope(), name)
		if err := s.api.ApplicationCommandDelete(s.appID, s.guildID, rc.ID); err != nil {
			log.Printf("[ERR] [%s] Failed to delete %s: %v", s.scope(), name, err)
		}
	}
	return nil
}

// upsertChanged creates commands that are missing remotely or whose hash differs.
func (s *slashSync) upsertChanged(ctx context.Context, remote map[string]*discordgo.ApplicationCommand, defs []*discordgo.ApplicationCommand) error {
	var changed []*discordgo.ApplicationCommand
	for _, d := range defs {
		rc, ok := remote[d.Name]
		if !ok || hashCommand(rc) != hashCommand(d) {
			changed = append(changed, d)
		}
	}
	if len(changed) == 0 {
		log.Printf("[INFO] [%s] Slash commands up to date", s.scope())
		return nil
	}

	log.Printf("[INFO] [%s] Registering %d changed command(s)...", s.scope(), len(changed))
	for _, d := range changed {
		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}
		if _, err := s.api.ApplicationCommandCreate(s.appID, s.guildID, d); err != nil {
			log.Printf("[ERR] [%s] Failed to register %s: %v", s.scope(), d.Name, err)
		} else {
			log.Printf("[DONE] [%s] Registered: %s", s.scope(), d.Name)
		}
	}
	return nil
}

func (s *slashSync) scope() string {
	if s.guildID == "" {
		return "global"
	}
	return s.guildID
}

// buildCommandDefinitions returns ApplicationCommand definitions for all registered commands.
func buildCommandDefinitions(reg *cmd.Registry) []*discordgo.ApplicationCommand {
	var defs []*discordgo.ApplicationCommand
	for _, c := range reg.GetAll() {
		if def := commandDefinition(c); def != nil {
			defs = append(defs, def)
		}
	}
	return defs
}

// commandDefinition extracts the ApplicationCommand definition from a registered command,
// walking through middleware wrappers via cmd.Root.
func commandDefinition(c cmd.Command) *discordgo.ApplicationCommand {
	slash, ok := cmd.Root(c).(command.SlashProvider)
	if !ok {
		return nil
	}
	def := slash.SlashDefinition()
	if def == nil {
		return nil
	}
	if def.Type == 0 {
		def.Type = discordgo.ChatApplicationCommand
	}
	return def
}

// appID returns the bot's application ID, fetching from Discord if not cached in State.
func (b *Bot) appID() (string, error) {
	if b.dg.State != nil && b.dg.State.User != nil && b.dg.State.User.ID != "" {
		return b.dg.State.User.ID, nil
	}
	u, err := b.dg.User("@me")
	if err != nil {
		return "", fmt.Errorf("failed to fetch bot user: %w", err)
	}
	return u.ID, nil
}
