package discord

import (
	"fmt"
	"time"

	"webhyper/internal/command"

	"github.com/bwmarrin/discordgo"
)

// sessionPlatform implements command.Platform over a live session. Reads
// prefer the state cache where it is kept current by the gateway; member
// records always come from REST so timeouts and roles are fresh.
type sessionPlatform struct {
	s *discordgo.Session
}

// NewPlatform wraps a session as the capability handle commands receive.
func NewPlatform(s *discordgo.Session) command.Platform {
	return &sessionPlatform{s: s}
}

func auditReason(reason string) []discordgo.RequestOption {
	if reason == "" {
		return nil
	}
	return []discordgo.RequestOption{discordgo.WithAuditLogReason(reason)}
}

func (p *sessionPlatform) BotUser() (*discordgo.User, error) {
	if p.s.State != nil && p.s.State.User != nil {
		return p.s.State.User, nil
	}
	return p.s.User("@me")
}

func (p *sessionPlatform) Guild(guildID string) (*discordgo.Guild, error) {
	if g, err := p.s.State.Guild(guildID); err == nil && g.MemberCount > 0 {
		return g, nil
	}
	return p.s.GuildWithCounts(guildID)
}

func (p *sessionPlatform) GuildRoles(guildID string) ([]*discordgo.Role, error) {
	if g, err := p.s.State.Guild(guildID); err == nil && len(g.Roles) > 0 {
		return g.Roles, nil
	}
	return p.s.GuildRoles(guildID)
}

func (p *sessionPlatform) GuildChannels(guildID string) ([]*discordgo.Channel, error) {
	if g, err := p.s.State.Guild(guildID); err == nil && len(g.Channels) > 0 {
		return g.Channels, nil
	}
	return p.s.GuildChannels(guildID)
}

func (p *sessionPlatform) GuildMember(guildID, userID string) (*discordgo.Member, error) {
	m, err := p.s.GuildMember(guildID, userID)
	if err != nil {
		return nil, err
	}
	if m.GuildID == "" {
		m.GuildID = guildID
	}
	return m, nil
}

func (p *sessionPlatform) Channel(channelID string) (*discordgo.Channel, error) {
	if c, err := p.s.State.Channel(channelID); err == nil {
		return c, nil
	}
	return p.s.Channel(channelID)
}

func (p *sessionPlatform) MemberPermissions(channelID, userID string) (int64, error) {
	return p.s.UserChannelPermissions(userID, channelID)
}

func (p *sessionPlatform) Ban(guildID, userID, reason string) error {
	return p.s.GuildBanCreateWithReason(guildID, userID, reason, 0)
}

func (p *sessionPlatform) Kick(guildID, userID, reason string) error {
	return p.s.GuildMemberDeleteWithReason(guildID, userID, reason)
}

func (p *sessionPlatform) Timeout(guildID, userID string, until *time.Time, reason string) error {
	return p.s.GuildMemberTimeout(guildID, userID, until, auditReason(reason)...)
}

func (p *sessionPlatform) AddRole(guildID, userID, roleID string) error {
	return p.s.GuildMemberRoleAdd(guildID, userID, roleID)
}

func (p *sessionPlatform) RemoveRole(guildID, userID, roleID string) error {
	return p.s.GuildMemberRoleRemove(guildID, userID, roleID)
}

func (p *sessionPlatform) GuildBan(guildID, userID string) (*discordgo.GuildBan, error) {
	return p.s.GuildBan(guildID, userID)
}

func (p *sessionPlatform) Unban(guildID, userID, reason string) error {
	return p.s.GuildBanDelete(guildID, userID, auditReason(reason)...)
}

func (p *sessionPlatform) SetRateLimit(channelID string, seconds int) error {
	_, err := p.s.ChannelEdit(channelID, &discordgo.ChannelEdit{RateLimitPerUser: &seconds})
	return err
}

// SetSendMessages changes only the Send Messages bit of the role's overwrite,
// keeping whatever else the overwrite allows or denies.
func (p *sessionPlatform) SetSendMessages(channelID, roleID string, state command.Overwrite) error {
	ch, err := p.Channel(channelID)
	if err != nil {
		return fmt.Errorf("load channel %s: %w", channelID, err)
	}
	allow, deny := command.SendOverwrite(ch.PermissionOverwrites, roleID, state)
	return p.s.ChannelPermissionSet(channelID, roleID, discordgo.PermissionOverwriteTypeRole, allow, deny)
}

func (p *sessionPlatform) RecentMessages(channelID string, limit int) ([]*discordgo.Message, error) {
	return p.s.ChannelMessages(channelID, limit, "", "", "")
}

func (p *sessionPlatform) BulkDelete(channelID string, messageIDs []string) error {
	return p.s.ChannelMessagesBulkDelete(channelID, messageIDs)
}

func (p *sessionPlatform) DeleteMessage(channelID, messageID string) error {
	return p.s.ChannelMessageDelete(channelID, messageID)
}

func (p *sessionPlatform) CloneChannel(ch *discordgo.Channel) (*discordgo.Channel, error) {
	return p.s.GuildChannelCreateComplex(ch.GuildID, cloneData(ch))
}

// cloneData is the create payload that recreates ch with the same settings.
func cloneData(ch *discordgo.Channel) discordgo.GuildChannelCreateData {
	return discordgo.GuildChannelCreateData{
		Name:                 ch.Name,
		Type:                 ch.Type,
		Topic:                ch.Topic,
		Bitrate:              ch.Bitrate,
		UserLimit:            ch.UserLimit,
		RateLimitPerUser:     ch.RateLimitPerUser,
		Position:             ch.Position,
		PermissionOverwrites: ch.PermissionOverwrites,
		ParentID:             ch.ParentID,
		NSFW:                 ch.NSFW,
	}
}

func (p *sessionPlatform) DeleteChannel(channelID string) error {
	_, err := p.s.ChannelDelete(channelID)
	return err
}

func (p *sessionPlatform) MoveChannel(channelID string, position int, parentID string) error {
	_, err := p.s.ChannelEdit(channelID, &discordgo.ChannelEdit{Position: &position, ParentID: parentID})
	return err
}

func (p *sessionPlatform) Reply(m *discordgo.Message, content string) error {
	_, err := p.s.ChannelMessageSendReply(m.ChannelID, content, m.Reference())
	return err
}

func (p *sessionPlatform) Send(channelID, content string) error {
	_, err := p.s.ChannelMessageSend(channelID, content)
	return err
}

func (p *sessionPlatform) SendEmbed(channelID string, embed *discordgo.MessageEmbed) error {
	_, err := p.s.ChannelMessageSendEmbed(channelID, embed)
	return err
}

func (p *sessionPlatform) DirectEmbed(userID string, embed *discordgo.MessageEmbed) error {
	dm, err := p.s.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("open DM with %s: %w", userID, err)
	}
	_, err = p.s.ChannelMessageSendEmbed(dm.ID, embed)
	return err
}
