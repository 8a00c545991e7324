package command

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

// Overwrite is the state of one permission bit in a channel overwrite.
type Overwrite int

const (
	OverwriteInherit Overwrite = iota
	OverwriteDeny
	OverwriteAllow
)

// SendOverwrite computes roleID's overwrite in a channel after setting its
// Send Messages bit to state. Every other allowed or denied bit is kept.
func SendOverwrite(existing []*discordgo.PermissionOverwrite, roleID string, state Overwrite) (allow, deny int64) {
	for _, o := range existing {
		if o != nil && o.ID == roleID {
			allow, deny = o.Allow, o.Deny
		}
	}
	allow &^= discordgo.PermissionSendMessages
	deny &^= discordgo.PermissionSendMessages
	switch state {
	case OverwriteDeny:
		deny |= discordgo.PermissionSendMessages
	case OverwriteAllow:
		allow |= discordgo.PermissionSendMessages
	}
	return allow, deny
}

// Platform is the moderation capability surface commands call into. The
// discord package implements it over a live session; tests use commandtest.
//
// Implementations add no locking, retries or idempotency: two commands hitting
// the same member race at the API and the loser gets the API's error.
type Platform interface {
	BotUser() (*discordgo.User, error)
	Guild(guildID string) (*discordgo.Guild, error)
	GuildRoles(guildID string) ([]*discordgo.Role, error)
	GuildChannels(guildID string) ([]*discordgo.Channel, error)
	GuildMember(guildID, userID string) (*discordgo.Member, error)
	Channel(channelID string) (*discordgo.Channel, error)
	// MemberPermissions returns the effective permissions of userID in channelID.
	MemberPermissions(channelID, userID string) (int64, error)

	Ban(guildID, userID, reason string) error
	Kick(guildID, userID, reason string) error
	// Timeout suspends the member until the given time; nil clears it.
	Timeout(guildID, userID string, until *time.Time, reason string) error
	AddRole(guildID, userID, roleID string) error
	RemoveRole(guildID, userID, roleID string) error
	GuildBan(guildID, userID string) (*discordgo.GuildBan, error)
	Unban(guildID, userID, reason string) error

	SetRateLimit(channelID string, seconds int) error
	SetSendMessages(channelID, roleID string, state Overwrite) error
	// RecentMessages returns up to limit messages, newest first.
	RecentMessages(channelID string, limit int) ([]*discordgo.Message, error)
	BulkDelete(channelID string, messageIDs []string) error
	DeleteMessage(channelID, messageID string) error
	CloneChannel(ch *discordgo.Channel) (*discordgo.Channel, error)
	DeleteChannel(channelID string) error
	MoveChannel(channelID string, position int, parentID string) error

	Reply(m *discordgo.Message, content string) error
	Send(channelID, content string) error
	SendEmbed(channelID string, embed *discordgo.MessageEmbed) error
	DirectEmbed(userID string, embed *discordgo.MessageEmbed) error
}
