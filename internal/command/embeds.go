package command

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Embed colors.
const (
	ColorRed    = 0xFF0000
	ColorOrange = 0xFFA500
	ColorBlue   = 0x3498DB
	ColorGreen  = 0x00FF00
	ColorAmber  = 0xFFAA00
	ColorPurple = 0x9B59B6
)

// Now is the clock used for embed timestamps, timeouts and membership age.
var Now = time.Now

// UserTag renders a user the way the client shows them: the bare username
// for migrated accounts, username#discriminator for legacy ones.
func UserTag(u *discordgo.User) string {
	if u == nil {
		return "unknown"
	}
	if u.Discriminator == "" || u.Discriminator == "0" {
		return u.Username
	}
	return u.Username + "#" + u.Discriminator
}

// Footer is the footer every moderation embed carries.
func Footer(botName string) *discordgo.MessageEmbedFooter {
	return &discordgo.MessageEmbedFooter{Text: botName + " Moderation"}
}

// Timestamp is the current time in the embed timestamp format.
func Timestamp() string {
	return Now().Format(time.RFC3339)
}

// PunishmentRecord describes one moderation action for its reply embed.
// It is never stored.
type PunishmentRecord struct {
	Target    *discordgo.User
	Reason    string
	Action    string
	Color     int
	Moderator string
	// Duration is shown verbatim when set (e.g. "10m").
	Duration string
}

// Embed renders the record. Field order is Moderator, Duration, Reason.
func (r PunishmentRecord) Embed(botName string) *discordgo.MessageEmbed {
	reason := r.Reason
	if reason == "" {
		reason = Replies.NoReason
	}
	avatar := r.Target.AvatarURL("512")

	var fields []*discordgo.MessageEmbedField
	if r.Moderator != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Moderator", Value: r.Moderator, Inline: true})
	}
	if r.Duration != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Duration", Value: r.Duration, Inline: true})
	}
	fields = append(fields, &discordgo.MessageEmbedField{Name: "Reason", Value: reason})

	return &discordgo.MessageEmbed{
		Title:     r.Action,
		Color:     r.Color,
		Author:    &discordgo.MessageEmbedAuthor{Name: UserTag(r.Target), IconURL: avatar},
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: avatar},
		Fields:    fields,
		Footer:    Footer(botName),
		Timestamp: Timestamp(),
	}
}

// RoleChange describes one role toggle for its reply embed.
type RoleChange struct {
	Target     *discordgo.User
	RoleName   string
	Added      bool
	Moderator  string
	JoinedDays int
}

// Action is "Added" or "Removed".
func (c RoleChange) Action() string {
	if c.Added {
		return "Added"
	}
	return "Removed"
}

// Color is green for an added role and red for a removed one.
func (c RoleChange) Color() int {
	if c.Added {
		return ColorGreen
	}
	return ColorRed
}

func (c RoleChange) Embed(botName string) *discordgo.MessageEmbed {
	avatar := c.Target.AvatarURL("512")
	return &discordgo.MessageEmbed{
		Title:     "Role Update",
		Color:     c.Color(),
		Author:    &discordgo.MessageEmbedAuthor{Name: UserTag(c.Target), IconURL: avatar},
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: avatar},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Role", Value: c.RoleName, Inline: true},
			{Name: "Action", Value: c.Action(), Inline: true},
			{Name: "Moderator", Value: c.Moderator, Inline: true},
			{Name: "Days in Server", Value: fmt.Sprintf("%d days", c.JoinedDays), Inline: true},
			{Name: "Messages", Value: "Not available", Inline: true},
		},
		Footer:    Footer(botName),
		Timestamp: Timestamp(),
	}
}

// DaysSince counts whole days between t and now; zero t counts as zero days.
func DaysSince(t time.Time) int {
	if t.IsZero() {
		return 0
	}
	d := Now().Sub(t)
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}
