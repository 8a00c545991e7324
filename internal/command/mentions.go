package command

import (
	"regexp"

	"github.com/bwmarrin/discordgo"
)

var (
	userMentionRe = regexp.MustCompile(`<@!?(\d+)>`)
	roleMentionRe = regexp.MustCompile(`<@&(\d+)>`)
)

// MentionedUserIDs lists user mentions in the order they appear in the text,
// without duplicates. Mentions the gateway resolved but the text no longer
// shows (edits, reply pings) come last.
func MentionedUserIDs(m *discordgo.Message) []string {
	var ids []string
	seen := map[string]bool{}
	for _, match := range userMentionRe.FindAllStringSubmatch(m.Content, -1) {
		if !seen[match[1]] {
			seen[match[1]] = true
			ids = append(ids, match[1])
		}
	}
	for _, u := range m.Mentions {
		if u != nil && !seen[u.ID] {
			seen[u.ID] = true
			ids = append(ids, u.ID)
		}
	}
	return ids
}

// MentionedRoleIDs lists role mentions in text order, without duplicates.
func MentionedRoleIDs(m *discordgo.Message) []string {
	var ids []string
	seen := map[string]bool{}
	for _, match := range roleMentionRe.FindAllStringSubmatch(m.Content, -1) {
		if !seen[match[1]] {
			seen[match[1]] = true
			ids = append(ids, match[1])
		}
	}
	for _, id := range m.MentionRoles {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

// FirstMentionedMember resolves the first mentioned user who is a member of
// the message's guild. It returns nil when nobody mentioned is a member.
func FirstMentionedMember(p Platform, m *discordgo.Message) *discordgo.Member {
	for _, id := range MentionedUserIDs(m) {
		member, err := p.GuildMember(m.GuildID, id)
		if err != nil || member == nil || member.User == nil {
			continue
		}
		if member.GuildID == "" {
			member.GuildID = m.GuildID
		}
		return member
	}
	return nil
}

// FirstMentionedRole resolves the first mentioned role of the message's guild.
func FirstMentionedRole(p Platform, m *discordgo.Message) (*discordgo.Role, error) {
	ids := MentionedRoleIDs(m)
	if len(ids) == 0 {
		return nil, nil
	}
	roles, err := p.GuildRoles(m.GuildID)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		for _, r := range roles {
			if r.ID == id {
				return r, nil
			}
		}
	}
	return nil, nil
}
