package command

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// allPermissions has every bit set, including ones discordgo has no name for yet.
const allPermissions = int64(-1)

// Hierarchy is a snapshot of a guild's roles seen from the bot, used to
// decide whether the bot may act on a member.
type Hierarchy struct {
	GuildID string
	OwnerID string
	BotID   string

	rolesByID map[string]*discordgo.Role
	botPos    int
	botPerms  int64
}

// LoadHierarchy fetches the guild, its roles and the bot's member record.
func LoadHierarchy(p Platform, guildID string) (*Hierarchy, error) {
	guild, err := p.Guild(guildID)
	if err != nil {
		return nil, fmt.Errorf("load guild %s: %w", guildID, err)
	}
	roles, err := p.GuildRoles(guildID)
	if err != nil {
		return nil, fmt.Errorf("load roles of %s: %w", guildID, err)
	}
	bot, err := p.BotUser()
	if err != nil {
		return nil, fmt.Errorf("load bot user: %w", err)
	}
	botMember, err := p.GuildMember(guildID, bot.ID)
	if err != nil {
		return nil, fmt.Errorf("load bot member in %s: %w", guildID, err)
	}

	h := &Hierarchy{
		GuildID:   guildID,
		OwnerID:   guild.OwnerID,
		BotID:     bot.ID,
		rolesByID: make(map[string]*discordgo.Role, len(roles)),
	}
	for _, r := range roles {
		if r != nil && r.ID != "" {
			h.rolesByID[r.ID] = r
		}
	}
	h.botPos = h.HighestPosition(botMember)
	h.botPerms = h.Permissions(botMember)
	return h, nil
}

// HighestPosition is the position of the member's highest role, counting
// @everyone (whose ID is the guild ID).
func (h *Hierarchy) HighestPosition(m *discordgo.Member) int {
	if m == nil {
		return -1
	}
	pos := -1
	if r, ok := h.rolesByID[h.GuildID]; ok {
		pos = r.Position
	}
	for _, id := range m.Roles {
		if r, ok := h.rolesByID[id]; ok && r.Position > pos {
			pos = r.Position
		}
	}
	return pos
}

// BotPosition is the position of the bot's highest role.
func (h *Hierarchy) BotPosition() int { return h.botPos }

// Permissions are the guild-level permissions granted by the member's roles.
// The owner and administrators get everything.
func (h *Hierarchy) Permissions(m *discordgo.Member) int64 {
	if h.IsAdministrator(m) {
		return allPermissions
	}
	return h.rolePermissions(m)
}

// IsAdministrator reports whether the member owns the guild or holds a role
// with Administrator.
func (h *Hierarchy) IsAdministrator(m *discordgo.Member) bool {
	if m == nil || m.User == nil {
		return false
	}
	if m.User.ID == h.OwnerID {
		return true
	}
	return h.rolePermissions(m)&discordgo.PermissionAdministrator != 0
}

func (h *Hierarchy) rolePermissions(m *discordgo.Member) int64 {
	if m == nil {
		return 0
	}
	var perms int64
	if r, ok := h.rolesByID[h.GuildID]; ok {
		perms |= r.Permissions
	}
	for _, id := range m.Roles {
		if r, ok := h.rolesByID[id]; ok {
			perms |= r.Permissions
		}
	}
	return perms
}

func (h *Hierarchy) botHas(perm int64) bool {
	return h.botPerms&perm == perm
}

// Manageable reports whether the bot outranks the target: the target is not
// the owner nor the bot, and the bot owns the guild or has a strictly higher
// top role.
func (h *Hierarchy) Manageable(target *discordgo.Member) bool {
	if target == nil || target.User == nil {
		return false
	}
	switch target.User.ID {
	case h.OwnerID, h.BotID:
		return false
	}
	if h.BotID == h.OwnerID {
		return true
	}
	return h.botPos > h.HighestPosition(target)
}

func (h *Hierarchy) Bannable(target *discordgo.Member) bool {
	return h.Manageable(target) && h.botHas(discordgo.PermissionBanMembers)
}

func (h *Hierarchy) Kickable(target *discordgo.Member) bool {
	return h.Manageable(target) && h.botHas(discordgo.PermissionKickMembers)
}

// Moderatable additionally refuses administrators, whom timeouts do not affect.
func (h *Hierarchy) Moderatable(target *discordgo.Member) bool {
	if !h.Manageable(target) || !h.botHas(discordgo.PermissionModerateMembers) {
		return false
	}
	return !h.IsAdministrator(target)
}
