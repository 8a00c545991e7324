// Package commandtest provides an in-memory command.Platform for tests.
package commandtest

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"webhyper/internal/command"

	"github.com/bwmarrin/discordgo"
)

// Default fixture IDs.
const (
	GuildID   = "100"
	ChannelID = "200"
	BotID     = "900"
	BotRoleID = "901"
	OwnerID   = "1"
)

// ErrNotFound is returned for unknown guilds, members, channels and bans.
var ErrNotFound = errors.New("commandtest: not found")

// Call is one recorded capability call.
type Call struct {
	Method string
	Args   []string
}

// Sent is one recorded outbound message.
type Sent struct {
	ChannelID string
	// UserID is set for direct messages.
	UserID  string
	ReplyTo string
	Content string
	Embed   *discordgo.MessageEmbed
}

// Platform is a command.Platform backed by maps. Set Errors[method] to make
// that method fail.
type Platform struct {
	mu sync.Mutex

	Bot      *discordgo.User
	Guilds   map[string]*discordgo.Guild
	Roles    map[string][]*discordgo.Role
	Members  map[string]map[string]*discordgo.Member
	Channels map[string]*discordgo.Channel
	Messages map[string][]*discordgo.Message
	Bans     map[string]map[string]*discordgo.GuildBan
	// Perms holds channel-agnostic permission bits per user.
	Perms  map[string]int64
	Errors map[string]error

	Calls []Call
	Sent  []Sent

	nextID int
}

var _ command.Platform = (*Platform)(nil)

// New returns a platform with one guild, one text channel, the guild owner,
// and a bot whose role sits at position 10 with every moderation permission.
func New() *Platform {
	p := &Platform{
		Bot:      &discordgo.User{ID: BotID, Username: "webhyper", Bot: true},
		Guilds:   map[string]*discordgo.Guild{},
		Roles:    map[string][]*discordgo.Role{},
		Members:  map[string]map[string]*discordgo.Member{},
		Channels: map[string]*discordgo.Channel{},
		Messages: map[string][]*discordgo.Message{},
		Bans:     map[string]map[string]*discordgo.GuildBan{},
		Perms:    map[string]int64{},
		Errors:   map[string]error{},
		nextID:   5000,
	}
	p.Guilds[GuildID] = &discordgo.Guild{
		ID:                       GuildID,
		Name:                     "Test Guild",
		OwnerID:                  OwnerID,
		MemberCount:              3,
		PremiumTier:              discordgo.PremiumTier1,
		PremiumSubscriptionCount: 4,
	}
	p.CreateRole(GuildID, "@everyone", 0, discordgo.PermissionSendMessages)
	p.CreateRole(BotRoleID, "Bot", 10,
		discordgo.PermissionBanMembers|discordgo.PermissionKickMembers|
			discordgo.PermissionModerateMembers|discordgo.PermissionManageRoles|
			discordgo.PermissionManageChannels|discordgo.PermissionManageMessages)
	p.Channels[ChannelID] = &discordgo.Channel{
		ID:       ChannelID,
		GuildID:  GuildID,
		Name:     "general",
		Type:     discordgo.ChannelTypeGuildText,
		Position: 3,
		ParentID: "300",
		Topic:    "chat",
	}
	p.AddMember(OwnerID, "owner")
	p.AddMember(BotID, "webhyper", BotRoleID).User.Bot = true
	return p
}

// CreateRole adds a role to the default guild.
func (p *Platform) CreateRole(id, name string, position int, perms int64) *discordgo.Role {
	p.mu.Lock()
	defer p.mu.Unlock()
	r := &discordgo.Role{ID: id, Name: name, Position: position, Permissions: perms}
	p.Roles[GuildID] = append(p.Roles[GuildID], r)
	return r
}

// AddMember adds a member with the given roles to the default guild.
func (p *Platform) AddMember(id, username string, roles ...string) *discordgo.Member {
	p.mu.Lock()
	defer p.mu.Unlock()
	m := &discordgo.Member{
		GuildID:  GuildID,
		User:     &discordgo.User{ID: id, Username: username, Discriminator: "0"},
		Roles:    append([]string(nil), roles...),
		JoinedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if p.Members[GuildID] == nil {
		p.Members[GuildID] = map[string]*discordgo.Member{}
	}
	p.Members[GuildID][id] = m
	return m
}

// Post appends a message to the channel history (newest first) and returns it.
func (p *Platform) Post(channelID, authorID, content string) *discordgo.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	author := &discordgo.User{ID: authorID, Username: "user" + authorID, Discriminator: "0"}
	if m, ok := p.Members[GuildID][authorID]; ok {
		author = m.User
	}
	msg := &discordgo.Message{
		ID:        p.id(),
		ChannelID: channelID,
		GuildID:   GuildID,
		Author:    author,
		Content:   content,
		Timestamp: time.Now(),
	}
	p.Messages[channelID] = append([]*discordgo.Message{msg}, p.Messages[channelID]...)
	return msg
}

// Grant sets the permission bits userID holds everywhere.
func (p *Platform) Grant(userID string, perms int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Perms[userID] = perms
}

// Member returns the current member record, or nil.
func (p *Platform) Member(userID string) *discordgo.Member {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Members[GuildID][userID]
}

// CallsTo returns the recorded calls to method.
func (p *Platform) CallsTo(method string) []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []Call
	for _, c := range p.Calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// Mutations lists the recorded calls that change platform state.
func (p *Platform) Mutations() []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []Call
	for _, c := range p.Calls {
		switch c.Method {
		case "Ban", "Kick", "Timeout", "AddRole", "RemoveRole", "Unban",
			"SetRateLimit", "SetSendMessages", "BulkDelete", "DeleteMessage",
			"CloneChannel", "DeleteChannel", "MoveChannel":
			out = append(out, c)
		}
	}
	return out
}

// Outbound returns everything sent so far.
func (p *Platform) Outbound() []Sent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Sent(nil), p.Sent...)
}

// LastEmbed returns the last embed sent to a channel, or nil.
func (p *Platform) LastEmbed() *discordgo.MessageEmbed {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := len(p.Sent) - 1; i >= 0; i-- {
		if p.Sent[i].Embed != nil && p.Sent[i].UserID == "" {
			return p.Sent[i].Embed
		}
	}
	return nil
}

func (p *Platform) id() string {
	p.nextID++
	return fmt.Sprint(p.nextID)
}

// record logs the call and returns the configured error for it.
// Callers hold p.mu.
func (p *Platform) record(method string, args ...string) error {
	p.Calls = append(p.Calls, Call{Method: method, Args: args})
	return p.Errors[method]
}

func (p *Platform) BotUser() (*discordgo.User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("BotUser"); err != nil {
		return nil, err
	}
	return p.Bot, nil
}

func (p *Platform) Guild(guildID string) (*discordgo.Guild, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("Guild", guildID); err != nil {
		return nil, err
	}
	g, ok := p.Guilds[guildID]
	if !ok {
		return nil, ErrNotFound
	}
	return g, nil
}

func (p *Platform) GuildRoles(guildID string) ([]*discordgo.Role, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("GuildRoles", guildID); err != nil {
		return nil, err
	}
	return append([]*discordgo.Role(nil), p.Roles[guildID]...), nil
}

func (p *Platform) GuildChannels(guildID string) ([]*discordgo.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("GuildChannels", guildID); err != nil {
		return nil, err
	}
	var out []*discordgo.Channel
	for _, c := range p.Channels {
		if c.GuildID == guildID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (p *Platform) GuildMember(guildID, userID string) (*discordgo.Member, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("GuildMember", guildID, userID); err != nil {
		return nil, err
	}
	m, ok := p.Members[guildID][userID]
	if !ok {
		return nil, ErrNotFound
	}
	return m, nil
}

func (p *Platform) Channel(channelID string) (*discordgo.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("Channel", channelID); err != nil {
		return nil, err
	}
	c, ok := p.Channels[channelID]
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

func (p *Platform) MemberPermissions(channelID, userID string) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("MemberPermissions", channelID, userID); err != nil {
		return 0, err
	}
	return p.Perms[userID], nil
}

func (p *Platform) Ban(guildID, userID, reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("Ban", guildID, userID, reason); err != nil {
		return err
	}
	if p.Bans[guildID] == nil {
		p.Bans[guildID] = map[string]*discordgo.GuildBan{}
	}
	user := &discordgo.User{ID: userID, Username: "user" + userID, Discriminator: "0"}
	if m, ok := p.Members[guildID][userID]; ok {
		user = m.User
	}
	p.Bans[guildID][userID] = &discordgo.GuildBan{Reason: reason, User: user}
	delete(p.Members[guildID], userID)
	return nil
}

func (p *Platform) Kick(guildID, userID, reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("Kick", guildID, userID, reason); err != nil {
		return err
	}
	delete(p.Members[guildID], userID)
	return nil
}

func (p *Platform) Timeout(guildID, userID string, until *time.Time, reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	at := ""
	if until != nil {
		at = until.Format(time.RFC3339Nano)
	}
	if err := p.record("Timeout", guildID, userID, at, reason); err != nil {
		return err
	}
	m, ok := p.Members[guildID][userID]
	if !ok {
		return ErrNotFound
	}
	m.CommunicationDisabledUntil = until
	return nil
}

func (p *Platform) AddRole(guildID, userID, roleID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("AddRole", guildID, userID, roleID); err != nil {
		return err
	}
	m, ok := p.Members[guildID][userID]
	if !ok {
		return ErrNotFound
	}
	for _, r := range m.Roles {
		if r == roleID {
			return nil
		}
	}
	m.Roles = append(m.Roles, roleID)
	return nil
}

func (p *Platform) RemoveRole(guildID, userID, roleID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("RemoveRole", guildID, userID, roleID); err != nil {
		return err
	}
	m, ok := p.Members[guildID][userID]
	if !ok {
		return ErrNotFound
	}
	kept := m.Roles[:0]
	for _, r := range m.Roles {
		if r != roleID {
			kept = append(kept, r)
		}
	}
	m.Roles = kept
	return nil
}

func (p *Platform) GuildBan(guildID, userID string) (*discordgo.GuildBan, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("GuildBan", guildID, userID); err != nil {
		return nil, err
	}
	b, ok := p.Bans[guildID][userID]
	if !ok {
		return nil, ErrNotFound
	}
	return b, nil
}

func (p *Platform) Unban(guildID, userID, reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("Unban", guildID, userID, reason); err != nil {
		return err
	}
	if _, ok := p.Bans[guildID][userID]; !ok {
		return ErrNotFound
	}
	delete(p.Bans[guildID], userID)
	return nil
}

func (p *Platform) SetRateLimit(channelID string, seconds int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("SetRateLimit", channelID, fmt.Sprint(seconds)); err != nil {
		return err
	}
	c, ok := p.Channels[channelID]
	if !ok {
		return ErrNotFound
	}
	c.RateLimitPerUser = seconds
	return nil
}

func (p *Platform) SetSendMessages(channelID, roleID string, state command.Overwrite) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("SetSendMessages", channelID, roleID, fmt.Sprint(int(state))); err != nil {
		return err
	}
	c, ok := p.Channels[channelID]
	if !ok {
		return ErrNotFound
	}
	allow, deny := command.SendOverwrite(c.PermissionOverwrites, roleID, state)
	for _, o := range c.PermissionOverwrites {
		if o.ID == roleID {
			o.Allow, o.Deny = allow, deny
			return nil
		}
	}
	c.PermissionOverwrites = append(c.PermissionOverwrites, &discordgo.PermissionOverwrite{
		ID:    roleID,
		Type:  discordgo.PermissionOverwriteTypeRole,
		Allow: allow,
		Deny:  deny,
	})
	return nil
}

func (p *Platform) RecentMessages(channelID string, limit int) ([]*discordgo.Message, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("RecentMessages", channelID, fmt.Sprint(limit)); err != nil {
		return nil, err
	}
	msgs := p.Messages[channelID]
	if len(msgs) > limit {
		msgs = msgs[:limit]
	}
	return append([]*discordgo.Message(nil), msgs...), nil
}

func (p *Platform) BulkDelete(channelID string, messageIDs []string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("BulkDelete", append([]string{channelID}, messageIDs...)...); err != nil {
		return err
	}
	for _, id := range messageIDs {
		p.removeMessage(channelID, id)
	}
	return nil
}

func (p *Platform) DeleteMessage(channelID, messageID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("DeleteMessage", channelID, messageID); err != nil {
		return err
	}
	if !p.removeMessage(channelID, messageID) {
		return ErrNotFound
	}
	return nil
}

func (p *Platform) removeMessage(channelID, id string) bool {
	msgs := p.Messages[channelID]
	for i, m := range msgs {
		if m.ID == id {
			p.Messages[channelID] = append(msgs[:i:i], msgs[i+1:]...)
			return true
		}
	}
	return false
}

func (p *Platform) CloneChannel(ch *discordgo.Channel) (*discordgo.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("CloneChannel", ch.ID); err != nil {
		return nil, err
	}
	clone := *ch
	clone.ID = p.id()
	clone.LastMessageID = ""
	p.Channels[clone.ID] = &clone
	return &clone, nil
}

func (p *Platform) DeleteChannel(channelID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("DeleteChannel", channelID); err != nil {
		return err
	}
	if _, ok := p.Channels[channelID]; !ok {
		return ErrNotFound
	}
	delete(p.Channels, channelID)
	delete(p.Messages, channelID)
	return nil
}

func (p *Platform) MoveChannel(channelID string, position int, parentID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("MoveChannel", channelID, fmt.Sprint(position), parentID); err != nil {
		return err
	}
	c, ok := p.Channels[channelID]
	if !ok {
		return ErrNotFound
	}
	c.Position = position
	c.ParentID = parentID
	return nil
}

func (p *Platform) Reply(m *discordgo.Message, content string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("Reply", m.ChannelID, m.ID); err != nil {
		return err
	}
	p.Sent = append(p.Sent, Sent{ChannelID: m.ChannelID, ReplyTo: m.ID, Content: content})
	return nil
}

func (p *Platform) Send(channelID, content string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("Send", channelID); err != nil {
		return err
	}
	p.Sent = append(p.Sent, Sent{ChannelID: channelID, Content: content})
	return nil
}

func (p *Platform) SendEmbed(channelID string, embed *discordgo.MessageEmbed) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("SendEmbed", channelID); err != nil {
		return err
	}
	p.Sent = append(p.Sent, Sent{ChannelID: channelID, Embed: embed})
	return nil
}

func (p *Platform) DirectEmbed(userID string, embed *discordgo.MessageEmbed) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("DirectEmbed", userID); err != nil {
		return err
	}
	p.Sent = append(p.Sent, Sent{UserID: userID, Embed: embed})
	return nil
}
