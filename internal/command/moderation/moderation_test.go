package moderation

import (
	"errors"
	"testing"
	"time"

	"webhyper/internal/command"
	"webhyper/internal/command/commandtest"
	"webhyper/pkg/cmd"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	invoker = "42"
	aliceID = "20"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func setup(t *testing.T, perms int64) *commandtest.Platform {
	t.Helper()
	prev := command.Now
	command.Now = func() time.Time { return now }
	t.Cleanup(func() { command.Now = prev })

	p := commandtest.New()
	p.AddMember(invoker, "mod")
	p.Grant(invoker, perms)
	p.CreateRole("member", "Member", 1, discordgo.PermissionSendMessages)
	p.AddMember(aliceID, "alice", "member")
	return p
}

func dispatch(t *testing.T, p *commandtest.Platform, content string) {
	t.Helper()
	ok, err := commandtest.Dispatch(p, cmd.DefaultRegistry, invoker, content)
	require.True(t, ok, "%q did not resolve", content)
	require.NoError(t, err)
}

func onlyReply(t *testing.T, p *commandtest.Platform) string {
	t.Helper()
	out := p.Outbound()
	require.Len(t, out, 1)
	require.Nil(t, out[0].Embed)
	return out[0].Content
}

func fieldValue(e *discordgo.MessageEmbed, name string) string {
	for _, f := range e.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

func TestDeniedReplies(t *testing.T) {
	tests := []struct {
		content string
		want    string
	}{
		{"w!ban <@20>", command.Replies.DeniedBan},
		{"w!kick <@20>", command.Replies.DeniedKick},
		{"w!mute <@20> 10m", command.Replies.DeniedMute},
		{"w!timeout <@20> 10m", command.Replies.DeniedMute},
		{"w!unmute <@20>", command.Replies.DeniedUnmute},
		{"w!desbanir 20", command.Replies.DeniedUnban},
		{"w!warn <@20>", command.Replies.DeniedWarn},
		{"w!role <@&member> <@20>", command.Replies.DeniedRoles},
	}
	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			p := setup(t, discordgo.PermissionSendMessages)
			ok, err := commandtest.Dispatch(p, cmd.DefaultRegistry, invoker, tt.content)
			require.True(t, ok)
			require.Error(t, err)

			assert.Equal(t, tt.want, onlyReply(t, p))
			assert.Empty(t, p.Mutations())
		})
	}
}

func TestBanDefaultReason(t *testing.T) {
	p := setup(t, discordgo.PermissionBanMembers)
	p.Post(commandtest.ChannelID, aliceID, "spam")

	dispatch(t, p, "w!ban <@20>")

	bans := p.CallsTo("Ban")
	require.Len(t, bans, 1)
	assert.Equal(t, []string{commandtest.GuildID, aliceID, command.Replies.NoReason}, bans[0].Args)
	assert.Len(t, p.CallsTo("BulkDelete"), 1)

	e := p.LastEmbed()
	require.NotNil(t, e)
	assert.Equal(t, "User Permanently Banned", e.Title)
	assert.Equal(t, command.ColorRed, e.Color)
	assert.Equal(t, command.Replies.NoReason, fieldValue(e, "Reason"))
	assert.Equal(t, "mod", fieldValue(e, "Moderator"))
	assert.Nil(t, p.Member(aliceID))
}

func TestBanValidation(t *testing.T) {
	t.Run("no mention", func(t *testing.T) {
		p := setup(t, discordgo.PermissionBanMembers)
		dispatch(t, p, "w!ban alice")
		assert.Equal(t, command.Replies.MentionUser, onlyReply(t, p))
	})
	t.Run("outranks bot", func(t *testing.T) {
		p := setup(t, discordgo.PermissionBanMembers)
		p.CreateRole("top", "Top", 20, 0)
		p.AddMember("30", "boss", "top")
		dispatch(t, p, "w!ban <@30> rude")
		assert.Equal(t, command.Replies.CannotBan, onlyReply(t, p))
		assert.Empty(t, p.Mutations())
	})
	t.Run("owner", func(t *testing.T) {
		p := setup(t, discordgo.PermissionAdministrator)
		dispatch(t, p, "w!ban <@1>")
		assert.Equal(t, command.Replies.CannotBan, onlyReply(t, p))
	})
}

func TestBanFailures(t *testing.T) {
	t.Run("ban call", func(t *testing.T) {
		p := setup(t, discordgo.PermissionBanMembers)
		p.Errors["Ban"] = errors.New("missing access")
		dispatch(t, p, "w!ban <@20> spam")
		assert.Equal(t, command.Replies.BanFailed, onlyReply(t, p))
	})
	t.Run("cleanup", func(t *testing.T) {
		p := setup(t, discordgo.PermissionBanMembers)
		p.Errors["RecentMessages"] = errors.New("missing access")
		dispatch(t, p, "w!ban <@20> spam")
		assert.Equal(t, command.Replies.BanFailed, onlyReply(t, p))
		assert.Empty(t, p.CallsTo("Ban"))
	})
}

func TestKick(t *testing.T) {
	p := setup(t, discordgo.PermissionKickMembers)
	dispatch(t, p, "w!kick <@20> being  loud")

	kicks := p.CallsTo("Kick")
	require.Len(t, kicks, 1)
	assert.Equal(t, "being loud", kicks[0].Args[2])
	assert.Empty(t, p.CallsTo("BulkDelete"))

	e := p.LastEmbed()
	require.NotNil(t, e)
	assert.Equal(t, "User Kicked from Server", e.Title)
	assert.Equal(t, command.ColorOrange, e.Color)
}

func TestKickFailure(t *testing.T) {
	p := setup(t, discordgo.PermissionKickMembers)
	p.Errors["Kick"] = errors.New("gone")
	dispatch(t, p, "w!kick <@20>")
	assert.Equal(t, command.Replies.KickFailed, onlyReply(t, p))
}

func TestMuteEndToEnd(t *testing.T) {
	p := setup(t, discordgo.PermissionModerateMembers)
	var spam []string
	for i := 0; i < 6; i++ {
		spam = append(spam, p.Post(commandtest.ChannelID, aliceID, "spam").ID)
	}

	dispatch(t, p, "w!mute <@20> 10m spamming")

	deletes := p.CallsTo("BulkDelete")
	require.Len(t, deletes, 1)
	assert.Len(t, deletes[0].Args, 1+4)

	timeouts := p.CallsTo("Timeout")
	require.Len(t, timeouts, 1)
	until := now.Add(600_000 * time.Millisecond)
	assert.Equal(t, []string{commandtest.GuildID, aliceID, until.Format(time.RFC3339Nano), "spamming"}, timeouts[0].Args)
	assert.Equal(t, until, *p.Member(aliceID).CommunicationDisabledUntil)

	out := p.Outbound()
	require.Len(t, out, 1)
	e := out[0].Embed
	require.NotNil(t, e)
	assert.Equal(t, "User Muted", e.Title)
	assert.Equal(t, command.ColorBlue, e.Color)
	assert.Equal(t, "10m", fieldValue(e, "Duration"))
	assert.Equal(t, "spamming", fieldValue(e, "Reason"))
}

func TestMuteValidation(t *testing.T) {
	tests := []struct {
		content string
		want    string
	}{
		{"w!mute", command.Replies.MentionUser},
		{"w!mute <@20>", command.Replies.MissingTime},
		{"w!mute <@20> 10x", command.Replies.InvalidTime},
		{"w!mute <@20> soon", command.Replies.InvalidTime},
		{"w!timeout <@20> 29d", command.Replies.MaxTimeout},
		{"w!mute <@20> 2419201s", command.Replies.MaxTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			p := setup(t, discordgo.PermissionModerateMembers)
			dispatch(t, p, tt.content)
			assert.Equal(t, tt.want, onlyReply(t, p))
			assert.Empty(t, p.Mutations())
		})
	}
}

func TestMuteRefusesAdministrators(t *testing.T) {
	p := setup(t, discordgo.PermissionModerateMembers)
	p.CreateRole("admins", "Admins", 2, discordgo.PermissionAdministrator)
	p.AddMember("31", "admin", "admins")

	dispatch(t, p, "w!mute <@31> 1h")
	assert.Equal(t, command.Replies.CannotMute, onlyReply(t, p))
}

func TestUnmute(t *testing.T) {
	p := setup(t, discordgo.PermissionModerateMembers)
	until := now.Add(time.Hour)
	p.Member(aliceID).CommunicationDisabledUntil = &until

	dispatch(t, p, "w!desmutar <@20>")

	timeouts := p.CallsTo("Timeout")
	require.Len(t, timeouts, 1)
	assert.Equal(t, "", timeouts[0].Args[2])
	assert.Nil(t, p.Member(aliceID).CommunicationDisabledUntil)

	e := p.LastEmbed()
	require.NotNil(t, e)
	assert.Equal(t, "User Unmuted", e.Title)
	assert.Equal(t, command.ColorGreen, e.Color)
	assert.Equal(t, "Unmuted", fieldValue(e, "Reason"))
}

func TestUnmuteNotMuted(t *testing.T) {
	for name, until := range map[string]*time.Time{
		"never":   nil,
		"expired": func() *time.Time { ts := now.Add(-time.Minute); return &ts }(),
	} {
		t.Run(name, func(t *testing.T) {
			p := setup(t, discordgo.PermissionModerateMembers)
			p.Member(aliceID).CommunicationDisabledUntil = until
			dispatch(t, p, "w!unmute <@20>")
			assert.Equal(t, command.Replies.NotMuted, onlyReply(t, p))
			assert.Empty(t, p.Mutations())
		})
	}
}

func TestUnban(t *testing.T) {
	p := setup(t, discordgo.PermissionBanMembers)
	require.NoError(t, p.Ban(commandtest.GuildID, aliceID, "old"))

	dispatch(t, p, "w!unban 20 served their time")

	unbans := p.CallsTo("Unban")
	require.Len(t, unbans, 1)
	assert.Equal(t, "served their time", unbans[0].Args[2])

	e := p.LastEmbed()
	require.NotNil(t, e)
	assert.Equal(t, "User Unbanned", e.Title)
	assert.Equal(t, "alice (20)", fieldValue(e, "User"))
	assert.Equal(t, "served their time", fieldValue(e, "Unban Reason"))
}

func TestUnbanUsageAndFailure(t *testing.T) {
	p := setup(t, discordgo.PermissionBanMembers)
	dispatch(t, p, "w!unban")
	assert.Equal(t, "Usage: `w!unban <ID>`", onlyReply(t, p))

	p = setup(t, discordgo.PermissionBanMembers)
	dispatch(t, p, "w!unban 555")
	assert.Equal(t, command.Replies.UnbanFailed, onlyReply(t, p))

	p = setup(t, discordgo.PermissionBanMembers)
	require.NoError(t, p.Ban(commandtest.GuildID, aliceID, ""))
	p.Errors["Unban"] = errors.New("rate limited")
	dispatch(t, p, "w!unban 20")
	assert.Equal(t, command.Replies.UnbanFailed, onlyReply(t, p))
}

func TestWarn(t *testing.T) {
	p := setup(t, discordgo.PermissionModerateMembers)
	dispatch(t, p, "w!warn <@20> be nice")

	out := p.Outbound()
	require.Len(t, out, 2)
	assert.Equal(t, aliceID, out[0].UserID)
	assert.Equal(t, "Warning Received", out[0].Embed.Title)
	assert.Equal(t, command.ColorAmber, out[0].Embed.Color)
	assert.Equal(t, "**Server:** Test Guild\n**Reason:** be nice\n**Moderator:** mod", out[0].Embed.Description)
	assert.Equal(t, "alice was warned in DMs.", out[1].Content)
}

func TestWarnClosedDMs(t *testing.T) {
	p := setup(t, discordgo.PermissionModerateMembers)
	p.Errors["DirectEmbed"] = errors.New("cannot send messages to this user")

	dispatch(t, p, "w!warn <@20>")
	assert.Equal(t, "alice was warned (DMs closed).", onlyReply(t, p))
}

func TestRoleToggleRoundTrip(t *testing.T) {
	p := setup(t, discordgo.PermissionManageRoles)
	p.CreateRole("77", "Helper", 5, 0)
	original := append([]string(nil), p.Member(aliceID).Roles...)

	dispatch(t, p, "w!role <@&77> <@20>")
	first := p.LastEmbed()
	require.NotNil(t, first)
	assert.Contains(t, p.Member(aliceID).Roles, "77")

	dispatch(t, p, "w!role <@&77> <@20>")
	second := p.LastEmbed()
	require.NotNil(t, second)

	assert.Equal(t, original, p.Member(aliceID).Roles)
	assert.Equal(t, "Added", fieldValue(first, "Action"))
	assert.Equal(t, command.ColorGreen, first.Color)
	assert.Equal(t, "Removed", fieldValue(second, "Action"))
	assert.Equal(t, command.ColorRed, second.Color)
	assert.Equal(t, "517 days", fieldValue(first, "Days in Server"))
}

func TestRoleValidation(t *testing.T) {
	p := setup(t, discordgo.PermissionManageRoles)
	p.CreateRole("77", "Helper", 5, 0)
	p.CreateRole("88", "Equal", 10, 0)

	dispatch(t, p, "w!role <@20>")
	assert.Equal(t, "Usage: `w!role @role @user`", onlyReply(t, p))

	p = setup(t, discordgo.PermissionManageRoles)
	p.CreateRole("88", "Equal", 10, 0)
	dispatch(t, p, "w!role <@&88> <@20>")
	assert.Equal(t, command.Replies.RoleTooHigh, onlyReply(t, p))
	assert.Empty(t, p.Mutations())
}
