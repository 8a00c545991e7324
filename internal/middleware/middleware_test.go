package middleware

import (
	"context"
	"errors"
	"testing"

	"webhyper/internal/command"
	"webhyper/internal/command/commandtest"
	"webhyper/internal/metrics"
	"webhyper/pkg/cmd"

	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCommand struct {
	name   string
	mode   cmd.Mode
	perms  []int64
	ran    int
	panics bool
	err    error
}

func (s *stubCommand) Name() string             { return s.name }
func (s *stubCommand) Description() string      { return "stub" }
func (s *stubCommand) Aliases() []string        { return nil }
func (s *stubCommand) Mode() cmd.Mode           { return s.mode }
func (s *stubCommand) UserPermissions() []int64 { return s.perms }

func (s *stubCommand) Run(ctx *command.MessageContext) error {
	s.ran++
	if s.panics {
		panic("boom")
	}
	return s.err
}

const authorID = "42"

func wrap(s *stubCommand, mws ...cmd.Middleware) cmd.Command {
	return cmd.Apply(&command.DiscordAdapter{Cmd: s}, mws...)
}

func invoke(p *commandtest.Platform, c cmd.Command, guildID string) error {
	msg := p.Post(commandtest.ChannelID, authorID, "w!"+c.Name())
	msg.GuildID = guildID
	mc := &command.MessageContext{Platform: p, Message: msg, Prefix: "w!", BotName: "WebHyperTD2"}
	return c.Run(context.Background(), &cmd.Invocation{Name: c.Name(), Mode: c.Mode(), Data: mc})
}

func TestPermissionDeniedPrefixedRepliesOnce(t *testing.T) {
	p := commandtest.New()
	s := &stubCommand{name: "ban", perms: []int64{discordgo.PermissionBanMembers}}

	err := invoke(p, wrap(s, WithUserPermissionCheck()), commandtest.GuildID)

	require.ErrorIs(t, err, ErrDenied)
	assert.Zero(t, s.ran)
	out := p.Outbound()
	require.Len(t, out, 1)
	assert.Equal(t, command.Replies.NoPermission, out[0].Content)
	assert.Empty(t, p.Mutations())
}

func TestPermissionDeniedBareIsSilent(t *testing.T) {
	p := commandtest.New()
	s := &stubCommand{name: "cl", mode: cmd.ModeBare, perms: []int64{discordgo.PermissionManageMessages}}

	err := invoke(p, wrap(s, WithUserPermissionCheck()), commandtest.GuildID)

	require.ErrorIs(t, err, ErrDenied)
	assert.Zero(t, s.ran)
	assert.Empty(t, p.Outbound())
	assert.Empty(t, p.Mutations())
}

func TestPermissionAnyOfAndAdministrator(t *testing.T) {
	tests := []struct {
		name  string
		perms int64
	}{
		{"exact", discordgo.PermissionBanMembers},
		{"one of several", discordgo.PermissionKickMembers | discordgo.PermissionSendMessages},
		{"administrator", discordgo.PermissionAdministrator},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := commandtest.New()
			p.Grant(authorID, tt.perms)
			s := &stubCommand{name: "ban", perms: []int64{discordgo.PermissionBanMembers, discordgo.PermissionKickMembers}}

			require.NoError(t, invoke(p, wrap(s, WithUserPermissionCheck()), commandtest.GuildID))
			assert.Equal(t, 1, s.ran)
			assert.Empty(t, p.Outbound())
		})
	}
}

func TestPermissionLookupFailureDenies(t *testing.T) {
	p := commandtest.New()
	p.Grant(authorID, discordgo.PermissionAdministrator)
	p.Errors["MemberPermissions"] = errors.New("unavailable")
	s := &stubCommand{name: "kick", perms: []int64{discordgo.PermissionKickMembers}}

	err := invoke(p, wrap(s, WithUserPermissionCheck()), commandtest.GuildID)

	require.ErrorIs(t, err, ErrDenied)
	assert.Zero(t, s.ran)
}

func TestNoRequiredPermissionRuns(t *testing.T) {
	p := commandtest.New()
	s := &stubCommand{name: "ping"}

	require.NoError(t, invoke(p, wrap(s, WithUserPermissionCheck()), commandtest.GuildID))
	assert.Equal(t, 1, s.ran)
	assert.Empty(t, p.CallsTo("MemberPermissions"))
}

func TestGuildOnlyDropsDirectMessages(t *testing.T) {
	p := commandtest.New()
	s := &stubCommand{name: "ping"}
	c := wrap(s, WithGuildOnly())

	require.NoError(t, invoke(p, c, ""))
	assert.Zero(t, s.ran)

	require.NoError(t, invoke(p, c, commandtest.GuildID))
	assert.Equal(t, 1, s.ran)
}

func TestRecoverTurnsPanicIntoError(t *testing.T) {
	p := commandtest.New()
	s := &stubCommand{name: "nuke", panics: true}

	var err error
	assert.NotPanics(t, func() {
		err = invoke(p, wrap(s, WithRecover()), commandtest.GuildID)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestCommandLoggerOutcomes(t *testing.T) {
	m := metrics.New()
	p := commandtest.New()

	denied := &stubCommand{name: "ban", perms: []int64{discordgo.PermissionBanMembers}}
	_ = invoke(p, wrap(denied, WithUserPermissionCheck(), WithCommandLoggerTo(m)), commandtest.GuildID)

	ok := &stubCommand{name: "ping"}
	require.NoError(t, invoke(p, wrap(ok, WithUserPermissionCheck(), WithCommandLoggerTo(m)), commandtest.GuildID))

	failed := &stubCommand{name: "nuke", err: errors.New("broken")}
	require.Error(t, invoke(p, wrap(failed, WithUserPermissionCheck(), WithCommandLoggerTo(m)), commandtest.GuildID))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CommandCount.WithLabelValues("ban", metrics.OutcomeDenied)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CommandCount.WithLabelValues("ping", metrics.OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CommandCount.WithLabelValues("nuke", metrics.OutcomeError)))
}
