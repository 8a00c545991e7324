package command_test

import (
	"errors"
	"testing"

	"webhyper/internal/command"
	"webhyper/internal/command/commandtest"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMentionedUserIDsTextOrder(t *testing.T) {
	m := &discordgo.Message{
		Content: "w!role <@&77> <@!12> and <@34> again <@12>",
		// The gateway does not promise any order here.
		Mentions: []*discordgo.User{{ID: "34"}, {ID: "12"}, {ID: "56"}},
	}
	assert.Equal(t, []string{"12", "34", "56"}, command.MentionedUserIDs(m))
}

func TestMentionedRoleIDs(t *testing.T) {
	m := &discordgo.Message{
		Content:      "w!role <@&77> <@12> <@&88> <@&77>",
		MentionRoles: []string{"88", "99"},
	}
	assert.Equal(t, []string{"77", "88", "99"}, command.MentionedRoleIDs(m))
}

func TestFirstMentionedMemberSkipsNonMembers(t *testing.T) {
	p := commandtest.New()
	p.AddMember("20", "alice")
	m := &discordgo.Message{GuildID: commandtest.GuildID, Content: "w!ban <@404> <@20> spam"}

	got := command.FirstMentionedMember(p, m)
	require.NotNil(t, got)
	assert.Equal(t, "20", got.User.ID)
	assert.Equal(t, commandtest.GuildID, got.GuildID)
}

func TestFirstMentionedMemberNone(t *testing.T) {
	p := commandtest.New()
	assert.Nil(t, command.FirstMentionedMember(p, &discordgo.Message{GuildID: commandtest.GuildID, Content: "w!ban spam"}))
	assert.Nil(t, command.FirstMentionedMember(p, &discordgo.Message{GuildID: commandtest.GuildID, Content: "w!ban <@404>"}))
}

func TestFirstMentionedRole(t *testing.T) {
	p := commandtest.New()
	p.CreateRole("77", "Helper", 3, 0)

	r, err := command.FirstMentionedRole(p, &discordgo.Message{GuildID: commandtest.GuildID, Content: "<@&5> <@&77> <@20>"})
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, "Helper", r.Name)

	r, err = command.FirstMentionedRole(p, &discordgo.Message{GuildID: commandtest.GuildID, Content: "<@20>"})
	require.NoError(t, err)
	assert.Nil(t, r)

	p.Errors["GuildRoles"] = errors.New("unavailable")
	_, err = command.FirstMentionedRole(p, &discordgo.Message{GuildID: commandtest.GuildID, Content: "<@&77>"})
	assert.Error(t, err)
}
