package moderation

import (
	"slices"

	"webhyper/internal/command"
	"webhyper/internal/middleware"
	"webhyper/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// RoleCommand toggles a role on a member: added if missing, removed if held.
type RoleCommand struct{}

func (c *RoleCommand) Name() string        { return "role" }
func (c *RoleCommand) Description() string { return "Add or remove a role from a member" }
func (c *RoleCommand) Aliases() []string   { return []string{} }
func (c *RoleCommand) Mode() cmd.Mode      { return cmd.ModePrefixed }
func (c *RoleCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionManageRoles}
}
func (c *RoleCommand) PermissionDenied() string { return command.Replies.DeniedRoles }

func (c *RoleCommand) Run(ctx *command.MessageContext) error {
	p, m := ctx.Platform, ctx.Message

	role, err := command.FirstMentionedRole(p, m)
	if err != nil {
		ctx.Fail(c.Name(), command.Replies.RoleFailed, err)
		return nil
	}
	member := command.FirstMentionedMember(p, m)
	if role == nil || member == nil {
		ctx.Replyf(command.Replies.RoleUsage, ctx.Prefix)
		return nil
	}

	h, err := command.LoadHierarchy(p, m.GuildID)
	if err != nil {
		ctx.Fail(c.Name(), command.Replies.RoleFailed, err)
		return nil
	}
	if role.Position >= h.BotPosition() {
		ctx.Reply(command.Replies.RoleTooHigh)
		return nil
	}

	change := command.RoleChange{
		Target:     member.User,
		RoleName:   role.Name,
		Added:      !slices.Contains(member.Roles, role.ID),
		Moderator:  ctx.Moderator(),
		JoinedDays: command.DaysSince(member.JoinedAt),
	}
	if change.Added {
		err = p.AddRole(m.GuildID, member.User.ID, role.ID)
	} else {
		err = p.RemoveRole(m.GuildID, member.User.ID, role.ID)
	}
	if err != nil {
		ctx.Fail(c.Name(), command.Replies.RoleFailed, err)
		return nil
	}

	if err := ctx.SendEmbed(change.Embed(ctx.BotName)); err != nil {
		ctx.Fail(c.Name(), command.Replies.RoleFailed, err)
	}
	return nil
}

func init() {
	command.RegisterCommand(
		&RoleCommand{},
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
		middleware.WithGuildOnly(),
		middleware.WithRecover(),
	)
}
