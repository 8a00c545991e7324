package middleware

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"webhyper/internal/command"
	"webhyper/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// ErrDenied is returned when the invoker lacks every permission a command
// accepts. The command did not run.
var ErrDenied = errors.New("permission denied")

var PermissionNames = map[int64]string{
	discordgo.PermissionKickMembers:     "Kick Members",
	discordgo.PermissionBanMembers:      "Ban Members",
	discordgo.PermissionAdministrator:   "Administrator",
	discordgo.PermissionManageChannels:  "Manage Channels",
	discordgo.PermissionManageGuild:     "Manage Server",
	discordgo.PermissionManageMessages:  "Manage Messages",
	discordgo.PermissionManageRoles:     "Manage Roles",
	discordgo.PermissionModerateMembers: "Moderate Members",
}

// WithUserPermissionCheck runs the command only if the invoker holds at least
// one of its UserPermissions in the channel. Administrators always pass.
// A denied bare-word command stays silent; any other denial gets one reply.
func WithUserPermissionCheck() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			mc, ok := inv.Data.(*command.MessageContext)
			if !ok {
				return c.Run(ctx, inv)
			}
			meta, ok := command.Meta(c)
			if !ok {
				return c.Run(ctx, inv)
			}
			required := meta.UserPermissions()
			if len(required) == 0 {
				return c.Run(ctx, inv)
			}

			m := mc.Message
			if m.GuildID == "" || m.Author == nil {
				return c.Run(ctx, inv)
			}

			memberPerms, err := mc.Platform.MemberPermissions(m.ChannelID, m.Author.ID)
			if err != nil {
				log.Printf("[WARN] Failed to get permissions of %s in %s: %v", m.Author.ID, m.ChannelID, err)
				memberPerms = 0
			}
			if memberPerms&discordgo.PermissionAdministrator != 0 {
				return c.Run(ctx, inv)
			}
			for _, p := range required {
				if memberPerms&p != 0 {
					return c.Run(ctx, inv)
				}
			}

			log.Printf("[INFO] %s lacks `%s` for %s in guild %s",
				command.UserTag(m.Author), permissionList(required), c.Name(), m.GuildID)
			if c.Mode() != cmd.ModeBare {
				mc.Reply(meta.PermissionDenied())
			}
			return fmt.Errorf("%s: %w", c.Name(), ErrDenied)
		})
	}
}

func permissionList(perms []int64) string {
	var names []string
	for _, p := range perms {
		name := PermissionNames[p]
		if name == "" {
			name = fmt.Sprintf("0x%x", p)
		}
		names = append(names, name)
	}
	return strings.Join(names, "`, `")
}
