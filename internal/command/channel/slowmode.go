package channel

import (
	"strconv"
	"strings"

	"webhyper/internal/command"
	"webhyper/internal/middleware"
	"webhyper/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// maxSlowmode is the platform's cap on a channel rate limit, in seconds.
const maxSlowmode = 21600

type SlowmodeCommand struct{}

func (c *SlowmodeCommand) Name() string        { return "slowmode" }
func (c *SlowmodeCommand) Description() string { return "Set the channel slowmode in seconds, or off" }
func (c *SlowmodeCommand) Aliases() []string   { return []string{} }
func (c *SlowmodeCommand) Mode() cmd.Mode      { return cmd.ModePrefixed }
func (c *SlowmodeCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionManageChannels}
}
func (c *SlowmodeCommand) PermissionDenied() string { return command.Replies.DeniedChannels }

func (c *SlowmodeCommand) Run(ctx *command.MessageContext) error {
	if len(ctx.Args) == 0 {
		ctx.Replyf(command.Replies.SlowmodeUsage, ctx.Prefix, ctx.Prefix)
		return nil
	}

	seconds, ok := parseSlowmode(ctx.Args[0])
	if !ok {
		ctx.Reply(command.Replies.SlowmodeRange)
		return nil
	}

	if err := ctx.Platform.SetRateLimit(ctx.Message.ChannelID, seconds); err != nil {
		ctx.Fail(c.Name(), command.Replies.SlowmodeFailed, err)
		return nil
	}
	if seconds == 0 {
		ctx.Reply(command.Replies.SlowmodeOff)
		return nil
	}
	ctx.Replyf(command.Replies.SlowmodeOn, seconds)
	return nil
}

// parseSlowmode accepts "off" or a whole number of seconds in [0, maxSlowmode].
func parseSlowmode(arg string) (int, bool) {
	if strings.EqualFold(arg, "off") {
		return 0, true
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 || n > maxSlowmode {
		return 0, false
	}
	return n, true
}

// KillSlowCommand clears slowmode without arguments.
type KillSlowCommand struct{}

func (c *KillSlowCommand) Name() string        { return "killslow" }
func (c *KillSlowCommand) Description() string { return "Remove slowmode from this channel" }
func (c *KillSlowCommand) Aliases() []string   { return []string{"killslowmode"} }
func (c *KillSlowCommand) Mode() cmd.Mode      { return cmd.ModePrefixed }
func (c *KillSlowCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionManageChannels}
}
func (c *KillSlowCommand) PermissionDenied() string { return command.Replies.DeniedChannels }

func (c *KillSlowCommand) Run(ctx *command.MessageContext) error {
	if err := ctx.Platform.SetRateLimit(ctx.Message.ChannelID, 0); err != nil {
		ctx.Fail(c.Name(), command.Replies.SlowmodeFailed, err)
		return nil
	}
	ctx.Reply(command.Replies.SlowmodeKilled)
	return nil
}

func init() {
	command.RegisterCommand(
		&SlowmodeCommand{},
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
		middleware.WithGuildOnly(),
		middleware.WithRecover(),
	)
	command.RegisterCommand(
		&KillSlowCommand{},
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
		middleware.WithGuildOnly(),
		middleware.WithRecover(),
	)
}
