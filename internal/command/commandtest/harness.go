package commandtest

import (
	"context"

	"webhyper/internal/command"
	"webhyper/pkg/cmd"
)

const (
	Prefix  = "w!"
	BotName = "WebHyperTD2"
)

// Dispatch posts content as authorID in the default channel, resolves it
// against reg and runs the resolved command the way the bot does. It reports
// false when the text resolved to nothing.
func Dispatch(p *Platform, reg *cmd.Registry, authorID, content string) (bool, error) {
	msg := p.Post(ChannelID, authorID, content)
	inv, ok := cmd.NewResolver(Prefix, reg).Resolve(content, msg.Author.Bot)
	if !ok {
		return false, nil
	}
	inv.Data = &command.MessageContext{
		Platform: p,
		Message:  msg,
		Prefix:   Prefix,
		BotName:  BotName,
	}
	return true, reg.Get(inv.Name).Run(context.Background(), inv)
}
