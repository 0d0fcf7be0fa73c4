package handlers

import (
	"context"
	"log/slog"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/ellavondegurechaff/warpgate/warpgate/config"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy"
	"github.com/ellavondegurechaff/warpgate/warpgate/utils"
)

// PrefixHandler answers a text command. It returns the reply to post; an
// error is rendered as an error embed instead.
type PrefixHandler func(ctx context.Context, e *events.MessageCreate, args []string) (discord.MessageCreate, error)

// PrefixRouter dispatches "<prefix><name> args..." messages.
type PrefixRouter struct {
	prefix   string
	commands map[string]PrefixHandler
}

func NewPrefixRouter(prefix string) *PrefixRouter {
	return &PrefixRouter{prefix: prefix, commands: map[string]PrefixHandler{}}
}

// Handle registers h under name. Names are case-insensitive.
func (r *PrefixRouter) Handle(name string, h PrefixHandler) {
	r.commands[strings.ToLower(name)] = h
}

// ParsePrefixCommand splits content into a command name and arguments.
func ParsePrefixCommand(prefix, content string) (string, []string, bool) {
	content = strings.TrimSpace(content)
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return "", nil, false
	}
	fields := strings.Fields(content[len(prefix):])
	if len(fields) == 0 {
		return "", nil, false
	}
	return strings.ToLower(fields[0]), fields[1:], true
}

// Lookup returns the handler for a message, if any.
func (r *PrefixRouter) Lookup(content string) (string, PrefixHandler, []string, bool) {
	name, args, ok := ParsePrefixCommand(r.prefix, content)
	if !ok {
		return "", nil, nil, false
	}
	h, ok := r.commands[name]
	return name, h, args, ok
}

// OnMessageCreate is the gateway listener for text commands.
func (r *PrefixRouter) OnMessageCreate(e *events.MessageCreate) {
	if e.Message.Author.Bot {
		return
	}
	name, h, args, ok := r.Lookup(e.Message.Content)
	if !ok {
		return
	}

	err := runLogged("cmd", r.prefix+name, e.Message.Author, func() error {
		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		reply, cmdErr := h(ctx, e, args)
		if cmdErr != nil {
			reply = discord.MessageCreate{Embeds: []discord.Embed{utils.ErrorEmbed(cmdErr)}}
		}
		reply.MessageReference = &discord.MessageReference{MessageID: &e.MessageID}
		if _, err := e.Client().Rest().CreateMessage(e.ChannelID, reply); err != nil {
			return err
		}
		if economy.IsExpected(cmdErr) {
			return nil
		}
		return cmdErr
	})
	if err != nil {
		slog.Debug("Prefix command returned error",
			slog.String("type", "cmd"),
			slog.String("name", name),
			slog.Any("error", err))
	}
}
