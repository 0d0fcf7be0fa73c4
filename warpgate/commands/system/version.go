package system

import (
	"context"
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/ellavondegurechaff/warpgate/warpgate"
)

var Version = discord.SlashCommandCreate{
	Name:        "version",
	Description: "Show the bot version and database health",
}

func VersionHandler(b *warpgate.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if err := e.DeferCreateMessage(false); err != nil {
			return err
		}

		database := "not connected"
		if b.DB != nil {
			start := time.Now()
			if err := b.DB.Ping(context.Background()); err != nil {
				database = "unreachable"
			} else {
				database = fmt.Sprintf("ok (%s)", time.Since(start).Round(time.Millisecond))
			}
		}

		content := fmt.Sprintf("Version: %s\nCommit: %s\nDatabase: %s", b.Version, b.Commit, database)
		_, err := e.UpdateInteractionResponse(discord.MessageUpdate{Content: &content})
		return err
	}
}
