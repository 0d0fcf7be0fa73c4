package economy

import (
	"context"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/handler"
	"github.com/ellavondegurechaff/warpgate/warpgate"
	"github.com/ellavondegurechaff/warpgate/warpgate/config"
	"github.com/ellavondegurechaff/warpgate/warpgate/database/models"
	"github.com/ellavondegurechaff/warpgate/warpgate/handlers"
	"github.com/ellavondegurechaff/warpgate/warpgate/utils"
)

var Wallet = discord.SlashCommandCreate{
	Name:        "wallet",
	Description: "👛 Show your balances",
}

func WalletHandler(b *warpgate.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		profile, err := b.Ledger.Profile(ctx, e.User().ID.String())
		if err != nil {
			return utils.EH.HandleError(e, err)
		}
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{WalletEmbed(e.User().Username, profile.Player)},
		})
	}
}

func WalletPrefixHandler(b *warpgate.Bot) handlers.PrefixHandler {
	return func(ctx context.Context, e *events.MessageCreate, _ []string) (discord.MessageCreate, error) {
		profile, err := b.Ledger.Profile(ctx, e.Message.Author.ID.String())
		if err != nil {
			return discord.MessageCreate{}, err
		}
		return discord.MessageCreate{
			Embeds: []discord.Embed{WalletEmbed(e.Message.Author.Username, profile.Player)},
		}, nil
	}
}

func WalletEmbed(username string, p *models.Player) discord.Embed {
	return discord.NewEmbedBuilder().
		SetTitle(fmt.Sprintf("👛 %s's Wallet", username)).
		AddField("🩸 Bloodcoins", utils.FormatNumber(p.Bloodcoins), true).
		AddField("👑 Noblecoins", utils.FormatNumber(p.Noblecoins), true).
		SetColor(config.EmbedDefaultColor).
		Build()
}
