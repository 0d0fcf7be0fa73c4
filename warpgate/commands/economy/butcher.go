package economy

import (
	"context"
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/ellavondegurechaff/warpgate/warpgate"
	"github.com/ellavondegurechaff/warpgate/warpgate/commands/cards"
	"github.com/ellavondegurechaff/warpgate/warpgate/config"
	"github.com/ellavondegurechaff/warpgate/warpgate/utils"
)

var butcherMinAmount = 1

var Butcher = discord.SlashCommandCreate{
	Name:        "butcher",
	Description: "🔪 Sell copies of a card for Bloodcoins",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:         "name",
			Description:  "Card to sell",
			Required:     true,
			Autocomplete: true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "rarity",
			Description: "Rarity of the card",
			Required:    true,
			Choices:     utils.RarityChoices(),
		},
		discord.ApplicationCommandOptionInt{
			Name:        "amount",
			Description: "How many copies to sell (default 1)",
			Required:    false,
			MinValue:    &butcherMinAmount,
		},
	},
}

func ButcherHandler(b *warpgate.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		data := e.SlashCommandInteractionData()
		amount := int64(1)
		if n, ok := data.OptInt("amount"); ok {
			amount = int64(n)
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		userID := e.User().ID.String()
		name := strings.TrimSpace(data.String("name"))
		res, err := b.Ledger.Butcher(ctx, userID, name, data.String("rarity"), amount)
		if err != nil {
			return utils.EH.HandleError(e, cards.SuggestOwned(ctx, b, userID, name, err))
		}

		return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("🔪 Sold **%d × %s** for **%s** 🩸\nBalance: %s · %d left",
			res.Sold, res.Card.Name,
			utils.FormatNumber(res.Coins),
			utils.FormatNumber(res.Balance),
			res.Remaining))
	}
}
