package cards

import (
	"context"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/ellavondegurechaff/warpgate/warpgate"
	"github.com/ellavondegurechaff/warpgate/warpgate/config"
	"github.com/ellavondegurechaff/warpgate/warpgate/utils"
)

var View = discord.SlashCommandCreate{
	Name:        "view",
	Description: "🖼️ Browse every card in the game",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:         "name",
			Description:  "Card name, a single match shows the card",
			Required:     false,
			Autocomplete: true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "rarity",
			Description: "Filter by rarity",
			Required:    false,
			Choices:     utils.RarityChoices(),
		},
	},
}

func ViewHandler(b *warpgate.Bot) handler.CommandHandler {
	return b.CardCommands.View
}

// CatalogAutocomplete suggests names from every card template.
func CatalogAutocomplete(b *warpgate.Bot) handler.AutocompleteHandler {
	return func(e *handler.AutocompleteEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		all, err := b.CardRepository.All(ctx)
		if err != nil {
			return e.AutocompleteResult([]discord.AutocompleteChoice{})
		}
		names := make([]string, 0, len(all))
		for _, c := range all {
			names = append(names, c.Name)
		}
		return e.AutocompleteResult(utils.AutocompleteChoices(e.Data.String("name"), names, 25))
	}
}
