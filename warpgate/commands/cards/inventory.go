package cards

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/ellavondegurechaff/warpgate/warpgate"
	"github.com/ellavondegurechaff/warpgate/warpgate/utils"
)

var Inventory = discord.SlashCommandCreate{
	Name:        "inventory",
	Description: "📚 Browse your card collection",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:         "name",
			Description:  "Filter by card name",
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

func InventoryHandler(b *warpgate.Bot) handler.CommandHandler {
	return b.CardCommands.Inventory
}
