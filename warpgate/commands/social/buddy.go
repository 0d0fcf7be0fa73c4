package social

import (
	"context"
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/ellavondegurechaff/warpgate/warpgate"
	"github.com/ellavondegurechaff/warpgate/warpgate/commands/cards"
	"github.com/ellavondegurechaff/warpgate/warpgate/config"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy/progression"
	"github.com/ellavondegurechaff/warpgate/warpgate/utils"
)

var Buddy = discord.SlashCommandCreate{
	Name:        "buddy",
	Description: "🐾 Show or choose your buddy",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:         "name",
			Description:  "Owned card to make your buddy",
			Required:     false,
			Autocomplete: true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "rarity",
			Description: "Rarity of the card",
			Required:    false,
			Choices:     utils.RarityChoices(),
		},
	},
}

func BuddyHandler(b *warpgate.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		data := e.SlashCommandInteractionData()
		name := strings.TrimSpace(data.String("name"))
		userID := e.User().ID.String()

		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		if name == "" {
			view, err := b.Ledger.Buddy(ctx, userID)
			if err != nil {
				return utils.EH.HandleError(e, err)
			}
			if view == nil {
				return utils.EH.CreateInfoEmbed(e, "You have no buddy yet. Use `/buddy name:<card> rarity:<rarity>` to choose one.")
			}
			return e.CreateMessage(discord.MessageCreate{
				Embeds: []discord.Embed{BuddyEmbed("🐾 Your buddy", view)},
			})
		}

		rarity, ok := data.OptString("rarity")
		if !ok {
			return utils.EH.CreateErrorEmbed(e, "Pick the rarity of the card you want as a buddy.")
		}
		view, err := b.Ledger.SetBuddy(ctx, userID, name, rarity)
		if err != nil {
			return utils.EH.HandleError(e, cards.SuggestOwned(ctx, b, userID, name, err))
		}
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{BuddyEmbed("🐾 New buddy chosen!", view)},
		})
	}
}

func BuddyEmbed(title string, view *progression.BuddyView) discord.Embed {
	embed := discord.NewEmbedBuilder().
		SetTitle(title).
		SetDescription(fmt.Sprintf("%s **%s** · %s\nLevel **%d**\n\n%s",
			utils.RarityEmoji(view.Card.Rarity), view.Card.Name, utils.RarityLabel(view.Card.Rarity),
			view.Level, utils.FormatStats(view.Stats))).
		SetColor(utils.RarityColor(view.Card.Rarity))
	if view.Card.ImageURL != "" {
		embed.SetImage(view.Card.ImageURL)
	}
	return embed.Build()
}
