package social

import (
	"context"
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/ellavondegurechaff/warpgate/warpgate"
	"github.com/ellavondegurechaff/warpgate/warpgate/config"
	"github.com/ellavondegurechaff/warpgate/warpgate/database/models"
	"github.com/ellavondegurechaff/warpgate/warpgate/utils"
)

var Faction = discord.SlashCommandCreate{
	Name:        "faction",
	Description: "🏳️ List the members of a faction",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "faction",
			Description: "Faction to show (defaults to yours)",
			Required:    false,
			Choices:     FactionChoices(),
		},
	},
}

func FactionChoices() []discord.ApplicationCommandOptionChoiceString {
	choices := make([]discord.ApplicationCommandOptionChoiceString, 0, len(models.Factions))
	for _, f := range models.Factions {
		choices = append(choices, discord.ApplicationCommandOptionChoiceString{Name: f, Value: f})
	}
	return choices
}

func FactionHandler(b *warpgate.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		faction, ok := e.SlashCommandInteractionData().OptString("faction")
		if !ok {
			profile, err := b.Ledger.Profile(ctx, e.User().ID.String())
			if err != nil {
				return utils.EH.HandleError(e, err)
			}
			if profile.Player.Faction == "" {
				return utils.EH.CreateInfoEmbed(e, "You have not joined a faction yet. Pick one with `/register`.")
			}
			faction = profile.Player.Faction
		}

		members, err := b.Ledger.FactionMembers(ctx, faction)
		if err != nil {
			return utils.EH.HandleError(e, err)
		}

		names := make([]string, 0, len(members))
		for _, m := range members {
			names = append(names, m.Username)
		}
		list := strings.Join(names, ", ")
		if list == "" {
			list = "No members yet"
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{discord.NewEmbedBuilder().
				SetTitle(fmt.Sprintf("🏳️ Faction %s", strings.ToUpper(faction))).
				SetDescription(list).
				SetColor(config.EmbedDefaultColor).
				SetFooter(fmt.Sprintf("%d members", len(members)), "").
				Build()},
		})
	}
}
