package system

import (
	"context"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/ellavondegurechaff/warpgate/warpgate"
	"github.com/ellavondegurechaff/warpgate/warpgate/commands/social"
	"github.com/ellavondegurechaff/warpgate/warpgate/config"
	"github.com/ellavondegurechaff/warpgate/warpgate/utils"
)

var Register = discord.SlashCommandCreate{
	Name:        "register",
	Description: "🌀 Step through the Warp Gate and start collecting",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "faction",
			Description: "Faction to join",
			Required:    false,
			Choices:     social.FactionChoices(),
		},
	},
}

func RegisterHandler(b *warpgate.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		faction := e.SlashCommandInteractionData().String("faction")

		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		p, err := b.Ledger.Register(ctx, e.User().ID.String(), e.User().Username, faction)
		if err != nil {
			return utils.EH.HandleError(e, err)
		}

		msg := fmt.Sprintf("Welcome, **%s**! Use `/draw` to pull your first card, `/daily` for Bloodcoins and `/quests` to see your goals.", p.Username)
		if p.Faction != "" {
			msg += fmt.Sprintf("\nYou joined faction **%s**.", p.Faction)
		}
		return utils.EH.CreateSuccessEmbed(e, msg)
	}
}
