package economy

import (
	"context"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/handler"
	"github.com/ellavondegurechaff/warpgate/warpgate"
	"github.com/ellavondegurechaff/warpgate/warpgate/config"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy/progression"
	"github.com/ellavondegurechaff/warpgate/warpgate/handlers"
	"github.com/ellavondegurechaff/warpgate/warpgate/utils"
)

var Daily = discord.SlashCommandCreate{
	Name:        "daily",
	Description: "Claim your daily reward!",
}

func DailyHandler(b *warpgate.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		res, err := b.Ledger.ClaimDaily(ctx, e.User().ID.String())
		if err != nil {
			return utils.EH.HandleError(e, err)
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{DailyEmbed(e.User().Username, res)},
		})
	}
}

func DailyPrefixHandler(b *warpgate.Bot) handlers.PrefixHandler {
	return func(ctx context.Context, e *events.MessageCreate, _ []string) (discord.MessageCreate, error) {
		res, err := b.Ledger.ClaimDaily(ctx, e.Message.Author.ID.String())
		if err != nil {
			return discord.MessageCreate{}, err
		}
		return discord.MessageCreate{
			Embeds: []discord.Embed{DailyEmbed(e.Message.Author.Username, res)},
		}, nil
	}
}

func DailyEmbed(username string, res *progression.DailyResult) discord.Embed {
	return discord.NewEmbedBuilder().
		SetTitle("🎁 Daily Reward").
		SetDescription(fmt.Sprintf("**%s** claimed **%s** 🩸 Bloodcoins!\nBalance: %s\n\nNext daily %s",
			username,
			utils.FormatNumber(res.Amount),
			utils.FormatNumber(res.Balance),
			utils.Timestamp(res.NextReset))).
		SetColor(config.SuccessColor).
		Build()
}
