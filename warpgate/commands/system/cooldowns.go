package system

import (
	"context"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/ellavondegurechaff/warpgate/warpgate"
	"github.com/ellavondegurechaff/warpgate/warpgate/config"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy/progression"
	"github.com/ellavondegurechaff/warpgate/warpgate/utils"
)

var Cooldowns = discord.SlashCommandCreate{
	Name:        "cooldowns",
	Description: "⏰ See when you can draw and claim your daily again",
}

func CooldownsHandler(b *warpgate.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		cd, err := b.Ledger.Cooldowns(ctx, e.User().ID.String())
		if err != nil {
			return utils.EH.HandleError(e, err)
		}
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{CooldownsEmbed(cd, time.Now())},
			Flags:  discord.MessageFlagEphemeral,
		})
	}
}

func CooldownsEmbed(cd *progression.Cooldowns, now time.Time) discord.Embed {
	draw := "✅ Ready"
	switch {
	case cd.Bypass:
		draw = "⚡ Bypassed"
	case !cd.DrawReady:
		draw = "⏳ " + utils.FormatDuration(cd.Remaining(now, cd.DrawReadyAt))
	}

	daily := "✅ Ready"
	if !cd.DailyReady {
		daily = "⏳ " + utils.FormatDuration(cd.Remaining(now, cd.DailyReset))
	}

	return discord.NewEmbedBuilder().
		SetTitle("⏰ Cooldowns").
		AddField("🎴 Draw", draw, true).
		AddField("🎁 Daily", daily, true).
		SetColor(config.InfoColor).
		Build()
}
