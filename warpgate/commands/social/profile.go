package social

import (
	"context"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/ellavondegurechaff/warpgate/warpgate"
	"github.com/ellavondegurechaff/warpgate/warpgate/config"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy/progression"
	"github.com/ellavondegurechaff/warpgate/warpgate/utils"
)

var Profile = discord.SlashCommandCreate{
	Name:        "profile",
	Description: "🪪 Show a player's profile",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "Player to look up (defaults to you)",
			Required:    false,
		},
	},
}

func ProfileHandler(b *warpgate.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		target := e.User()
		if u, ok := e.SlashCommandInteractionData().OptUser("user"); ok {
			target = u
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		profile, err := b.Ledger.Profile(ctx, target.ID.String())
		if err != nil {
			return utils.EH.HandleError(e, err)
		}
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{ProfileEmbed(target, profile)},
		})
	}
}

func ProfileEmbed(user discord.User, profile *progression.Profile) discord.Embed {
	p := profile.Player
	faction := p.Faction
	if faction == "" {
		faction = "None"
	}

	embed := discord.NewEmbedBuilder().
		SetTitle(fmt.Sprintf("🪪 %s", user.Username)).
		SetThumbnail(user.EffectiveAvatarURL()).
		AddField("Level", fmt.Sprintf("**%d**\n%s %s/%s", p.Level,
			utils.ProgressBar(p.XP, p.XPNext, 10),
			utils.FormatNumber(p.XP),
			utils.FormatNumber(p.XPNext)), false).
		AddField("🩸 Bloodcoins", utils.FormatNumber(p.Bloodcoins), true).
		AddField("👑 Noblecoins", utils.FormatNumber(p.Noblecoins), true).
		AddField("🏳️ Faction", faction, true).
		AddField("🃏 Cards", fmt.Sprintf("%s total · %d unique", utils.FormatNumber(profile.TotalCards), profile.UniqueCards), false).
		SetColor(config.EmbedDefaultColor).
		SetFooter("Joined", "").
		SetTimestamp(p.CreatedAt)

	if b := profile.Buddy; b != nil {
		embed.AddField("🐾 Buddy", fmt.Sprintf("%s **%s** · Lv.%d\n%s",
			utils.RarityEmoji(b.Card.Rarity), b.Card.Name, b.Level, utils.FormatStats(b.Stats)), false)
	}
	if p.Banned {
		embed.SetColor(config.ErrorColor)
	}
	return embed.Build()
}
