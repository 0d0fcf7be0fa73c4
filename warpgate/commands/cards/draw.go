package cards

import (
	"context"
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/handler"
	"github.com/ellavondegurechaff/warpgate/warpgate"
	"github.com/ellavondegurechaff/warpgate/warpgate/config"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy/encounter"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy/progression"
	"github.com/ellavondegurechaff/warpgate/warpgate/handlers"
	"github.com/ellavondegurechaff/warpgate/warpgate/utils"
)

var Draw = discord.SlashCommandCreate{
	Name:        "draw",
	Description: "🎴 Draw a card from the Warp Gate",
}

func DrawHandler(b *warpgate.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		res, err := b.Ledger.Draw(ctx, e.User().ID.String())
		if err != nil {
			return utils.EH.HandleError(e, err)
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{DrawEmbed(e.User().Username, res)},
		})
	}
}

// DrawPrefixHandler is the text command form of /draw.
func DrawPrefixHandler(b *warpgate.Bot) handlers.PrefixHandler {
	return func(ctx context.Context, e *events.MessageCreate, _ []string) (discord.MessageCreate, error) {
		res, err := b.Ledger.Draw(ctx, e.Message.Author.ID.String())
		if err != nil {
			return discord.MessageCreate{}, err
		}
		return discord.MessageCreate{
			Embeds: []discord.Embed{DrawEmbed(e.Message.Author.Username, res)},
		}, nil
	}
}

// DrawEmbed renders the outcome of a draw, card or encounter.
func DrawEmbed(username string, res *progression.DrawResult) discord.Embed {
	if res.Kind == progression.DrawEncounter {
		return encounterEmbed(username, res)
	}

	card := res.Card
	var description strings.Builder
	fmt.Fprintf(&description, "%s **%s** · %s\n", utils.RarityEmoji(card.Rarity), card.Name, utils.RarityLabel(card.Rarity))
	if res.NewCard {
		description.WriteString("✨ New card added to your collection!\n")
	} else {
		fmt.Fprintf(&description, "You now own **%d** copies\n", res.Owned)
	}
	description.WriteString("\n")
	writeRewards(&description, res)

	embed := discord.NewEmbedBuilder().
		SetTitle(fmt.Sprintf("🎴 %s drew a card!", username)).
		SetDescription(description.String()).
		SetColor(utils.RarityColor(card.Rarity))
	if card.ImageURL != "" {
		embed.SetImage(card.ImageURL)
	}
	return embed.Build()
}

func encounterEmbed(username string, res *progression.DrawResult) discord.Embed {
	out := res.Encounter
	var description strings.Builder

	fmt.Fprintf(&description, "A **%s** burst out of the gate!\n\n", out.Opponent.Name)
	fmt.Fprintf(&description, "**%s** · %s\n", out.Player.Name, utils.FormatStats(out.Player.Stats))
	fmt.Fprintf(&description, "**%s** · %s\n\n", out.Opponent.Name, utils.FormatStats(out.Opponent.Stats))

	first := out.Player.Name
	if out.First == encounter.SideOpponent {
		first = out.Opponent.Name
	}
	fmt.Fprintf(&description, "%s struck first. The fight lasted %d turns.\n", first, len(out.Turns))
	for _, turn := range lastTurns(out.Turns, 3) {
		fmt.Fprintf(&description, "> %s hits %s for %d (%d left)\n", turn.AttackerName, turn.DefenderName, turn.Damage, turn.DefenderHealth)
	}
	description.WriteString("\n")

	title := fmt.Sprintf("⚔️ %s fought a %s", username, out.Opponent.Name)
	color := config.MimicColor
	if out.PlayerWon {
		title = fmt.Sprintf("🏆 %s defeated the %s!", username, out.Opponent.Name)
		card := res.Card
		fmt.Fprintf(&description, "Loot: %s **%s** · %s\n", utils.RarityEmoji(card.Rarity), card.Name, utils.RarityLabel(card.Rarity))
		writeRewards(&description, res)
		color = utils.RarityColor(card.Rarity)
	} else {
		fmt.Fprintf(&description, "The %s escaped with nothing lost but your pride.\n", out.Opponent.Name)
		writeNextDraw(&description, res)
	}

	return discord.NewEmbedBuilder().
		SetTitle(title).
		SetDescription(description.String()).
		SetColor(color).
		Build()
}

func writeRewards(w *strings.Builder, res *progression.DrawResult) {
	fmt.Fprintf(w, "🩸 +%s Bloodcoins (balance %s)\n", utils.FormatNumber(res.Coins), utils.FormatNumber(res.Balance))
	fmt.Fprintf(w, "⭐ +%d XP\n", res.XP.Gained)
	if res.XP.LeveledUp {
		fmt.Fprintf(w, "⬆️ Level up! You are now level **%d**\n", res.XP.After.Level)
	}
	if res.BuddyExp > 0 {
		fmt.Fprintf(w, "🐾 Your buddy gained %d exp\n", res.BuddyExp)
	}
	writeNextDraw(w, res)
}

func writeNextDraw(w *strings.Builder, res *progression.DrawResult) {
	if res.CooldownBypassed {
		w.WriteString("⚡ Cooldown bypassed\n")
		return
	}
	fmt.Fprintf(w, "Next draw %s\n", utils.Timestamp(res.NextDrawAt))
}

func lastTurns(turns []encounter.Turn, n int) []encounter.Turn {
	if len(turns) <= n {
		return turns
	}
	return turns[len(turns)-n:]
}
