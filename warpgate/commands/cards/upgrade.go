package cards

import (
	"context"
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/ellavondegurechaff/warpgate/warpgate"
	"github.com/ellavondegurechaff/warpgate/warpgate/config"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy/fusion"
	"github.com/ellavondegurechaff/warpgate/warpgate/utils"
)

var Upgrade = discord.SlashCommandCreate{
	Name:        "upgrade",
	Description: "🔥 Fuse duplicate copies into the next rarity",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:         "name",
			Description:  "Card to upgrade",
			Required:     true,
			Autocomplete: true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "rarity",
			Description: "Current rarity of the card",
			Required:    true,
			Choices:     utils.RarityChoices(),
		},
		discord.ApplicationCommandOptionBool{
			Name:        "preview",
			Description: "Only show what the upgrade would cost",
			Required:    false,
		},
	},
}

func UpgradeHandler(b *warpgate.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		data := e.SlashCommandInteractionData()
		name := strings.TrimSpace(data.String("name"))
		rarity := data.String("rarity")
		userID := e.User().ID.String()

		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		if data.Bool("preview") {
			preview, err := b.Fusion.Preview(ctx, userID, name, rarity)
			if err != nil {
				return utils.EH.HandleError(e, SuggestOwned(ctx, b, userID, name, err))
			}
			return e.CreateMessage(discord.MessageCreate{
				Embeds: []discord.Embed{PreviewEmbed(preview)},
				Flags:  discord.MessageFlagEphemeral,
			})
		}

		res, err := b.Fusion.Upgrade(ctx, userID, name, rarity)
		if err != nil {
			return utils.EH.HandleError(e, SuggestOwned(ctx, b, userID, name, err))
		}
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{UpgradeEmbed(e.User().Username, res)},
		})
	}
}

// UpgradeEmbed renders a completed fusion.
func UpgradeEmbed(username string, res *fusion.Result) discord.Embed {
	var description strings.Builder
	fmt.Fprintf(&description, "%s **%s** ➜ %s **%s**\n\n",
		utils.RarityEmoji(res.Source.Rarity), res.Source.Name,
		utils.RarityEmoji(res.Target.Rarity), res.Target.Name)

	if res.Bypassed {
		description.WriteString("⚡ Upgrade cost bypassed\n")
	} else {
		fmt.Fprintf(&description, "🩸 -%s Bloodcoins (balance %s)\n", utils.FormatNumber(res.Spent), utils.FormatNumber(res.Balance))
		fmt.Fprintf(&description, "🃏 -%d copies (%d left)\n", res.CopiesConsumed, res.SourceLeft)
	}
	fmt.Fprintf(&description, "\n**Before** %s\n**After** %s\n**Change** %s",
		utils.FormatStats(res.Before), utils.FormatStats(res.After), utils.FormatDelta(res.Delta))

	embed := discord.NewEmbedBuilder().
		SetTitle(fmt.Sprintf("🔥 %s upgraded a card!", username)).
		SetDescription(description.String()).
		SetColor(utils.RarityColor(res.Target.Rarity)).
		SetFooter(fmt.Sprintf("You now own %d × %s", res.TargetOwned, res.Target.Name), "")
	if res.Target.ImageURL != "" {
		embed.SetThumbnail(res.Target.ImageURL)
	}
	return embed.Build()
}

// PreviewEmbed renders the requirements of an upgrade.
func PreviewEmbed(p *fusion.Preview) discord.Embed {
	var description strings.Builder
	fmt.Fprintf(&description, "%s **%s** ➜ %s\n\n",
		utils.RarityEmoji(p.Source.Rarity), p.Source.Name, utils.RarityLabel(p.Rule.To))
	fmt.Fprintf(&description, "🃏 Copies: %d / %d\n", p.Owned, p.Rule.Copies)
	fmt.Fprintf(&description, "🩸 Cost: %s (you have %s)\n", utils.FormatNumber(p.Rule.Cost), utils.FormatNumber(p.Balance))
	if p.Target == nil {
		description.WriteString("\n🔍 No upgraded version of this card exists yet.")
	} else if p.Ready {
		fmt.Fprintf(&description, "\n✅ Ready to become **%s**", p.Target.Name)
	} else {
		description.WriteString("\n⏳ Not ready yet")
	}

	return discord.NewEmbedBuilder().
		SetTitle("🔥 Upgrade preview").
		SetDescription(description.String()).
		SetColor(config.InfoColor).
		Build()
}
