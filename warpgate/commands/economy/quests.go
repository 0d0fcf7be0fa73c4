package economy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/ellavondegurechaff/warpgate/warpgate"
	"github.com/ellavondegurechaff/warpgate/warpgate/config"
	"github.com/ellavondegurechaff/warpgate/warpgate/database/models"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy/progression"
	"github.com/ellavondegurechaff/warpgate/warpgate/utils"
)

var Quests = discord.SlashCommandCreate{
	Name:        "quests",
	Description: "📜 View your quest progress",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "kind",
			Description: "Daily or weekly quests",
			Required:    false,
			Choices: []discord.ApplicationCommandOptionChoiceString{
				{Name: "📅 Daily", Value: models.QuestKindDaily},
				{Name: "📆 Weekly", Value: models.QuestKindWeekly},
			},
		},
	},
}

var QuestClaim = discord.SlashCommandCreate{
	Name:        "questclaim",
	Description: "🎁 Claim a completed quest reward",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:         "quest",
			Description:  "Quest to claim",
			Required:     true,
			Autocomplete: true,
		},
	},
}

// ClaimButtonID is the custom id of a claim button owned by userID.
func ClaimButtonID(userID, questID string) string {
	return fmt.Sprintf("/questclaim/%s/%s", userID, questID)
}

func QuestsHandler(b *warpgate.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		kind := models.QuestKindDaily
		if k, ok := e.SlashCommandInteractionData().OptString("kind"); ok {
			kind = k
		}
		userID := e.User().ID.String()

		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		quests, err := b.Ledger.Quests(ctx, userID, kind)
		if err != nil {
			return utils.EH.HandleError(e, err)
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds:     []discord.Embed{QuestsEmbed(e.User().Username, kind, quests)},
			Components: claimButtons(userID, quests),
		})
	}
}

// QuestsEmbed lists quest progress with bars.
func QuestsEmbed(username, kind string, quests []*models.UserQuest) discord.Embed {
	var description strings.Builder
	if len(quests) == 0 {
		description.WriteString("No quests available right now.")
	}
	for _, uq := range quests {
		if uq.Quest == nil {
			continue
		}
		status := "⏳"
		switch {
		case uq.Claimed:
			status = "✅"
		case uq.Completed:
			status = "🎁"
		}
		progress := min(uq.Progress, uq.Quest.Target)
		fmt.Fprintf(&description, "%s **%s**\n%s %s/%s · %s\n\n",
			status,
			uq.Quest.Description,
			utils.ProgressBar(progress, uq.Quest.Target, 10),
			utils.FormatNumber(progress),
			utils.FormatNumber(uq.Quest.Target),
			rewardText(uq.Quest))
	}

	reset := economy.NextDay
	if kind == models.QuestKindWeekly {
		reset = economy.NextWeek
	}

	return discord.NewEmbedBuilder().
		SetTitle(fmt.Sprintf("📜 %s's %s Quests", username, kindLabel(kind))).
		SetDescription(description.String()+"Resets "+utils.Timestamp(reset(time.Now()))).
		SetColor(config.EmbedDefaultColor).
		SetFooter("🎁 completed · ✅ claimed", "").
		Build()
}

func kindLabel(kind string) string {
	if kind == models.QuestKindWeekly {
		return "Weekly"
	}
	return "Daily"
}

func rewardText(q *models.QuestTemplate) string {
	var parts []string
	if q.RewardCoins > 0 {
		parts = append(parts, utils.FormatNumber(q.RewardCoins)+" 🩸")
	}
	if q.RewardNoble > 0 {
		parts = append(parts, utils.FormatNumber(q.RewardNoble)+" 👑")
	}
	if q.RewardRarity != "" {
		parts = append(parts, utils.RarityEmoji(q.RewardRarity)+" "+utils.RarityLabel(q.RewardRarity)+" card")
	}
	if len(parts) == 0 {
		return "no reward"
	}
	return strings.Join(parts, " + ")
}

// claimButtons offers one button per completed, unclaimed quest.
func claimButtons(userID string, quests []*models.UserQuest) []discord.ContainerComponent {
	var buttons []discord.InteractiveComponent
	for _, uq := range quests {
		if uq.Quest == nil || !uq.Completed || uq.Claimed {
			continue
		}
		buttons = append(buttons, discord.NewSuccessButton("Claim: "+uq.Quest.Description, ClaimButtonID(userID, uq.QuestID)))
	}

	var rows []discord.ContainerComponent
	for len(buttons) > 0 && len(rows) < 5 {
		n := min(len(buttons), 5)
		rows = append(rows, discord.NewActionRow(buttons[:n]...))
		buttons = buttons[n:]
	}
	return rows
}

func QuestClaimHandler(b *warpgate.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		questID := strings.TrimSpace(e.SlashCommandInteractionData().String("quest"))
		res, err := b.Ledger.ClaimQuestReward(ctx, e.User().ID.String(), questID)
		if err != nil {
			return utils.EH.HandleError(e, err)
		}
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{ClaimEmbed(e.User().Username, res)},
		})
	}
}

// QuestClaimComponent handles the claim buttons under /quests.
func QuestClaimComponent(b *warpgate.Bot) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		if e.Vars["user"] != e.User().ID.String() {
			return utils.EH.CreateErrorEmbed(e, "These are not your quests.")
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		res, err := b.Ledger.ClaimQuestReward(ctx, e.User().ID.String(), e.Vars["quest"])
		if err != nil {
			return utils.EH.HandleError(e, err)
		}
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{ClaimEmbed(e.User().Username, res)},
		})
	}
}

// QuestAutocomplete suggests the player's claimable quests.
func QuestAutocomplete(b *warpgate.Bot) handler.AutocompleteHandler {
	return func(e *handler.AutocompleteEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		var choices []discord.AutocompleteChoice
		query := strings.ToLower(e.Data.String("quest"))
		for _, kind := range []string{models.QuestKindDaily, models.QuestKindWeekly} {
			quests, err := b.Ledger.Quests(ctx, e.User().ID.String(), kind)
			if err != nil {
				return e.AutocompleteResult([]discord.AutocompleteChoice{})
			}
			for _, uq := range quests {
				if uq.Quest == nil || !uq.Completed || uq.Claimed {
					continue
				}
				if query != "" && !strings.Contains(strings.ToLower(uq.Quest.Description), query) {
					continue
				}
				choices = append(choices, discord.AutocompleteChoiceString{Name: uq.Quest.Description, Value: uq.QuestID})
			}
		}
		if len(choices) > 25 {
			choices = choices[:25]
		}
		return e.AutocompleteResult(choices)
	}
}

func ClaimEmbed(username string, res *progression.QuestReward) discord.Embed {
	var description strings.Builder
	fmt.Fprintf(&description, "**%s** completed **%s**\n\n", username, res.Quest.Description)
	if res.Coins > 0 {
		fmt.Fprintf(&description, "🩸 +%s Bloodcoins (balance %s)\n", utils.FormatNumber(res.Coins), utils.FormatNumber(res.Balance))
	}
	if res.Noble > 0 {
		fmt.Fprintf(&description, "👑 +%s Noblecoins (balance %s)\n", utils.FormatNumber(res.Noble), utils.FormatNumber(res.NobleBalance))
	}
	if res.Card != nil {
		fmt.Fprintf(&description, "%s **%s** · %s\n", utils.RarityEmoji(res.Card.Rarity), res.Card.Name, utils.RarityLabel(res.Card.Rarity))
	}

	embed := discord.NewEmbedBuilder().
		SetTitle("🎉 Quest Reward Claimed!").
		SetDescription(description.String()).
		SetColor(config.SuccessColor)
	if res.Card != nil && res.Card.ImageURL != "" {
		embed.SetThumbnail(res.Card.ImageURL)
	}
	return embed.Build()
}
