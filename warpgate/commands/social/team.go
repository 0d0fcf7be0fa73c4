package social

import (
	"context"
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"
	"github.com/ellavondegurechaff/warpgate/warpgate"
	"github.com/ellavondegurechaff/warpgate/warpgate/config"
	"github.com/ellavondegurechaff/warpgate/warpgate/database/models"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy/progression"
	"github.com/ellavondegurechaff/warpgate/warpgate/utils"
)

var Team = discord.SlashCommandCreate{
	Name:        "team",
	Description: "🛡️ Show your team",
}

var TeamSet = discord.SlashCommandCreate{
	Name:        "teamset",
	Description: "🛡️ Replace your team. The first card is the captain",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "cards",
			Description: "Comma separated name:rarity list, e.g. Vesper:rare, Aurelia:common",
			Required:    true,
		},
	},
}

// ParseCardRefs parses "name:rarity, name:rarity" into card references.
func ParseCardRefs(input string) ([]progression.CardRef, error) {
	var refs []progression.CardRef
	for _, entry := range strings.Split(input, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		i := strings.LastIndex(entry, ":")
		if i <= 0 || i == len(entry)-1 {
			return nil, economy.Invalid("%q must look like name:rarity", entry)
		}
		name := strings.TrimSpace(entry[:i])
		rarity := strings.ToLower(strings.TrimSpace(entry[i+1:]))
		if !models.ValidRarity(rarity) {
			return nil, economy.Invalid("unknown rarity %q", rarity)
		}
		refs = append(refs, progression.CardRef{Name: name, Rarity: rarity})
	}
	if len(refs) == 0 {
		return nil, economy.Invalid("a team needs at least one card")
	}
	return refs, nil
}

func TeamSetHandler(b *warpgate.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		refs, err := ParseCardRefs(e.SlashCommandInteractionData().String("cards"))
		if err != nil {
			return utils.EH.HandleError(e, err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		members, err := b.Ledger.SetTeam(ctx, e.User().ID.String(), refs)
		if err != nil {
			return utils.EH.HandleError(e, err)
		}
		return utils.EH.CreateSuccessEmbed(e, "🛡️ Team saved!\n\n"+FormatTeam(members))
	}
}

func TeamHandler(b *warpgate.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		members, err := b.Ledger.Team(ctx, e.User().ID.String())
		if err != nil {
			return utils.EH.HandleError(e, err)
		}
		if len(members) == 0 {
			return utils.EH.CreateInfoEmbed(e, "Your team is empty. Use `/teamset` to build one.")
		}

		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				m := members[page]
				title := fmt.Sprintf("🛡️ %s's Team · Slot %d", e.User().Username, m.Slot)
				if m.Captain {
					title += " 👑"
				}
				embed.
					SetTitle(title).
					SetDescription(fmt.Sprintf("%s **%s** · %s\nLevel **%d**\n\n%s",
						utils.RarityEmoji(m.Card.Rarity), m.Card.Name, utils.RarityLabel(m.Card.Rarity),
						m.Level, utils.FormatStats(m.Stats))).
					SetColor(utils.RarityColor(m.Card.Rarity)).
					SetFooter(fmt.Sprintf("Page %d/%d", page+1, len(members)), "")
				if m.Card.ImageURL != "" {
					embed.SetImage(m.Card.ImageURL)
				}
			},
			Pages:      len(members),
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, false)
	}
}

// FormatTeam lists members one per line, captain marked.
func FormatTeam(members []progression.TeamMember) string {
	var sb strings.Builder
	for _, m := range members {
		captain := ""
		if m.Captain {
			captain = " 👑"
		}
		fmt.Fprintf(&sb, "`%d.` %s **%s**%s · Lv.%d · %s\n",
			m.Slot, utils.RarityEmoji(m.Card.Rarity), m.Card.Name, captain, m.Level, utils.FormatStats(m.Stats))
	}
	return sb.String()
}
