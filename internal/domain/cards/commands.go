package cards

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"
	"github.com/ellavondegurechaff/warpgate/warpgate/config"
	"github.com/ellavondegurechaff/warpgate/warpgate/utils"
)

type Commands interface {
	Inventory(event *handler.CommandEvent) error
	View(event *handler.CommandEvent) error
}

type commands struct {
	svc       Service
	paginator *paginator.Manager
}

func NewCommands(svc Service, paginator *paginator.Manager) *commands {
	return &commands{
		svc:       svc,
		paginator: paginator,
	}
}

func (c *commands) Inventory(event *handler.CommandEvent) error {
	data := event.SlashCommandInteractionData()
	filter := Filter{
		Name:   strings.TrimSpace(data.String("name")),
		Rarity: strings.TrimSpace(data.String("rarity")),
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
	defer cancel()

	cards, pages, err := c.svc.GetUserCards(ctx, event.User().ID.String(), filter)
	switch {
	case errors.Is(err, ErrNoCards):
		return utils.EH.CreateInfoEmbed(event, "Your collection is empty. Use `/draw` to get your first card.")
	case errors.Is(err, ErrNoMatch):
		return utils.EH.CreateInfoEmbed(event, "No cards match your criteria.")
	case err != nil:
		return utils.EH.HandleError(event, err)
	}

	return c.paginator.Create(event.Respond, paginator.Pages{
		ID:      event.ID().String(),
		Creator: event.User().ID,
		PageFunc: func(page int, embed *discord.EmbedBuilder) {
			startIdx := page * config.CardsPerPage
			endIdx := min(startIdx+config.CardsPerPage, len(cards))

			description := FormatCards(cards[startIdx:endIdx])
			if filter.Active() {
				description = filter.String() + "\n\n" + description
			}

			embed.
				SetTitle(event.User().Username+"'s Collection").
				SetDescription(description).
				SetColor(config.EmbedDefaultColor).
				SetFooter(fmt.Sprintf("Page %d/%d • Total: %d", page+1, pages, len(cards)), "")
		},
		Pages:      pages,
		ExpireMode: paginator.ExpireModeAfterLastUsage,
	}, false)
}

// View browses the card catalogue. A name that narrows it to one card shows
// that card in full.
func (c *commands) View(event *handler.CommandEvent) error {
	data := event.SlashCommandInteractionData()
	filter := Filter{
		Name:   strings.TrimSpace(data.String("name")),
		Rarity: strings.TrimSpace(data.String("rarity")),
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
	defer cancel()

	cards, pages, err := c.svc.GetCatalog(ctx, filter)
	switch {
	case errors.Is(err, ErrNoCards):
		return utils.EH.CreateInfoEmbed(event, "No cards have been added yet.")
	case errors.Is(err, ErrNoMatch):
		return utils.EH.CreateInfoEmbed(event, "No cards match your criteria.")
	case err != nil:
		return utils.EH.HandleError(event, err)
	}

	if filter.Name != "" && len(cards) == 1 {
		return event.CreateMessage(discord.NewMessageCreateBuilder().
			SetEmbeds(CardDetail(cards[0])).
			Build())
	}

	title := "Available Cards"
	if filter.Rarity != "" {
		title += " (" + utils.RarityLabel(strings.ToLower(filter.Rarity)) + ")"
	}

	return c.paginator.Create(event.Respond, paginator.Pages{
		ID:      event.ID().String(),
		Creator: event.User().ID,
		PageFunc: func(page int, embed *discord.EmbedBuilder) {
			startIdx := page * config.CardsPerPage
			endIdx := min(startIdx+config.CardsPerPage, len(cards))

			description := FormatCatalog(cards[startIdx:endIdx])
			if filter.Name != "" {
				description = Filter{Name: filter.Name}.String() + "\n\n" + description
			}

			embed.
				SetTitle(title).
				SetDescription(description).
				SetColor(config.EmbedDefaultColor).
				SetFooter(fmt.Sprintf("Page %d/%d • Total: %d", page+1, pages, len(cards)), "")
		},
		Pages:      pages,
		ExpireMode: paginator.ExpireModeAfterLastUsage,
	}, false)
}

// CardDetail shows one catalogue card with its artwork.
func CardDetail(card Card) discord.Embed {
	embed := discord.NewEmbedBuilder().
		SetTitle(fmt.Sprintf("%s (#%d)", card.Name, card.ID)).
		SetDescription(card.Description).
		SetColor(utils.RarityColor(card.Rarity)).
		AddField("Rarity", utils.RarityEmoji(card.Rarity)+" "+utils.RarityLabel(card.Rarity), true).
		AddField("Stats", utils.FormatStats(card.Stats), true)
	if card.ImageURL != "" {
		embed.SetImage(card.ImageURL)
	}
	return embed.Build()
}

// FormatCatalog renders one line per template.
func FormatCatalog(cards []Card) string {
	var description strings.Builder
	for _, card := range cards {
		fmt.Fprintf(&description, "%s **%s** `#%d` · %s\n",
			utils.RarityEmoji(card.Rarity),
			card.Name,
			card.ID,
			utils.FormatStats(card.Stats),
		)
	}
	return description.String()
}

// FormatCards renders one line per card.
func FormatCards(cards []Card) string {
	var description strings.Builder
	for _, card := range cards {
		amountText := ""
		if card.Amount > 1 {
			amountText = fmt.Sprintf(" x%d", card.Amount)
		}
		fmt.Fprintf(&description, "%s **%s**%s · Lv.%d · %s\n",
			utils.RarityEmoji(card.Rarity),
			card.Name,
			amountText,
			card.Level,
			utils.FormatStats(card.Stats),
		)
	}
	return description.String()
}
