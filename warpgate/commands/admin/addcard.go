package admin

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/ellavondegurechaff/warpgate/warpgate"
	"github.com/ellavondegurechaff/warpgate/warpgate/config"
	"github.com/ellavondegurechaff/warpgate/warpgate/database/models"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy/stats"
	"github.com/ellavondegurechaff/warpgate/warpgate/logger"
	"github.com/ellavondegurechaff/warpgate/warpgate/services"
	"github.com/ellavondegurechaff/warpgate/warpgate/utils"
)

var statMin = 0

var AddCard = discord.SlashCommandCreate{
	Name:        "addcard",
	Description: "Add a card template",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "name",
			Description: "Display name",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "rarity",
			Description: "Rarity tier",
			Required:    true,
			Choices:     utils.RarityChoices(),
		},
		discord.ApplicationCommandOptionString{
			Name:         "base_name",
			Description:  "Character shared across tiers (defaults to name)",
			Required:     false,
			Autocomplete: true,
		},
		discord.ApplicationCommandOptionInt{
			Name:        "health",
			Description: "Override the tier's default health",
			MinValue:    &statMin,
		},
		discord.ApplicationCommandOptionInt{
			Name:        "attack",
			Description: "Override the tier's default attack",
			MinValue:    &statMin,
		},
		discord.ApplicationCommandOptionInt{
			Name:        "speed",
			Description: "Override the tier's default speed",
			MinValue:    &statMin,
		},
		discord.ApplicationCommandOptionString{
			Name:        "description",
			Description: "Flavour text",
		},
		discord.ApplicationCommandOptionAttachment{
			Name:        "image",
			Description: "Card artwork",
		},
	},
}

func AddCardHandler(b *warpgate.Bot) handler.CommandHandler {
	return requireAdmin(b, "add cards", func(e *handler.CommandEvent) error {
		data := e.SlashCommandInteractionData()
		card := &models.Card{
			Name:        data.String("name"),
			BaseName:    data.String("base_name"),
			Rarity:      data.String("rarity"),
			Description: data.String("description"),
		}
		if v, ok := data.OptInt("health"); ok {
			card.Health = stats.Int64(int64(v))
		}
		if v, ok := data.OptInt("attack"); ok {
			card.Attack = stats.Int64(int64(v))
		}
		if v, ok := data.OptInt("speed"); ok {
			card.Speed = stats.Int64(int64(v))
		}
		attachment, hasImage := data.OptAttachment("image")

		if err := e.DeferCreateMessage(false); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		created, err := b.Ledger.CreateCard(ctx, card)
		if err != nil {
			return updateWithError(e, err)
		}
		logger.LogAudit("Card template created",
			slog.String("admin_id", e.User().ID.String()),
			slog.Int64("card_id", created.ID),
			slog.String("name", created.Name),
			slog.String("rarity", created.Rarity))

		note := ""
		if hasImage {
			note = attachImage(ctx, b, created, attachment)
		}

		_, err = e.UpdateInteractionResponse(discord.MessageUpdate{
			Embeds: &[]discord.Embed{CardEmbed(created, b.Ledger.Rules().Resolve(created, nil), note)},
		})
		return err
	})
}

// attachImage stores the artwork and returns a note for the reply.
func attachImage(ctx context.Context, b *warpgate.Bot, card *models.Card, attachment discord.Attachment) string {
	if b.SpacesService == nil {
		return "⚠️ Image storage is not configured, artwork was not saved."
	}
	if attachment.Size > services.MaxImageSize {
		return fmt.Sprintf("⚠️ Image exceeds %dMB, artwork was not saved.", services.MaxImageSize>>20)
	}
	data, err := services.FetchImage(ctx, attachment.URL)
	if err == nil {
		_, err = b.SpacesService.AttachCardImage(ctx, b.CardRepository, card, data)
	}
	if err != nil {
		slog.Error("Failed to store card image",
			slog.String("type", "sys"),
			slog.Int64("card_id", card.ID),
			slog.Any("error", err))
		return "⚠️ Artwork could not be saved: " + err.Error()
	}
	return ""
}

func updateWithError(e *handler.CommandEvent, err error) error {
	_, uerr := e.UpdateInteractionResponse(discord.MessageUpdate{
		Embeds: &[]discord.Embed{utils.ErrorEmbed(err)},
	})
	return uerr
}

func CardEmbed(card *models.Card, resolved stats.Stats, note string) discord.Embed {
	var description strings.Builder
	fmt.Fprintf(&description, "%s **%s** · %s\nBase: %s · ID `%d`\n%s",
		utils.RarityEmoji(card.Rarity), card.Name, utils.RarityLabel(card.Rarity),
		card.BaseName, card.ID, utils.FormatStats(resolved))
	if card.Description != "" {
		fmt.Fprintf(&description, "\n\n*%s*", card.Description)
	}
	if note != "" {
		description.WriteString("\n\n" + note)
	}

	embed := discord.NewEmbedBuilder().
		SetTitle("🃏 Card added").
		SetDescription(description.String()).
		SetColor(utils.RarityColor(card.Rarity))
	if card.ImageURL != "" {
		embed.SetImage(card.ImageURL)
	}
	return embed.Build()
}

// BaseNameAutocomplete suggests existing characters for new tiers.
func BaseNameAutocomplete(b *warpgate.Bot) handler.AutocompleteHandler {
	return func(e *handler.AutocompleteEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		all, err := b.CardRepository.All(ctx)
		if err != nil {
			return e.AutocompleteResult([]discord.AutocompleteChoice{})
		}
		seen := make(map[string]struct{}, len(all))
		names := make([]string, 0, len(all))
		for _, c := range all {
			if _, ok := seen[c.BaseName]; ok {
				continue
			}
			seen[c.BaseName] = struct{}{}
			names = append(names, c.BaseName)
		}
		return e.AutocompleteResult(utils.AutocompleteChoices(e.Data.String("base_name"), names, 25))
	}
}
