package cards

import (
	"context"
	"errors"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/ellavondegurechaff/warpgate/warpgate"
	"github.com/ellavondegurechaff/warpgate/warpgate/config"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy"
	"github.com/ellavondegurechaff/warpgate/warpgate/utils"
)

// OwnedCardAutocomplete suggests names from the invoking player's collection.
// Shared by every command with a "name" option naming an owned card.
func OwnedCardAutocomplete(b *warpgate.Bot) handler.AutocompleteHandler {
	return func(e *handler.AutocompleteEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		names, err := b.Ledger.OwnedCardNames(ctx, e.User().ID.String())
		if err != nil {
			return e.AutocompleteResult([]discord.AutocompleteChoice{})
		}
		return e.AutocompleteResult(utils.AutocompleteChoices(e.Data.String("name"), names, 25))
	}
}

// SuggestOwned adds the closest owned card name to a not-owned error.
func SuggestOwned(ctx context.Context, b *warpgate.Bot, userID, name string, err error) error {
	if !errors.Is(err, economy.ErrNotOwned) {
		return err
	}
	names, nameErr := b.Ledger.OwnedCardNames(ctx, userID)
	if nameErr != nil {
		return err
	}
	return utils.WithSuggestion(err, name, names)
}
