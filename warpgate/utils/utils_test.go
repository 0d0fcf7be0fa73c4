package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/ellavondegurechaff/warpgate/warpgate/config"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy"
	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "999", FormatNumber(999))
	assert.Equal(t, "10,000", FormatNumber(10000))
	assert.Equal(t, "-1,234,567", FormatNumber(-1234567))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0s", FormatDuration(0))
	assert.Equal(t, "45s", FormatDuration(45*time.Second))
	assert.Equal(t, "9m 59s", FormatDuration(599*time.Second))
	assert.Equal(t, "12h 0m 0s", FormatDuration(12*time.Hour))
	assert.Equal(t, "1s", FormatDuration(600*time.Millisecond))
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "▰▰▱▱", ProgressBar(5, 10, 4))
	assert.Equal(t, "▰▰▰▰", ProgressBar(20, 10, 4))
	assert.Equal(t, "▱▱▱▱", ProgressBar(3, 0, 4))
}

func TestRarityHelpers(t *testing.T) {
	assert.Equal(t, config.RarityLegendaryColor, RarityColor("legendary"))
	assert.Equal(t, config.RarityCommonColor, RarityColor("unknown"))
	assert.Equal(t, "Epic", RarityLabel("epic"))
}

func TestClassifyError(t *testing.T) {
	typ, msg := ClassifyError(economy.ErrNotRegistered)
	assert.Equal(t, NotFoundError, typ)
	assert.Contains(t, msg, "/register")

	typ, msg = ClassifyError(economy.CooldownActive(90 * time.Second))
	assert.Equal(t, BusinessLogicError, typ)
	assert.Equal(t, "This is on cooldown. Try again in 1m 30s.", msg)

	typ, msg = ClassifyError(economy.Banned("spam"))
	assert.Equal(t, PermissionError, typ)
	assert.Equal(t, "You are banned from the game: spam.", msg)

	typ, msg = ClassifyError(economy.Invalid("quantity must be at least 1"))
	assert.Equal(t, UserError, typ)
	assert.Equal(t, "Quantity must be at least 1.", msg)

	typ, _ = ClassifyError(economy.ErrInsufficientFunds)
	assert.Equal(t, BusinessLogicError, typ)

	typ, msg = ClassifyError(errors.New("pq: connection refused"))
	assert.Equal(t, SystemError, typ)
	assert.Equal(t, genericFailure, msg)
	assert.NotContains(t, msg, "pq")
}

func TestErrorEmbed(t *testing.T) {
	embed := ErrorEmbed(economy.ErrEmptyPool)
	assert.Equal(t, config.InfoColor, embed.Color)
	assert.Contains(t, embed.Description, "No cards are available for that rarity.")
}

func TestSuggest(t *testing.T) {
	cards := []string{"Ash Knight", "Azure Drake", "Verdant Warden", "Ashen Oracle"}

	got := Suggest("ash", cards, 5)
	assert.Contains(t, got, "Ash Knight")
	assert.Contains(t, got, "Ashen Oracle")
	assert.NotContains(t, got, "Verdant Warden")

	assert.Len(t, Suggest("", cards, 2), 2)
	assert.Empty(t, Suggest("zzz", cards, 5))
	assert.Len(t, AutocompleteChoices("a", cards, 3), 3)
}

func TestDidYouMean(t *testing.T) {
	cards := []string{"Ash Knight", "Azure Drake"}
	assert.Equal(t, " Did you mean **Azure Drake**?", DidYouMean("azdrk", cards))
	assert.Equal(t, "", DidYouMean("Ash Knight", cards))
	assert.Equal(t, "", DidYouMean("qqq", cards))
}

func TestWithSuggestion(t *testing.T) {
	cards := []string{"Ash Knight", "Azure Drake"}

	err := WithSuggestion(economy.ErrNotOwned, "azdrk", cards)
	assert.ErrorIs(t, err, economy.ErrNotOwned)
	_, msg := ClassifyError(err)
	assert.Equal(t, "You do not own that card. Did you mean **Azure Drake**?", msg)
	assert.Equal(t, "you do not own that card", economy.ErrNotOwned.Message)

	assert.Same(t, economy.ErrNotOwned, WithSuggestion(economy.ErrNotOwned, "qqq", cards))
	assert.Same(t, economy.ErrInsufficientFunds, WithSuggestion(economy.ErrInsufficientFunds, "azdrk", cards))
}
