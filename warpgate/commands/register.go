package commands

import (
	"github.com/disgoorg/disgo/handler"
	"github.com/ellavondegurechaff/warpgate/warpgate"
	"github.com/ellavondegurechaff/warpgate/warpgate/commands/admin"
	"github.com/ellavondegurechaff/warpgate/warpgate/commands/cards"
	"github.com/ellavondegurechaff/warpgate/warpgate/commands/economy"
	"github.com/ellavondegurechaff/warpgate/warpgate/commands/social"
	"github.com/ellavondegurechaff/warpgate/warpgate/commands/system"
	"github.com/ellavondegurechaff/warpgate/warpgate/handlers"
)

// Register wires every slash command, component, autocomplete and prefix
// command to b.
func Register(h *handler.Mux, b *warpgate.Bot) {
	// System commands
	h.Command("/version", system.VersionHandler(b))
	h.Command("/register", handlers.WrapWithLogging("register", system.RegisterHandler(b)))
	h.Command("/cooldowns", handlers.WrapWithLogging("cooldowns", system.CooldownsHandler(b)))

	// Card commands
	ownedCards := handlers.WrapAutocompleteWithLogging("owned-cards", cards.OwnedCardAutocomplete(b))
	h.Command("/draw", handlers.WrapWithLogging("draw", cards.DrawHandler(b)))
	h.Command("/inventory", handlers.WrapWithLogging("inventory", cards.InventoryHandler(b)))
	h.Autocomplete("/inventory", ownedCards)
	h.Command("/upgrade", handlers.WrapWithLogging("upgrade", cards.UpgradeHandler(b)))
	h.Autocomplete("/upgrade", ownedCards)
	h.Command("/view", handlers.WrapWithLogging("view", cards.ViewHandler(b)))
	h.Autocomplete("/view", handlers.WrapAutocompleteWithLogging("view", cards.CatalogAutocomplete(b)))

	// Economy commands
	h.Command("/daily", handlers.WrapWithLogging("daily", economy.DailyHandler(b)))
	h.Command("/wallet", handlers.WrapWithLogging("wallet", economy.WalletHandler(b)))
	h.Command("/butcher", handlers.WrapWithLogging("butcher", economy.ButcherHandler(b)))
	h.Autocomplete("/butcher", ownedCards)
	h.Command("/quests", handlers.WrapWithLogging("quests", economy.QuestsHandler(b)))
	h.Command("/questclaim", handlers.WrapWithLogging("questclaim", economy.QuestClaimHandler(b)))
	h.Autocomplete("/questclaim", handlers.WrapAutocompleteWithLogging("questclaim", economy.QuestAutocomplete(b)))
	h.Component("/questclaim/{user}/{quest}", handlers.WrapComponentWithLogging("questclaim", economy.QuestClaimComponent(b)))

	// Social commands
	h.Command("/profile", handlers.WrapWithLogging("profile", social.ProfileHandler(b)))
	h.Command("/buddy", handlers.WrapWithLogging("buddy", social.BuddyHandler(b)))
	h.Autocomplete("/buddy", ownedCards)
	h.Command("/team", handlers.WrapWithLogging("team", social.TeamHandler(b)))
	h.Command("/teamset", handlers.WrapWithLogging("teamset", social.TeamSetHandler(b)))
	h.Command("/faction", handlers.WrapWithLogging("faction", social.FactionHandler(b)))

	// Admin commands
	h.Command("/resetdraw", handlers.WrapWithLogging("resetdraw", admin.ResetDrawHandler(b)))
	h.Command("/bypass", handlers.WrapWithLogging("bypass", admin.BypassHandler(b)))
	h.Command("/ban", handlers.WrapWithLogging("ban", admin.BanHandler(b)))
	h.Command("/unban", handlers.WrapWithLogging("unban", admin.UnbanHandler(b)))
	h.Command("/addcard", handlers.WrapWithLogging("addcard", admin.AddCardHandler(b)))
	h.Autocomplete("/addcard", handlers.WrapAutocompleteWithLogging("addcard", admin.BaseNameAutocomplete(b)))

	// Prefix commands
	b.Prefix.Handle("draw", cards.DrawPrefixHandler(b))
	b.Prefix.Handle("daily", economy.DailyPrefixHandler(b))
	b.Prefix.Handle("wallet", economy.WalletPrefixHandler(b))
}
