package warpgate

import (
	"context"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/cache"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/paginator"
	"github.com/ellavondegurechaff/warpgate/internal/domain/cards"
	"github.com/ellavondegurechaff/warpgate/warpgate/database"
	"github.com/ellavondegurechaff/warpgate/warpgate/database/repositories"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy/fusion"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy/progression"
	"github.com/ellavondegurechaff/warpgate/warpgate/handlers"
	"github.com/ellavondegurechaff/warpgate/warpgate/services"
)

func New(cfg Config, version string, commit string) *Bot {
	return &Bot{
		Cfg:       cfg,
		Paginator: paginator.New(),
		Prefix:    handlers.NewPrefixRouter(cfg.CommandPrefix()),
		Version:   version,
		Commit:    commit,
	}
}

type Bot struct {
	Cfg            Config
	Client         bot.Client
	Paginator      *paginator.Manager
	Prefix         *handlers.PrefixRouter
	Version        string
	Commit         string
	DB             *database.DB
	Store          *repositories.Store
	CardRepository repositories.CardRepository
	Ledger         *progression.Ledger
	Fusion         *fusion.Engine
	CardService    cards.Service
	CardCommands   cards.Commands
	SpacesService  *services.SpacesService
}

func (b *Bot) SetupBot(listeners ...bot.EventListener) error {
	client, err := disgo.New(b.Cfg.Bot.Token,
		bot.WithGatewayConfigOpts(gateway.WithIntents(gateway.IntentGuilds, gateway.IntentGuildMessages, gateway.IntentMessageContent)),
		bot.WithCacheConfigOpts(cache.WithCaches(cache.FlagGuilds)),
		bot.WithEventListeners(b.Paginator),
		bot.WithEventListeners(listeners...),
	)
	if err != nil {
		return err
	}

	b.Client = client
	return nil
}

func (b *Bot) OnReady(_ *events.Ready) {
	slog.Info("Warp Gate is now ready",
		slog.String("type", "sys"),
		slog.String("version", b.Version),
		slog.String("commit", b.Commit))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := b.Client.SetPresence(ctx,
		gateway.WithPlayingActivity("/draw"),
		gateway.WithOnlineStatus(discord.OnlineStatusOnline)); err != nil {
		slog.Error("Failed to set presence", slog.Any("error", err))
	}
}

// IsAdmin reports whether the invoking user may run admin commands.
func (b *Bot) IsAdmin(user discord.User) bool {
	return b.Cfg.Bot.IsAdmin(user.ID)
}
