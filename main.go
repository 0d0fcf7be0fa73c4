package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/handler"
	"github.com/ellavondegurechaff/warpgate/internal/domain/cards"
	"github.com/ellavondegurechaff/warpgate/warpgate"
	"github.com/ellavondegurechaff/warpgate/warpgate/commands"
	"github.com/ellavondegurechaff/warpgate/warpgate/config"
	"github.com/ellavondegurechaff/warpgate/warpgate/database"
	"github.com/ellavondegurechaff/warpgate/warpgate/database/repositories"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy/fusion"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy/progression"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy/rewards"
	"github.com/ellavondegurechaff/warpgate/warpgate/logger"
	"github.com/ellavondegurechaff/warpgate/warpgate/services"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	shouldSyncCommands := flag.Bool("sync-commands", false, "Whether to sync commands to discord")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := warpgate.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}

	slog.SetDefault(slog.New(logger.NewHandler(logger.Options{
		Level:     logger.ParseLevel(cfg.Log.Level),
		AddSource: cfg.Log.AddSource,
		NoColor:   cfg.Log.NoColor,
	})))

	logger.LogSystem("Starting Warp Gate",
		slog.String("version", version),
		slog.String("commit", commit))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	dbStartTime := time.Now()
	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		logger.LogError("Database connection failed", err,
			slog.Duration("attempted_for", time.Since(dbStartTime)))
		os.Exit(-1)
	}
	defer db.Close()

	if err := db.InitializeSchema(ctx); err != nil {
		logger.LogError("Failed to initialize database schema", err)
		os.Exit(-1)
	}
	logger.LogSystem("Database ready",
		slog.String("database", cfg.DB.Database),
		slog.Duration("took", time.Since(dbStartTime)))

	cache, err := repositories.NewCardCache(config.CardCacheSize, config.CardCacheTTL)
	if err != nil {
		logger.LogError("Failed to create card cache", err)
		os.Exit(-1)
	}

	rules := cfg.Ruleset()

	b := warpgate.New(*cfg, version, commit)
	b.DB = db
	b.Store = repositories.NewStore(db, cache)
	b.CardRepository = repositories.NewCardRepository(db.BunDB(), cache)
	b.Ledger = progression.NewLedger(b.Store, rules, rewards.NewRoller(rewards.DefaultSource()), economy.SystemClock())
	b.Fusion = fusion.NewEngine(b.Store, rules)
	b.CardService = cards.NewService(b.Ledger, b.CardRepository, rules)
	b.CardCommands = cards.NewCommands(b.CardService, b.Paginator)

	if cfg.Spaces.Enabled() {
		spaces, err := services.NewSpacesService(ctx,
			cfg.Spaces.Key,
			cfg.Spaces.Secret,
			cfg.Spaces.Region,
			cfg.Spaces.Bucket,
			cfg.Spaces.CardRoot,
		)
		if err != nil {
			logger.LogError("Failed to initialize Spaces", err)
			os.Exit(-1)
		}
		b.SpacesService = spaces
	} else {
		slog.Warn("Spaces is not configured, card artwork uploads are disabled", slog.String("type", "sys"))
	}

	h := handler.New()
	commands.Register(h, b)

	if err = b.SetupBot(h, bot.NewListenerFunc(b.OnReady), bot.NewListenerFunc(b.Prefix.OnMessageCreate)); err != nil {
		logger.LogError("Failed to setup bot", err,
			slog.String("error_details", fmt.Sprintf("%+v", err)),
			slog.String("component", "bot_setup"))
		os.Exit(-1)
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		b.Client.Close(ctx)
	}()

	runCtx, stop := context.WithCancel(context.Background())
	defer stop()

	if cfg.Game.RotatesQuests() {
		go progression.NewQuestRotator(b.Ledger, config.QuestRotationInterval).Run(runCtx)
	}

	if *shouldSyncCommands {
		logger.LogSystem("Syncing commands", slog.Any("guild_ids", cfg.Bot.DevGuilds))
		if err = handler.SyncCommands(b.Client, commands.Commands, cfg.Bot.DevGuilds); err != nil {
			logger.LogError("Failed to sync commands", err, slog.String("component", "command_sync"))
		}
	}

	gatewayCtx, gatewayCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer gatewayCancel()
	if err = b.Client.OpenGateway(gatewayCtx); err != nil {
		logger.LogError("Failed to open gateway", err, slog.String("component", "gateway"))
		os.Exit(-1)
	}

	logger.LogSystem("Bot is running. Press CTRL-C to exit.")
	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s
	logger.LogSystem("Shutting down bot...")
}
