// Command content manages game content outside of Discord.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ellavondegurechaff/warpgate/warpgate"
	"github.com/ellavondegurechaff/warpgate/warpgate/config"
	"github.com/ellavondegurechaff/warpgate/warpgate/database"
	"github.com/ellavondegurechaff/warpgate/warpgate/database/repositories"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy/progression"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy/rewards"
	"github.com/ellavondegurechaff/warpgate/warpgate/logger"
)

var configPath string

var rootCMD = &cobra.Command{
	Use:          "content",
	Short:        "Manage Warp Gate cards, artwork and quests",
	SilenceUsage: true,
}

func init() {
	rootCMD.PersistentFlags().StringVar(&configPath, "config", "config.toml", "path to config")
	rootCMD.AddCommand(seedCMD, uploadCMD, rotateCMD)
}

func main() {
	if err := rootCMD.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// env holds the services a subcommand needs.
type env struct {
	cfg    *warpgate.Config
	db     *database.DB
	cards  repositories.CardRepository
	ledger *progression.Ledger
}

func (e *env) Close() {
	e.db.Close()
}

func setup(ctx context.Context) (*env, error) {
	cfg, err := warpgate.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(logger.NewHandler(logger.Options{
		Level:   logger.ParseLevel(cfg.Log.Level),
		NoColor: cfg.Log.NoColor,
	})))

	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.InitializeSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	cache, err := repositories.NewCardCache(config.CardCacheSize, config.CardCacheTTL)
	if err != nil {
		db.Close()
		return nil, err
	}
	store := repositories.NewStore(db, cache)

	return &env{
		cfg:    cfg,
		db:     db,
		cards:  repositories.NewCardRepository(db.BunDB(), cache),
		ledger: progression.NewLedger(store, cfg.Ruleset(), rewards.NewRoller(rewards.DefaultSource()), economy.SystemClock()),
	}, nil
}
