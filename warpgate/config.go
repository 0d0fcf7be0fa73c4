package warpgate

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/disgoorg/snowflake/v2"
	"github.com/ellavondegurechaff/warpgate/warpgate/database"
	"github.com/ellavondegurechaff/warpgate/warpgate/database/models"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix namespaces every environment override.
const EnvPrefix = "WARPGATE_"

// LoadConfig decodes the TOML file at path and applies environment
// overrides on top. A missing file is fine when the environment carries
// the required settings.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to open config: %w", err)
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type Config struct {
	Log    LogConfig         `toml:"log"`
	Bot    BotConfig         `toml:"bot"`
	DB     database.DBConfig `toml:"db"`
	Game   GameConfig        `toml:"game"`
	Spaces SpacesConfig      `toml:"spaces"`
}

type BotConfig struct {
	DevGuilds []snowflake.ID `toml:"dev_guilds"`
	AdminIDs  []snowflake.ID `toml:"admin_ids"`
	Token     string         `toml:"token" env:"BOT_TOKEN"`
	Prefix    string         `toml:"prefix" env:"PREFIX"`
}

// IsAdmin reports whether id may run admin commands.
func (c BotConfig) IsAdmin(id snowflake.ID) bool {
	for _, admin := range c.AdminIDs {
		if admin == id {
			return true
		}
	}
	return false
}

type LogConfig struct {
	Level     string `toml:"level" env:"LOG_LEVEL"`
	AddSource bool   `toml:"add_source" env:"LOG_ADD_SOURCE"`
	NoColor   bool   `toml:"no_color" env:"LOG_NO_COLOR"`
}

type SpacesConfig struct {
	Key      string `toml:"key" env:"SPACES_KEY"`
	Secret   string `toml:"secret" env:"SPACES_SECRET"`
	Region   string `toml:"region" env:"SPACES_REGION"`
	Bucket   string `toml:"bucket" env:"SPACES_BUCKET"`
	CardRoot string `toml:"cardroot" env:"SPACES_CARD_ROOT"`
}

// Enabled reports whether artwork uploads are configured.
func (c SpacesConfig) Enabled() bool {
	return c.Key != "" && c.Secret != "" && c.Region != "" && c.Bucket != ""
}

// GameConfig overrides economy constants. Zero values keep the defaults.
type GameConfig struct {
	DrawCooldownSeconds int64                  `toml:"draw_cooldown_seconds" env:"DRAW_COOLDOWN"`
	DrawCoins           int64                  `toml:"draw_coins" env:"DRAW_COINS"`
	DrawXP              int64                  `toml:"draw_xp" env:"DRAW_XP"`
	DailyCoins          int64                  `toml:"daily_coins" env:"DAILY_COINS"`
	MimicChance         *float64               `toml:"mimic_chance" env:"MIMIC_CHANCE"`
	MimicMinLevel       int64                  `toml:"mimic_min_level" env:"MIMIC_MIN_LEVEL"`
	DrawWeights         []economy.RarityWeight `toml:"draw_weights"`
	MimicWeights        []economy.RarityWeight `toml:"mimic_weights"`
	QuestRotation       *bool                  `toml:"quest_rotation" env:"QUEST_ROTATION"`
}

// RotatesQuests reports whether the bot runs the quest rotator.
func (g GameConfig) RotatesQuests() bool {
	return g.QuestRotation == nil || *g.QuestRotation
}

func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Bot.Token) == "" {
		errs = append(errs, errors.New("bot.token is required"))
	}
	if c.DB.URL == "" && c.DB.Host == "" {
		errs = append(errs, errors.New("db.url or db.host is required"))
	}
	if c.Game.DrawCooldownSeconds < 0 {
		errs = append(errs, errors.New("game.draw_cooldown_seconds must be positive"))
	}
	if c.Game.MimicChance != nil && (*c.Game.MimicChance < 0 || *c.Game.MimicChance > 1) {
		errs = append(errs, errors.New("game.mimic_chance must be within [0, 1]"))
	}
	if err := validateWeights("game.draw_weights", c.Game.DrawWeights); err != nil {
		errs = append(errs, err)
	}
	if err := validateWeights("game.mimic_weights", c.Game.MimicWeights); err != nil {
		errs = append(errs, err)
	}
	if len(c.Bot.Prefix) > 5 {
		errs = append(errs, errors.New("bot.prefix must be at most 5 characters"))
	}
	return errors.Join(errs...)
}

func validateWeights(field string, table []economy.RarityWeight) error {
	if len(table) == 0 {
		return nil
	}
	var total float64
	for _, w := range table {
		if !models.ValidRarity(w.Rarity) {
			return fmt.Errorf("%s: unknown rarity %q", field, w.Rarity)
		}
		if w.Weight < 0 {
			return fmt.Errorf("%s: negative weight for %s", field, w.Rarity)
		}
		total += w.Weight
	}
	if total <= 0 {
		return fmt.Errorf("%s: weights sum to zero", field)
	}
	return nil
}

// Ruleset applies [game] on top of economy.DefaultRuleset.
func (c *Config) Ruleset() economy.Ruleset {
	rules := economy.DefaultRuleset()
	g := c.Game

	if g.DrawCooldownSeconds > 0 {
		rules.DrawCooldown = time.Duration(g.DrawCooldownSeconds) * time.Second
	}
	if g.DrawCoins > 0 {
		rules.DrawCoins = g.DrawCoins
	}
	if g.DrawXP > 0 {
		rules.DrawXP = g.DrawXP
	}
	if g.DailyCoins > 0 {
		rules.DailyCoins = g.DailyCoins
	}
	if g.MimicChance != nil {
		rules.MimicChance = *g.MimicChance
	}
	if g.MimicMinLevel > 0 {
		rules.MimicMinLevel = g.MimicMinLevel
	}
	if len(g.DrawWeights) > 0 {
		rules.DrawWeights = economy.WeightTable(g.DrawWeights)
	}
	if len(g.MimicWeights) > 0 {
		rules.MimicWeights = economy.WeightTable(g.MimicWeights)
	}
	return rules
}

// CommandPrefix returns the text-command prefix, "!" by default.
func (c *Config) CommandPrefix() string {
	if c.Bot.Prefix == "" {
		return "!"
	}
	return c.Bot.Prefix
}
