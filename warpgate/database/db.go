package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/ellavondegurechaff/warpgate/warpgate/config"
	"github.com/ellavondegurechaff/warpgate/warpgate/database/models"
	"github.com/uptrace/bun"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

const (
	defaultConnTimeout   = 5 * time.Second
	defaultMaxRetries    = 3
	defaultRetryInterval = time.Second
	schemaVersion        = 2 // bump when schema changes
)

type DBConfig struct {
	URL          string `toml:"url" env:"DATABASE_URL"`
	Host         string `toml:"host" env:"DB_HOST"`
	Port         int    `toml:"port" env:"DB_PORT"`
	User         string `toml:"user" env:"DB_USER"`
	Password     string `toml:"password" env:"DB_PASSWORD"`
	Database     string `toml:"database" env:"DB_NAME"`
	PoolSize     int    `toml:"pool_size"`
	MaxIdleConns int    `toml:"max_idle_conns"`
	MaxLifetime  int    `toml:"max_lifetime"`
}

// ConnString returns URL when set, otherwise a DSN built from the discrete fields.
func (c DBConfig) ConnString() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?connect_timeout=5",
		url.PathEscape(c.User), url.PathEscape(c.Password), c.Host, c.Port, c.Database,
	)
}

type DB struct {
	pool  *pgxpool.Pool
	bunDB *bun.DB
}

func New(ctx context.Context, cfg DBConfig) (*DB, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	if err := waitForServer(poolConfig.ConnConfig.Host, poolConfig.ConnConfig.Port); err != nil {
		return nil, err
	}

	if cfg.PoolSize > 0 {
		poolConfig.MaxConns = int32(cfg.PoolSize)
	}
	if cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = int32(cfg.MaxIdleConns)
	}
	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = time.Duration(cfg.MaxLifetime) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	return &DB{pool: pool, bunDB: newBunDB(cfg.ConnString())}, nil
}

// waitForServer dials the server a few times before the pool is built so a
// database that is still starting does not fail the boot.
func waitForServer(host string, port uint16) error {
	addr := net.JoinHostPort(host, strconv.Itoa(int(port)))

	tryDial := func() (net.Conn, error) {
		switch {
		case os.Getenv("DB_DIAL_FORCE_IPV4") == "1":
			return net.DialTimeout("tcp4", addr, defaultConnTimeout)
		case os.Getenv("DB_DIAL_FORCE_IPV6") == "1":
			return net.DialTimeout("tcp6", addr, defaultConnTimeout)
		}
		// Prefer IPv4, then fall back to IPv6
		if c, err := net.DialTimeout("tcp4", addr, defaultConnTimeout); err == nil {
			return c, nil
		}
		return net.DialTimeout("tcp6", addr, defaultConnTimeout)
	}

	var err error
	for i := 0; i < defaultMaxRetries; i++ {
		var conn net.Conn
		if conn, err = tryDial(); err == nil {
			conn.Close()
			return nil
		}
		slog.Warn("Database not reachable, retrying",
			slog.String("type", "db"),
			slog.String("addr", addr),
			slog.Int("attempt", i+1),
			slog.Any("error", err))
		time.Sleep(defaultRetryInterval)
	}
	return fmt.Errorf("failed to connect after %d attempts: %w", defaultMaxRetries, err)
}

func newBunDB(dsn string) *bun.DB {
	opts := []pgdriver.Option{pgdriver.WithDSN(dsn)}
	// Default to disabling SSL for Bun unless explicitly overridden by env
	switch os.Getenv("PG_SSLMODE") {
	case "", "disable":
		opts = append(opts, pgdriver.WithInsecure(true))
	}
	sqldb := sql.OpenDB(pgdriver.NewConnector(opts...))
	return bun.NewDB(sqldb, pgdialect.New())
}

func (db *DB) BunDB() *bun.DB {
	return db.bunDB
}

// RunInTx runs fn in a read-committed transaction bounded by the default
// query timeout. Any error from fn rolls the transaction back.
func (db *DB) RunInTx(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	start := time.Now()
	err := db.bunDB.RunInTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
	took := time.Since(start)

	if took > config.SlowTxThreshold {
		slog.Warn("Slow transaction",
			slog.String("type", "db"),
			slog.Duration("took", took),
			slog.Bool("committed", err == nil))
	}
	return err
}

func (db *DB) ExecWithLog(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	start := time.Now()
	result, err := db.pool.Exec(ctx, sql, args...)
	duration := time.Since(start)

	if err != nil {
		slog.Error("Query failed",
			slog.String("type", "db"),
			slog.String("operation", "exec"),
			slog.String("query", sql),
			slog.Any("args", args),
			slog.Duration("took", duration),
			slog.Any("error", err),
		)
		return result, err
	}

	slog.Debug("Query executed",
		slog.String("type", "db"),
		slog.String("operation", "exec"),
		slog.String("query", sql),
		slog.Any("args", args),
		slog.Duration("took", duration),
		slog.Int64("affected_rows", result.RowsAffected()),
	)
	return result, nil
}

func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
	if db.bunDB != nil {
		db.bunDB.Close()
	}
}

// InitializeSchema creates all required tables, constraints and indexes and
// seeds the default quest board.
func (db *DB) InitializeSchema(ctx context.Context) error {
	// Fast init path for development: skip when schema version matches
	if os.Getenv("DB_FAST_INIT") == "1" {
		if err := db.ensureAppMeta(ctx); err == nil {
			if v, _ := db.GetMeta(ctx, "schema_version"); v == strconv.Itoa(schemaVersion) {
				slog.Info("Fast DB init: schema up-to-date, skipping initialization",
					slog.String("mode", "DB_FAST_INIT"),
					slog.Int("schema_version", schemaVersion))
				return nil
			}
		}
	}

	// Create tables in the correct order to handle foreign key constraints
	tables := []interface{}{
		(*models.Player)(nil),
		(*models.Card)(nil),
		(*models.UserCard)(nil),
		(*models.QuestTemplate)(nil),
		(*models.UserQuest)(nil),
		(*models.TeamSlot)(nil),
		(*models.AppMeta)(nil),
	}

	for _, model := range tables {
		_, err := db.bunDB.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	// Columns added after the first schema version.
	columns := []string{
		"ALTER TABLE quest_templates ADD COLUMN IF NOT EXISTS reward_noble BIGINT NOT NULL DEFAULT 0;",
	}
	for _, stmt := range columns {
		if _, err := db.ExecWithLog(ctx, stmt); err != nil {
			return fmt.Errorf("failed to add column: %w", err)
		}
	}

	if err := db.ensureConstraints(ctx); err != nil {
		return fmt.Errorf("failed to add constraints: %w", err)
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_players_faction ON players(faction);",
		"CREATE INDEX IF NOT EXISTS idx_cards_rarity ON cards(rarity);",
		"CREATE INDEX IF NOT EXISTS idx_cards_lower_base_name ON cards(lower(base_name), rarity);",
		"CREATE INDEX IF NOT EXISTS idx_user_cards_user_id_amount ON user_cards(user_id) WHERE amount > 0;",
		"CREATE INDEX IF NOT EXISTS idx_user_cards_card_id ON user_cards(card_id);",
		"CREATE INDEX IF NOT EXISTS idx_quest_templates_kind ON quest_templates(kind, sort_order);",
		"CREATE INDEX IF NOT EXISTS idx_user_quests_user_id ON user_quests(user_id);",
		"CREATE INDEX IF NOT EXISTS idx_user_quests_open ON user_quests(user_id, quest_id) WHERE claimed = false;",
	}

	for _, idx := range indexes {
		if _, err := db.ExecWithLog(ctx, idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	if err := db.InitializeQuestData(ctx); err != nil {
		return fmt.Errorf("failed to initialize quest data: %w", err)
	}

	if err := db.SetMeta(ctx, "schema_version", strconv.Itoa(schemaVersion)); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}

	slog.Info("Database schema initialized",
		slog.String("type", "db"),
		slog.Int("schema_version", schemaVersion))
	return nil
}

// ensureConstraints adds the CHECK constraints bun cannot express in tags.
func (db *DB) ensureConstraints(ctx context.Context) error {
	checks := []struct{ table, name, expr string }{
		{"players", "players_bloodcoins_nonneg", "bloodcoins >= 0"},
		{"players", "players_noblecoins_nonneg", "noblecoins >= 0"},
		{"user_cards", "user_cards_amount_nonneg", "amount >= 0"},
		{"cards", "cards_rarity_known", "rarity IN ('common', 'rare', 'epic', 'legendary')"},
		{"team_slots", "team_slots_slot_range", "slot >= 1"},
	}

	for _, c := range checks {
		stmt := fmt.Sprintf(`DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '%s') THEN
		ALTER TABLE %s ADD CONSTRAINT %s CHECK (%s);
	END IF;
END $$;`, c.name, c.table, c.name, c.expr)
		if _, err := db.ExecWithLog(ctx, stmt); err != nil {
			return fmt.Errorf("constraint %s: %w", c.name, err)
		}
	}
	return nil
}

func (db *DB) ensureAppMeta(ctx context.Context) error {
	_, err := db.ExecWithLog(ctx, `CREATE TABLE IF NOT EXISTS app_meta (key TEXT PRIMARY KEY, value TEXT NOT NULL DEFAULT '')`)
	return err
}

// GetMeta returns the app_meta value for key, or "" when unset.
func (db *DB) GetMeta(ctx context.Context, key string) (string, error) {
	var v string
	err := db.pool.QueryRow(ctx, `SELECT value FROM app_meta WHERE key = $1`, key).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (db *DB) SetMeta(ctx context.Context, key, value string) error {
	q := `INSERT INTO app_meta (key, value) VALUES ($1, $2)
            ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	_, err := db.ExecWithLog(ctx, q, key, value)
	return err
}

func (db *DB) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
	defer cancel()

	if err := db.pool.Ping(ctx); err != nil {
		return fmt.Errorf("pool ping failed: %w", err)
	}
	if err := db.bunDB.PingContext(ctx); err != nil {
		return fmt.Errorf("bun ping failed: %w", err)
	}
	return nil
}
