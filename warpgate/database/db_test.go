package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnString(t *testing.T) {
	cfg := DBConfig{Host: "localhost", Port: 5432, User: "warp", Password: "p@ss", Database: "warpgate"}
	assert.Equal(t, "postgres://warp:p@ss@localhost:5432/warpgate?connect_timeout=5", cfg.ConnString())

	cfg.URL = "postgres://other/db"
	assert.Equal(t, "postgres://other/db", cfg.ConnString())
}
