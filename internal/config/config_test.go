package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int64("seed", 0, "")
	fs.Int("max-turns", 0, "")
	fs.Int("rounds", 1, "")
	fs.Int("workers", 4, "")
	fs.String("game-type", "simple", "")
	fs.String("log-level", "info", "")
	fs.String("health-addr", "", "")
	return fs
}

// TestLoadDefaults 测试没有配置文件时使用默认值
func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "simple", cfg.Game.Type)
	assert.Equal(t, []string{"East", "South", "West", "North"}, cfg.Game.Players)
	assert.Nil(t, cfg.Game.Seed)
	assert.True(t, cfg.Game.Log)
	assert.Equal(t, 1, cfg.Game.Rounds)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.False(t, cfg.Sinks.Cache)
	assert.Equal(t, 24*time.Hour, cfg.Sinks.CacheTTL)

	cfg, err = Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.App.LogFormat)
}

// TestLoadFile 测试读取 YAML 配置
func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
app:
  log_level: debug
game:
  seed: 0
  max_turns: 40
  players: [A, B, C, D]
database:
  host: db
  port: 5433
  name: rounds
  user: u
  password: p
sinks:
  cache: true
  cache_ttl: 1h
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	require.NotNil(t, cfg.Game.Seed)
	assert.Equal(t, int64(0), *cfg.Game.Seed)
	assert.Equal(t, 40, cfg.Game.MaxTurns)
	assert.Equal(t, []string{"A", "B", "C", "D"}, cfg.Game.Players)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, "postgres://u:p@db:5433/rounds?sslmode=disable", cfg.Database.DSN())
	assert.True(t, cfg.Sinks.Cache)
	assert.Equal(t, time.Hour, cfg.Sinks.CacheTTL)
}

// TestLoadOverrides 测试环境变量与命令行参数覆盖
func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, "game:\n  max_turns: 40\n  rounds: 2\n")
	t.Setenv("MAHJONG_GAME_MAX_TURNS", "50")
	t.Setenv("MAHJONG_REDIS_HOST", "cache")

	flags := testFlags()
	require.NoError(t, flags.Parse([]string{"--seed", "9", "--rounds", "8", "--health-addr", ":8081"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	require.NotNil(t, cfg.Game.Seed)
	assert.Equal(t, int64(9), *cfg.Game.Seed)
	assert.Equal(t, 8, cfg.Game.Rounds)
	assert.Equal(t, ":8081", cfg.App.HealthAddr)
	assert.Equal(t, 50, cfg.Game.MaxTurns)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr())
	// 未显式传入的参数不覆盖默认值
	assert.Equal(t, 4, cfg.Game.Workers)
}

// TestLoadInvalid 测试非法配置
func TestLoadInvalid(t *testing.T) {
	_, err := Load(writeConfig(t, "game:\n  players: [A, B]\n"), nil)
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "game:\n  rounds: 0\n"), nil)
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "game: [unterminated"), nil)
	assert.Error(t, err)
}
