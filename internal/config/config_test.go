// internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/jason-s-yu/reversi/internal/health"
	"github.com/jason-s-yu/reversi/internal/protocol"
	"github.com/jason-s-yu/reversi/internal/transport"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"REVERSI_SERVER_ADDR", "REVERSI_TRANSPORT", "REVERSI_WS_URL", "REVERSI_DIALECT",
	"REVERSI_SOFT_TIMEOUT_MS", "REVERSI_HARD_TIMEOUT_MS", "REVERSI_POLL_MS",
	"REVERSI_ZOMBIE_AUTO_CLOSE", "REVERSI_WRITE_TIMEOUT_MS",
	"REDIS_ADDR", "REDIS_DB", "REVERSI_EVENTS_CHANNEL", "LOG_LEVEL",
}

func clearEnv(t *testing.T) {
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, transport.KindTCP, cfg.Transport)
	assert.Equal(t, DefaultServerAddr, cfg.Target())
	assert.Equal(t, protocol.DialectWantGame, cfg.Dialect)
	assert.Equal(t, health.DefaultSoftTimeout, cfg.Health.Soft)
	assert.Equal(t, health.DefaultHardTimeout, cfg.Health.Hard)
	assert.Equal(t, health.DefaultPoll, cfg.Health.Poll)
	assert.False(t, cfg.ZombieAutoClose)
	assert.Equal(t, DefaultWriteTimeout, cfg.WriteTimeout)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, DefaultEventsChannel, cfg.Redis.Channel)
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("REVERSI_TRANSPORT", "ws")
	t.Setenv("REVERSI_WS_URL", "wss://relay.example/reversi")
	t.Setenv("REVERSI_DIALECT", "join_game")
	t.Setenv("REVERSI_SOFT_TIMEOUT_MS", "1000")
	t.Setenv("REVERSI_HARD_TIMEOUT_MS", "3000")
	t.Setenv("REVERSI_POLL_MS", "50")
	t.Setenv("REVERSI_ZOMBIE_AUTO_CLOSE", "yes")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "wss://relay.example/reversi", cfg.Target())
	assert.Equal(t, protocol.DialectJoinGame, cfg.Dialect)
	assert.Equal(t, health.Thresholds{Soft: time.Second, Hard: 3 * time.Second, Poll: 50 * time.Millisecond}, cfg.Health)
	assert.True(t, cfg.ZombieAutoClose)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"REVERSI_TRANSPORT": "udp",
		"REVERSI_DIALECT":   "shout_game",
		"LOG_LEVEL":         "loud",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, val)
			_, err := Load()
			assert.Error(t, err)
		})
	}

	t.Run("hard below soft", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("REVERSI_SOFT_TIMEOUT_MS", "5000")
		t.Setenv("REVERSI_HARD_TIMEOUT_MS", "4000")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestUnparseableNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("REVERSI_POLL_MS", "soon")
	t.Setenv("REDIS_DB", "zero")
	t.Setenv("REVERSI_ZOMBIE_AUTO_CLOSE", "maybe")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, health.DefaultPoll, cfg.Health.Poll)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.False(t, cfg.ZombieAutoClose)
}
