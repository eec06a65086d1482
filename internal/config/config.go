// internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/jason-s-yu/reversi/internal/health"
	"github.com/jason-s-yu/reversi/internal/protocol"
	"github.com/jason-s-yu/reversi/internal/transport"
	"github.com/sirupsen/logrus"
)

const (
	DefaultServerAddr    = "127.0.0.1:10000"
	DefaultWSURL         = "ws://127.0.0.1:10000/reversi"
	DefaultWriteTimeout  = 5 * time.Second
	DefaultEventsChannel = "reversi_events"
)

// Redis configures the optional event mirror. It is disabled unless REDIS_ADDR is set.
type Redis struct {
	Enabled bool
	Addr    string
	DB      int
	Channel string
}

// Config is the client configuration, read from the environment (and a .env
// file when the binary loads godotenv).
type Config struct {
	Transport       transport.Kind
	ServerAddr      string
	WSURL           string
	Dialect         protocol.Dialect
	Health          health.Thresholds
	ZombieAutoClose bool
	WriteTimeout    time.Duration
	Redis           Redis
	LogLevel        logrus.Level
}

// Target returns the dial target for the configured transport.
func (c Config) Target() string {
	if c.Transport == transport.KindWebSocket {
		return c.WSURL
	}
	return c.ServerAddr
}

// Load reads the configuration from environment variables:
//   - REVERSI_SERVER_ADDR (default "127.0.0.1:10000")
//   - REVERSI_TRANSPORT ("tcp" or "ws", default "tcp")
//   - REVERSI_WS_URL (used with the ws transport)
//   - REVERSI_DIALECT ("want_game" or "join_game")
//   - REVERSI_SOFT_TIMEOUT_MS, REVERSI_HARD_TIMEOUT_MS, REVERSI_POLL_MS
//   - REVERSI_ZOMBIE_AUTO_CLOSE
//   - REVERSI_WRITE_TIMEOUT_MS
//   - REDIS_ADDR, REDIS_DB, REVERSI_EVENTS_CHANNEL
//   - LOG_LEVEL (default "info")
func Load() (Config, error) {
	kind, err := transport.ParseKind(getEnv("REVERSI_TRANSPORT", string(transport.KindTCP)))
	if err != nil {
		return Config{}, fmt.Errorf("REVERSI_TRANSPORT: %w", err)
	}
	dialect, err := protocol.ParseDialect(getEnv("REVERSI_DIALECT", protocol.DialectWantGame.String()))
	if err != nil {
		return Config{}, fmt.Errorf("REVERSI_DIALECT: %w", err)
	}
	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	thresholds := health.Thresholds{
		Soft: getEnvMillis("REVERSI_SOFT_TIMEOUT_MS", health.DefaultSoftTimeout),
		Hard: getEnvMillis("REVERSI_HARD_TIMEOUT_MS", health.DefaultHardTimeout),
		Poll: getEnvMillis("REVERSI_POLL_MS", health.DefaultPoll),
	}
	if thresholds.Hard <= thresholds.Soft {
		return Config{}, fmt.Errorf("hard timeout %s must exceed soft timeout %s", thresholds.Hard, thresholds.Soft)
	}

	redisAddr := getEnv("REDIS_ADDR", "")
	return Config{
		Transport:       kind,
		ServerAddr:      getEnv("REVERSI_SERVER_ADDR", DefaultServerAddr),
		WSURL:           getEnv("REVERSI_WS_URL", DefaultWSURL),
		Dialect:         dialect,
		Health:          thresholds,
		ZombieAutoClose: getEnvBool("REVERSI_ZOMBIE_AUTO_CLOSE", false),
		WriteTimeout:    getEnvMillis("REVERSI_WRITE_TIMEOUT_MS", DefaultWriteTimeout),
		Redis: Redis{
			Enabled: redisAddr != "",
			Addr:    redisAddr,
			DB:      getEnvInt("REDIS_DB", 0),
			Channel: getEnv("REVERSI_EVENTS_CHANNEL", DefaultEventsChannel),
		},
		LogLevel: level,
	}, nil
}
