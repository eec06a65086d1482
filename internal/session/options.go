// internal/session/options.go
package session

import (
	"io"
	"time"

	"github.com/jason-s-yu/reversi/internal/events"
	"github.com/jason-s-yu/reversi/internal/health"
	"github.com/jason-s-yu/reversi/internal/protocol"
	"github.com/sirupsen/logrus"
)

// DefaultWriteTimeout bounds a single outbound line.
const DefaultWriteTimeout = 5 * time.Second

type options struct {
	logger          logrus.FieldLogger
	dialect         protocol.Dialect
	thresholds      health.Thresholds
	zombieAutoClose bool
	clock           func() time.Time
	publisher       events.Publisher
	writeTimeout    time.Duration
}

// Option configures a Session.
type Option func(*options)

func defaultOptions() options {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	return options{
		logger:       discard,
		dialect:      protocol.DialectWantGame,
		clock:        time.Now,
		writeTimeout: DefaultWriteTimeout,
	}
}

// WithLogger sets the logger; by default nothing is logged.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithDialect selects the tag set for the game request and wait reply.
func WithDialect(d protocol.Dialect) Option {
	return func(o *options) { o.dialect = d }
}

// WithThresholds overrides the heartbeat thresholds; zero fields keep the defaults.
func WithThresholds(t health.Thresholds) Option {
	return func(o *options) { o.thresholds = t }
}

// WithZombieAutoClose makes the first zombie timeout fatal instead of
// notifying the sink on every poll.
func WithZombieAutoClose(enabled bool) Option {
	return func(o *options) { o.zombieAutoClose = enabled }
}

// WithClock replaces time.Now for the heartbeat monitor.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithPublisher mirrors every inbound message and sent command to p.
func WithPublisher(p events.Publisher) Option {
	return func(o *options) { o.publisher = p }
}

// WithWriteTimeout bounds each outbound write.
func WithWriteTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.writeTimeout = d
		}
	}
}
