// internal/health/monitor.go
package health

import (
	"context"
	"sync"
	"time"
)

// Defaults match the server's heartbeat cadence.
const (
	DefaultSoftTimeout = 6500 * time.Millisecond
	DefaultHardTimeout = 20 * time.Second
	DefaultPoll        = 100 * time.Millisecond
)

// Thresholds configures the monitor. Zero fields take the defaults.
type Thresholds struct {
	Soft time.Duration // silence before a one-off warning
	Hard time.Duration // silence after which the connection is a zombie
	Poll time.Duration
}

// WithDefaults fills unset fields.
func (t Thresholds) WithDefaults() Thresholds {
	if t.Soft <= 0 {
		t.Soft = DefaultSoftTimeout
	}
	if t.Hard <= 0 {
		t.Hard = DefaultHardTimeout
	}
	if t.Poll <= 0 {
		t.Poll = DefaultPoll
	}
	return t
}

// Signal is the outcome of one check.
type Signal struct {
	Warning bool          // first check past the soft threshold since the last heartbeat
	Zombie  bool          // past the hard threshold; repeats on every check
	Silence time.Duration // time since the last heartbeat
}

// Monitor tracks the last heartbeat. Heartbeat is called from the receive loop
// and Check from the polling loop, so state is guarded by a mutex.
type Monitor struct {
	mu            sync.Mutex
	cfg           Thresholds
	lastHeartbeat time.Time
	warned        bool
}

// New starts the silence window at now.
func New(cfg Thresholds, now time.Time) *Monitor {
	return &Monitor{cfg: cfg.WithDefaults(), lastHeartbeat: now}
}

// Thresholds returns the effective configuration.
func (m *Monitor) Thresholds() Thresholds {
	return m.cfg
}

// Heartbeat records a heartbeat and re-arms the soft warning.
func (m *Monitor) Heartbeat(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastHeartbeat = now
	m.warned = false
}

// LastHeartbeat returns the time of the most recent heartbeat.
func (m *Monitor) LastHeartbeat() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastHeartbeat
}

// Check evaluates the thresholds at now.
func (m *Monitor) Check(now time.Time) Signal {
	m.mu.Lock()
	defer m.mu.Unlock()

	sig := Signal{Silence: now.Sub(m.lastHeartbeat)}
	if sig.Silence > m.cfg.Soft && !m.warned {
		m.warned = true
		sig.Warning = true
	}
	if sig.Silence > m.cfg.Hard {
		sig.Zombie = true
	}
	return sig
}

// Run checks on every poll tick until ctx is done, passing non-empty signals
// to notify. clock may be nil, in which case time.Now is used.
func (m *Monitor) Run(ctx context.Context, clock func() time.Time, notify func(Signal)) {
	if clock == nil {
		clock = time.Now
	}
	ticker := time.NewTicker(m.cfg.Poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sig := m.Check(clock())
			if sig.Warning || sig.Zombie {
				notify(sig)
			}
		}
	}
}
