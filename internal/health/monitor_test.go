// internal/health/monitor_test.go
package health

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func TestNoSignalBeforeSoftThreshold(t *testing.T) {
	m := New(Thresholds{}, epoch)
	for ms := 0; ms <= 6500; ms += 100 {
		sig := m.Check(epoch.Add(time.Duration(ms) * time.Millisecond))
		assert.False(t, sig.Warning, "at %dms", ms)
		assert.False(t, sig.Zombie, "at %dms", ms)
	}
}

func TestExactlyOneWarningPerSilence(t *testing.T) {
	m := New(Thresholds{}, epoch)
	warnings := 0
	for ms := 0; ms <= 19000; ms += 100 {
		if m.Check(epoch.Add(time.Duration(ms) * time.Millisecond)).Warning {
			warnings++
		}
	}
	assert.Equal(t, 1, warnings)
}

func TestHeartbeatRearmsWarning(t *testing.T) {
	m := New(Thresholds{}, epoch)
	require.True(t, m.Check(epoch.Add(7*time.Second)).Warning)
	require.False(t, m.Check(epoch.Add(8*time.Second)).Warning)

	hb := epoch.Add(9 * time.Second)
	m.Heartbeat(hb)
	assert.Equal(t, hb, m.LastHeartbeat())
	assert.False(t, m.Check(hb.Add(time.Second)).Warning)
	assert.True(t, m.Check(hb.Add(7*time.Second)).Warning)
}

func TestZombieRepeatsUntilHeartbeat(t *testing.T) {
	m := New(Thresholds{}, epoch)
	zombies := 0
	for ms := 20100; ms <= 21000; ms += 100 {
		sig := m.Check(epoch.Add(time.Duration(ms) * time.Millisecond))
		if sig.Zombie {
			zombies++
		}
	}
	assert.Equal(t, 10, zombies)

	m.Heartbeat(epoch.Add(21 * time.Second))
	sig := m.Check(epoch.Add(21*time.Second + 100*time.Millisecond))
	assert.False(t, sig.Zombie)
	assert.Equal(t, 100*time.Millisecond, sig.Silence)
}

func TestCustomThresholds(t *testing.T) {
	m := New(Thresholds{Soft: time.Second, Hard: 2 * time.Second}, epoch)
	assert.Equal(t, DefaultPoll, m.Thresholds().Poll)
	assert.True(t, m.Check(epoch.Add(1500*time.Millisecond)).Warning)
	assert.True(t, m.Check(epoch.Add(2500*time.Millisecond)).Zombie)
}

// fakeClock advances by step on every read.
type fakeClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(c.step)
	return c.now
}

func TestRunNotifiesAndStops(t *testing.T) {
	m := New(Thresholds{Soft: time.Second, Hard: 3 * time.Second, Poll: time.Millisecond}, epoch)
	clock := &fakeClock{now: epoch, step: 500 * time.Millisecond}

	var mu sync.Mutex
	var got []Signal
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		m.Run(ctx, clock.Now, func(s Signal) {
			mu.Lock()
			got = append(got, s)
			mu.Unlock()
		})
	}()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		zombies := 0
		for _, s := range got {
			if s.Zombie {
				zombies++
			}
		}
		return zombies >= 2
	}, 2*time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}

	mu.Lock()
	defer mu.Unlock()
	warnings := 0
	for _, s := range got {
		if s.Warning {
			warnings++
		}
	}
	assert.Equal(t, 1, warnings)
}
