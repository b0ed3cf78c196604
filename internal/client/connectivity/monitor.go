// Package connectivity tracks whether the backend is reachable by probing
// it periodically and reports edge transitions to interested goroutines.
package connectivity

import (
	"context"
	"sync"
	"time"
)

// Event is an edge transition of the connectivity state.
type Event int

const (
	WentOnline Event = iota
	WentOffline
)

// Pinger is the probe used to decide reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Monitor probes the backend on a fixed interval. It starts out offline and
// only reports state changes, never repeats: two consecutive failed probes
// produce a single WentOffline event.
type Monitor struct {
	pinger   Pinger
	interval time.Duration

	mu     sync.RWMutex
	online bool

	events chan Event
}

func NewMonitor(pinger Pinger, interval time.Duration) *Monitor {
	return &Monitor{
		pinger:   pinger,
		interval: interval,
		events:   make(chan Event, 8),
	}
}

// IsOnline returns the last observed state.
func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.online
}

// Events delivers edge transitions. Events are dropped if the consumer
// falls behind; IsOnline always has the current state.
func (m *Monitor) Events() <-chan Event {
	return m.events
}

// Run probes immediately and then on every tick until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) {
	m.CheckNow(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.CheckNow(ctx)
		}
	}
}

// CheckNow performs a single probe and publishes an event if the state
// flipped. It is safe to call from outside the Run loop, e.g. right after
// a request fails with an unavailable error.
func (m *Monitor) CheckNow(ctx context.Context) bool {
	online := m.pinger.Ping(ctx) == nil

	m.mu.Lock()
	changed := online != m.online
	m.online = online
	m.mu.Unlock()

	if changed {
		ev := WentOffline
		if online {
			ev = WentOnline
		}
		select {
		case m.events <- ev:
		default:
		}
	}
	return online
}
