// Package health watches the document store and moves the daemon between
// READY and DEGRADED.
package health

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hrdash/hrdash/internal/bus"
	"github.com/hrdash/hrdash/internal/status"
)

// DefaultInterval is how often the store is pinged.
const DefaultInterval = 10 * time.Second

// Pinger is the part of a store the monitor needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Report is the payload of daemon.store_health events.
type Report struct {
	OK  bool
	Err string
}

// Monitor pings the store on a ticker.
type Monitor struct {
	store    Pinger
	machine  *status.Machine
	bus      *bus.Bus
	logger   *zap.Logger
	interval time.Duration

	mu     sync.Mutex
	lastOK *bool
	cancel context.CancelFunc
	done   chan struct{}
}

// NewMonitor creates a monitor. A non-positive interval means DefaultInterval.
func NewMonitor(p Pinger, m *status.Machine, b *bus.Bus, logger *zap.Logger, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Monitor{
		store:    p,
		machine:  m,
		bus:      b,
		logger:   logger,
		interval: interval,
	}
}

// Start runs one check immediately, then keeps checking until Stop.
func (m *Monitor) Start(ctx context.Context) {
	ctx, m.cancel = context.WithCancel(ctx)
	m.done = make(chan struct{})
	go m.loop(ctx)
}

// Stop stops the monitor loop and waits for it to exit.
func (m *Monitor) Stop() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	<-m.done
}

func (m *Monitor) loop(ctx context.Context) {
	defer close(m.done)
	m.Check(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.Check(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Check pings the store once and applies the result to the state machine.
func (m *Monitor) Check(ctx context.Context) bool {
	pingCtx, cancel := context.WithTimeout(ctx, m.interval)
	err := m.store.Ping(pingCtx)
	cancel()
	ok := err == nil

	m.mu.Lock()
	changed := m.lastOK == nil || *m.lastOK != ok
	m.lastOK = &ok
	m.mu.Unlock()

	current := m.machine.Current()
	switch {
	case ok && (current == status.Connecting || current == status.Degraded):
		_ = m.machine.Transition(status.Ready)
	case !ok && (current == status.Connecting || current == status.Ready):
		_ = m.machine.Transition(status.Degraded)
	}

	if !changed {
		return ok
	}
	report := Report{OK: ok}
	if err != nil {
		report.Err = err.Error()
		m.logger.Warn("store unreachable", zap.Error(err))
	} else {
		m.logger.Info("store reachable")
	}
	if m.bus != nil {
		m.bus.Publish(bus.NewEvent(bus.KindStoreHealth, report))
	}
	return ok
}
