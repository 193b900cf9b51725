package health

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hrdash/hrdash/internal/bus"
	"github.com/hrdash/hrdash/internal/status"
)

type fakePinger struct {
	mu  sync.Mutex
	err error
	n   int
}

func (f *fakePinger) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	return f.err
}

func (f *fakePinger) set(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func (f *fakePinger) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.n
}

func connecting(t *testing.T, b *bus.Bus) *status.Machine {
	t.Helper()
	m := status.NewMachine(b)
	if err := m.Transition(status.Connecting); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestCheckMovesBetweenReadyAndDegraded(t *testing.T) {
	p := &fakePinger{}
	m := connecting(t, nil)
	mon := NewMonitor(p, m, nil, zap.NewNop(), time.Second)
	ctx := context.Background()

	if !mon.Check(ctx) || m.Current() != status.Ready {
		t.Fatalf("state = %s, want READY", m.Current())
	}

	p.set(errors.New("connection refused"))
	if mon.Check(ctx) || m.Current() != status.Degraded {
		t.Fatalf("state = %s, want DEGRADED", m.Current())
	}
	// Staying down keeps DEGRADED.
	mon.Check(ctx)
	if m.Current() != status.Degraded {
		t.Fatalf("state = %s, want DEGRADED", m.Current())
	}

	p.set(nil)
	mon.Check(ctx)
	if m.Current() != status.Ready {
		t.Errorf("state = %s, want READY after recovery", m.Current())
	}
}

func TestCheckLeavesErrorAlone(t *testing.T) {
	m := status.NewMachine(nil)
	m.Fail()
	mon := NewMonitor(&fakePinger{}, m, nil, zap.NewNop(), time.Second)
	mon.Check(context.Background())
	if m.Current() != status.Error {
		t.Errorf("state = %s, want ERROR", m.Current())
	}
}

func TestHealthEventsOnlyOnChange(t *testing.T) {
	b := bus.New()
	ch, unsub := b.Subscribe(bus.KindStoreHealth, 10)
	defer unsub()

	p := &fakePinger{}
	mon := NewMonitor(p, connecting(t, nil), b, zap.NewNop(), time.Second)
	ctx := context.Background()
	mon.Check(ctx)
	mon.Check(ctx)
	p.set(errors.New("down"))
	mon.Check(ctx)

	var reports []Report
	for len(reports) < 2 {
		select {
		case evt := <-ch:
			reports = append(reports, evt.Payload.(Report))
		case <-time.After(time.Second):
			t.Fatalf("got %d reports, want 2", len(reports))
		}
	}
	if !reports[0].OK || reports[1].OK || reports[1].Err != "down" {
		t.Errorf("reports = %+v", reports)
	}
	select {
	case evt := <-ch:
		t.Errorf("unexpected extra event: %+v", evt)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestStartStop(t *testing.T) {
	p := &fakePinger{}
	m := connecting(t, nil)
	mon := NewMonitor(p, m, nil, zap.NewNop(), 10*time.Millisecond)
	mon.Start(context.Background())

	deadline := time.Now().Add(2 * time.Second)
	for p.calls() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	mon.Stop()
	if p.calls() < 3 {
		t.Fatalf("ping calls = %d, want at least 3", p.calls())
	}
	after := p.calls()
	time.Sleep(50 * time.Millisecond)
	if p.calls() != after {
		t.Error("monitor kept pinging after Stop")
	}
	if m.Current() != status.Ready {
		t.Errorf("state = %s, want READY", m.Current())
	}
}
