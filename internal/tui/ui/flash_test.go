package ui

import (
	"errors"
	"testing"
	"time"
)

func TestFlashExpiry(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	f := NewFlashModel()
	f.now = func() time.Time { return now }

	f.Infof("%d records", 3)
	msg := f.GetMessage()
	if msg == nil || msg.Text != "3 records" || msg.Level != FlashInfo {
		t.Fatalf("message = %+v", msg)
	}

	now = now.Add(flashTTL[FlashInfo])
	if msg := f.GetMessage(); msg != nil {
		t.Errorf("info still shown at its expiry: %+v", msg)
	}

	f.Err(errors.New("store offline"))
	now = now.Add(flashTTL[FlashInfo])
	if msg := f.GetMessage(); msg == nil || msg.Level != FlashErr {
		t.Errorf("error should outlive the info ttl, got %+v", msg)
	}

	f.Clear()
	if msg := f.GetMessage(); msg != nil {
		t.Errorf("message after Clear = %+v", msg)
	}
}

func TestFlashWatchCoalesces(t *testing.T) {
	f := NewFlashModel()
	f.Info("one")
	f.Warn("two")

	select {
	case <-f.Watch():
	default:
		t.Fatal("no signal after a change")
	}
	select {
	case <-f.Watch():
		t.Error("burst should coalesce into one signal")
	default:
	}
	if msg := f.GetMessage(); msg == nil || msg.Text != "two" {
		t.Errorf("message = %+v, want the latest", msg)
	}
}
