// Package dashboard owns the current record snapshot: it fetches both
// collections, normalizes them, and re-fetches after every write.
package dashboard

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/hrdash/hrdash/internal/records"
	"github.com/hrdash/hrdash/internal/store"
)

// Dashboard holds the last successfully fetched record set.
type Dashboard struct {
	store  store.DocumentStore
	format records.Formatter
	now    func() time.Time

	mu        sync.RWMutex
	contacts  []records.Record
	appts     []records.Record
	fetchedAt time.Time
}

// New creates a dashboard over s. Nothing is fetched until Refresh.
func New(s store.DocumentStore, f records.Formatter) *Dashboard {
	return &Dashboard{store: s, format: f, now: time.Now}
}

// Refresh fetches contacts then appointments and replaces the snapshot.
// If either fetch fails the previous snapshot is kept.
func (d *Dashboard) Refresh(ctx context.Context) error {
	contacts, err := d.fetch(ctx, records.KindContact)
	if err != nil {
		return err
	}
	appts, err := d.fetch(ctx, records.KindAppointment)
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.contacts = contacts
	d.appts = appts
	d.fetchedAt = d.now()
	d.mu.Unlock()
	return nil
}

func (d *Dashboard) fetch(ctx context.Context, kind records.Kind) ([]records.Record, error) {
	raws, err := d.store.ListDocuments(ctx, kind.Collection())
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", kind.Collection(), err)
	}
	return records.NormalizeAll(raws, kind, d.format), nil
}

// UpdateStatus writes a new status for one record and re-fetches. On a
// write error the snapshot is left untouched.
func (d *Dashboard) UpdateStatus(ctx context.Context, id string, kind records.Kind, status records.Status) error {
	coll := kind.Collection()
	if coll == "" {
		return fmt.Errorf("%w: %q", records.ErrInvalidKind, kind)
	}
	if !slices.Contains(records.Statuses, status) {
		return fmt.Errorf("%w: %q", records.ErrInvalidStatus, status)
	}
	if err := d.store.UpdateStatus(ctx, coll, id, status); err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if err := d.Refresh(ctx); err != nil {
		return fmt.Errorf("refresh after update: %w", err)
	}
	return nil
}

// Create writes a new record and re-fetches. The store assigns the id and
// creation time.
func (d *Dashboard) Create(ctx context.Context, e NewEntry) (string, error) {
	payload, err := e.Payload()
	if err != nil {
		return "", err
	}
	id, err := d.store.CreateDocument(ctx, e.Kind.Collection(), payload)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", e.Kind, err)
	}
	if err := d.Refresh(ctx); err != nil {
		return id, fmt.Errorf("refresh after create: %w", err)
	}
	return id, nil
}

// Snapshot returns contacts followed by appointments.
func (d *Dashboard) Snapshot() []records.Record {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]records.Record, 0, len(d.contacts)+len(d.appts))
	out = append(out, d.contacts...)
	return append(out, d.appts...)
}

// Contacts returns the contact records of the snapshot.
func (d *Dashboard) Contacts() []records.Record {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.contacts)
}

// Appointments returns the appointment records of the snapshot.
func (d *Dashboard) Appointments() []records.Record {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.appts)
}

// FetchedAt is when the snapshot was last replaced; zero before the first
// successful fetch.
func (d *Dashboard) FetchedAt() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.fetchedAt
}

// Find looks a record up by id.
func (d *Dashboard) Find(id string) (records.Record, bool) {
	for _, r := range d.Snapshot() {
		if r.ID == id {
			return r, true
		}
	}
	return records.Record{}, false
}

func (d *Dashboard) Filtered(c records.Criteria) []records.Record {
	return records.Filter(d.Snapshot(), c)
}

func (d *Dashboard) Analytics() records.Analytics {
	return records.Aggregate(d.Snapshot())
}

func (d *Dashboard) Stats() records.Stats {
	return records.Summarize(d.Snapshot())
}
