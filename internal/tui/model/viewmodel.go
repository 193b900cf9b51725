package model

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hrdash/hrdash/internal/dashboard"
	"github.com/hrdash/hrdash/internal/export"
	"github.com/hrdash/hrdash/internal/mail"
	"github.com/hrdash/hrdash/internal/records"
	"github.com/hrdash/hrdash/internal/rpc/hrv1"
	"github.com/hrdash/hrdash/internal/store"
	"github.com/hrdash/hrdash/internal/tui/ui"
)

// Source is what the view model needs from the daemon connection.
type Source interface {
	store.DocumentStore
	Status(ctx context.Context) (hrv1.DaemonStatus, error)
}

// ViewModel holds the dashboard snapshot plus the operator's filter state
// and signals UI refreshes.
type ViewModel struct {
	mu sync.RWMutex

	src      Source
	dash     *dashboard.Dashboard
	status   hrv1.DaemonStatus
	criteria records.Criteria
	Flash    *ui.FlashModel

	refreshCh chan struct{}
}

// NewViewModel creates a view model reading through src.
func NewViewModel(src Source, f records.Formatter) *ViewModel {
	return &ViewModel{
		src:       src,
		dash:      dashboard.New(src, f),
		criteria:  records.Criteria{Kind: records.KindAll, Status: records.StatusAll},
		Flash:     ui.NewFlashModel(),
		refreshCh: make(chan struct{}, 1),
	}
}

// RefreshCh returns the channel that signals UI refresh.
func (vm *ViewModel) RefreshCh() <-chan struct{} {
	return vm.refreshCh
}

func (vm *ViewModel) signalRefresh() {
	select {
	case vm.refreshCh <- struct{}{}:
	default:
	}
}

// Refresh re-fetches both collections. On failure the previous snapshot
// stays visible and the error is flashed.
func (vm *ViewModel) Refresh(ctx context.Context) error {
	if err := vm.dash.Refresh(ctx); err != nil {
		vm.Flash.Err(fmt.Errorf("refresh failed: %w", err))
		return err
	}
	vm.signalRefresh()
	return nil
}

// LoadStatus fetches the daemon state and counters.
func (vm *ViewModel) LoadStatus(ctx context.Context) error {
	st, err := vm.src.Status(ctx)
	if err != nil {
		return err
	}
	vm.mu.Lock()
	vm.status = st
	vm.mu.Unlock()
	vm.signalRefresh()
	return nil
}

// Status returns the last daemon status read.
func (vm *ViewModel) Status() hrv1.DaemonStatus {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.status
}

// Rows returns the records matching the current criteria.
func (vm *ViewModel) Rows() []records.Record {
	return vm.dash.Filtered(vm.Criteria())
}

// Find looks a record up in the current snapshot.
func (vm *ViewModel) Find(id string) (records.Record, bool) {
	return vm.dash.Find(id)
}

func (vm *ViewModel) Total() int            { return len(vm.dash.Snapshot()) }
func (vm *ViewModel) Stats() records.Stats { return vm.dash.Stats() }
func (vm *ViewModel) FetchedAt() time.Time { return vm.dash.FetchedAt() }

// Analytics buckets the whole snapshot, ignoring filters.
func (vm *ViewModel) Analytics() records.Analytics { return vm.dash.Analytics() }

// Criteria returns the active filter.
func (vm *ViewModel) Criteria() records.Criteria {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.criteria
}

// SetQuery replaces the free-text part of the filter.
func (vm *ViewModel) SetQuery(q string) {
	vm.mu.Lock()
	vm.criteria.Query = q
	vm.mu.Unlock()
	vm.signalRefresh()
}

// SetKind sets the kind criterion.
func (vm *ViewModel) SetKind(k records.Kind) {
	vm.mu.Lock()
	vm.criteria.Kind = k
	vm.mu.Unlock()
	vm.signalRefresh()
}

// SetStatusFilter sets the status criterion.
func (vm *ViewModel) SetStatusFilter(s records.Status) {
	vm.mu.Lock()
	vm.criteria.Status = s
	vm.mu.Unlock()
	vm.signalRefresh()
}

var kindCycle = []records.Kind{records.KindAll, records.KindContact, records.KindAppointment}

// CycleKind advances the kind filter: all, contact, appointment, all.
func (vm *ViewModel) CycleKind() records.Kind {
	vm.mu.Lock()
	vm.criteria.Kind = next(kindCycle, vm.criteria.Kind)
	k := vm.criteria.Kind
	vm.mu.Unlock()
	vm.signalRefresh()
	return k
}

// CycleStatus advances the status filter through all and each status.
func (vm *ViewModel) CycleStatus() records.Status {
	cycle := append([]records.Status{records.StatusAll}, records.Statuses...)
	vm.mu.Lock()
	vm.criteria.Status = next(cycle, vm.criteria.Status)
	s := vm.criteria.Status
	vm.mu.Unlock()
	vm.signalRefresh()
	return s
}

// ClearFilters resets every criterion.
func (vm *ViewModel) ClearFilters() {
	vm.mu.Lock()
	vm.criteria = records.Criteria{Kind: records.KindAll, Status: records.StatusAll}
	vm.mu.Unlock()
	vm.signalRefresh()
}

func next[T comparable](cycle []T, cur T) T {
	for i, v := range cycle {
		if v == cur {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return cycle[0]
}

// SetStatus writes a new status for the record with the given id and
// re-fetches. The record's kind decides which collection is written.
func (vm *ViewModel) SetStatus(ctx context.Context, id string, st records.Status) error {
	r, ok := vm.dash.Find(id)
	if !ok {
		err := fmt.Errorf("record %s: %w", id, store.ErrNotFound)
		vm.Flash.Err(err)
		return err
	}
	if err := vm.dash.UpdateStatus(ctx, id, r.Kind, st); err != nil {
		vm.Flash.Err(err)
		return err
	}
	vm.Flash.Infof("%s marked %s", displayName(r), st)
	vm.signalRefresh()
	return nil
}

// Add creates a record and re-fetches.
func (vm *ViewModel) Add(ctx context.Context, e dashboard.NewEntry) (string, error) {
	id, err := vm.dash.Create(ctx, e)
	if err != nil {
		vm.Flash.Err(fmt.Errorf("add failed: %w", err))
		return "", err
	}
	vm.Flash.Infof("%s added", e.Kind)
	vm.signalRefresh()
	return id, nil
}

// Export writes the current snapshot to dir.
func (vm *ViewModel) Export(dir string, now time.Time) (string, error) {
	path, err := export.Write(dir, vm.dash.Contacts(), vm.dash.Appointments(), now)
	if err != nil {
		vm.Flash.Err(err)
		return "", err
	}
	vm.Flash.Info("exported to " + path)
	return path, nil
}

// Reply opens a mail reply to the record with the given id. Records without
// an email address are rejected before anything is launched.
func (vm *ViewModel) Reply(o mail.Opener, id, subject, body string) error {
	r, ok := vm.dash.Find(id)
	if !ok {
		err := fmt.Errorf("record %s: %w", id, store.ErrNotFound)
		vm.Flash.Err(err)
		return err
	}
	if _, err := mail.Reply(o, r, subject, body); err != nil {
		if errors.Is(err, mail.ErrNoAddress) {
			vm.Flash.Warn(displayName(r) + " has no email address")
		} else {
			vm.Flash.Err(err)
		}
		return err
	}
	vm.Flash.Info("reply opened for " + records.Value(r.Email))
	return nil
}

func displayName(r records.Record) string {
	if n := records.Value(r.Name); n != "" {
		return n
	}
	return r.ID
}
