package dashboard

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/hrdash/hrdash/internal/records"
	"github.com/hrdash/hrdash/internal/store"
)

// flakyStore fails selected calls and otherwise delegates to a real store.
type flakyStore struct {
	store.DocumentStore
	failList   string
	failUpdate bool
	lists      int
}

var errBoom = errors.New("boom")

func (f *flakyStore) ListDocuments(ctx context.Context, coll string) ([]records.RawDocument, error) {
	f.lists++
	if coll == f.failList {
		return nil, errBoom
	}
	return f.DocumentStore.ListDocuments(ctx, coll)
}

func (f *flakyStore) UpdateStatus(ctx context.Context, coll, id string, st records.Status) error {
	if f.failUpdate {
		return errBoom
	}
	return f.DocumentStore.UpdateStatus(ctx, coll, id, st)
}

func testStore(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "records.db"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Migrate(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seed(t *testing.T, db *store.DB) (contactID, apptID string) {
	t.Helper()
	ctx := context.Background()
	var err error
	contactID, err = db.CreateDocument(ctx, records.CollectionContacts, map[string]any{
		"name":      "Ali",
		"email":     "ali@example.com",
		"timestamp": "2024-03-15T10:00:00Z",
	})
	if err != nil {
		t.Fatal(err)
	}
	apptID, err = db.CreateDocument(ctx, records.CollectionAppointments, map[string]any{
		"name":      "Sara",
		"email":     "sara@example.com",
		"status":    "pending",
		"createdAt": int64(1700000000000),
	})
	if err != nil {
		t.Fatal(err)
	}
	return contactID, apptID
}

var utc = records.Formatter{Layout: time.RFC3339, Location: time.UTC}

func TestRefreshNormalizesBothCollections(t *testing.T) {
	db := testStore(t)
	contactID, apptID := seed(t, db)
	d := New(db, utc)

	if !d.FetchedAt().IsZero() {
		t.Error("FetchedAt should be zero before the first fetch")
	}
	if err := d.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	snap := d.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("len(snapshot) = %d, want 2", len(snap))
	}
	if snap[0].ID != contactID || snap[0].Kind != records.KindContact {
		t.Errorf("snap[0] = %+v, want the contact first", snap[0])
	}
	appt, ok := d.Find(apptID)
	if !ok {
		t.Fatal("appointment not found")
	}
	if appt.CreatedAtDisplay != "2023-11-14T22:13:20Z" {
		t.Errorf("appointment display = %q", appt.CreatedAtDisplay)
	}
	if len(d.Contacts()) != 1 || len(d.Appointments()) != 1 {
		t.Errorf("contacts/appointments = %d/%d", len(d.Contacts()), len(d.Appointments()))
	}

	stats := d.Stats()
	if stats.NewContacts != 1 || stats.PendingAppointments != 1 {
		t.Errorf("stats = %+v", stats)
	}
	a := d.Analytics()
	if a.Daily["2024-03-15"] != 1 || a.Daily["2023-11-14"] != 1 {
		t.Errorf("daily = %v", a.Daily)
	}
	if got := d.Filtered(records.Criteria{Query: "SARA"}); len(got) != 1 || got[0].ID != apptID {
		t.Errorf("Filtered(SARA) = %v", got)
	}
}

func TestRefreshFailureKeepsSnapshot(t *testing.T) {
	db := testStore(t)
	seed(t, db)
	fs := &flakyStore{DocumentStore: db}
	d := New(fs, utc)

	if err := d.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	before := d.FetchedAt()

	// Add a record, then fail the second fetch: nothing may change.
	if _, err := db.CreateDocument(context.Background(), records.CollectionContacts, map[string]any{"name": "New"}); err != nil {
		t.Fatal(err)
	}
	fs.failList = records.CollectionAppointments
	err := d.Refresh(context.Background())
	if !errors.Is(err, errBoom) {
		t.Fatalf("Refresh error = %v, want errBoom", err)
	}
	if n := len(d.Snapshot()); n != 2 {
		t.Errorf("len(snapshot) = %d, want 2 (previous snapshot)", n)
	}
	if !d.FetchedAt().Equal(before) {
		t.Error("FetchedAt changed after a failed refresh")
	}
}

func TestUpdateStatusRefetches(t *testing.T) {
	db := testStore(t)
	contactID, _ := seed(t, db)
	fs := &flakyStore{DocumentStore: db}
	d := New(fs, utc)
	ctx := context.Background()

	if err := d.Refresh(ctx); err != nil {
		t.Fatal(err)
	}
	lists := fs.lists
	if err := d.UpdateStatus(ctx, contactID, records.KindContact, records.StatusApproved); err != nil {
		t.Fatal(err)
	}
	if fs.lists != lists+2 {
		t.Errorf("lists after update = %d, want %d (full re-fetch)", fs.lists, lists+2)
	}
	r, _ := d.Find(contactID)
	if r.EffectiveStatus() != records.StatusApproved {
		t.Errorf("status = %q, want approved", r.EffectiveStatus())
	}
}

func TestUpdateStatusWriteFailure(t *testing.T) {
	db := testStore(t)
	contactID, _ := seed(t, db)
	fs := &flakyStore{DocumentStore: db}
	d := New(fs, utc)
	ctx := context.Background()
	if err := d.Refresh(ctx); err != nil {
		t.Fatal(err)
	}

	fs.failUpdate = true
	lists := fs.lists
	if err := d.UpdateStatus(ctx, contactID, records.KindContact, records.StatusRejected); !errors.Is(err, errBoom) {
		t.Fatalf("error = %v, want errBoom", err)
	}
	if fs.lists != lists {
		t.Error("failed write should not trigger a re-fetch")
	}
	r, _ := d.Find(contactID)
	if r.Status != nil {
		t.Errorf("status = %q, want untouched", *r.Status)
	}
}

func TestUpdateStatusValidation(t *testing.T) {
	d := New(testStore(t), utc)
	ctx := context.Background()
	if err := d.UpdateStatus(ctx, "x", records.KindAll, records.StatusNew); !errors.Is(err, records.ErrInvalidKind) {
		t.Errorf("kind all: error = %v, want ErrInvalidKind", err)
	}
	if err := d.UpdateStatus(ctx, "x", records.KindContact, records.StatusAll); !errors.Is(err, records.ErrInvalidStatus) {
		t.Errorf("status all: error = %v, want ErrInvalidStatus", err)
	}
	if err := d.UpdateStatus(ctx, "missing", records.KindContact, records.StatusNew); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("missing id: error = %v, want ErrNotFound", err)
	}
}

func TestCreate(t *testing.T) {
	db := testStore(t)
	d := New(db, utc)
	ctx := context.Background()

	id, err := d.Create(ctx, NewEntry{
		Kind:          records.KindAppointment,
		Name:          "Omar",
		Email:         "omar@example.com",
		PreferredDate: "2024-05-01",
		PreferredTime: "10:00",
	})
	if err != nil {
		t.Fatal(err)
	}
	r, ok := d.Find(id)
	if !ok {
		t.Fatal("created record not in snapshot")
	}
	if r.EffectiveStatus() != records.StatusNew || r.Status == nil {
		t.Errorf("status = %v, want stored new", r.Status)
	}
	if records.Value(r.MeetingType) != records.MeetingInPerson {
		t.Errorf("meetingType = %q, want in-person default", records.Value(r.MeetingType))
	}
	if r.CreatedAtDisplay == "" {
		t.Error("store did not assign a timestamp")
	}
}

func TestNewEntryPayload(t *testing.T) {
	tests := []struct {
		name    string
		entry   NewEntry
		has     []string
		lacks   []string
		wantErr bool
	}{
		{
			name:  "contact",
			entry: NewEntry{Kind: records.KindContact, Name: "A", Company: "Acme"},
			has:   []string{"name", "email", "phone", "message", "status", "company", "service"},
			lacks: []string{"preferredDate", "preferredTime", "meetingType"},
		},
		{
			name:  "appointment",
			entry: NewEntry{Kind: records.KindAppointment, MeetingType: records.MeetingRemote},
			has:   []string{"name", "status", "preferredDate", "preferredTime", "meetingType"},
			lacks: []string{"company", "service"},
		},
		{name: "bad meeting type", entry: NewEntry{Kind: records.KindAppointment, MeetingType: "phone"}, wantErr: true},
		{name: "bad kind", entry: NewEntry{Kind: records.KindAll}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := tt.entry.Payload()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if p["status"] != "new" {
				t.Errorf("status = %v, want new", p["status"])
			}
			for _, k := range tt.has {
				if _, ok := p[k]; !ok {
					t.Errorf("payload lacks %q", k)
				}
			}
			for _, k := range tt.lacks {
				if _, ok := p[k]; ok {
					t.Errorf("payload has %q", k)
				}
			}
		})
	}
}
