package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/hrdash/hrdash/internal/config"
	"github.com/hrdash/hrdash/internal/mail"
	"github.com/hrdash/hrdash/internal/records"
	"github.com/hrdash/hrdash/internal/rpc/hrv1"
	"github.com/hrdash/hrdash/internal/store"
)

type localSource struct {
	*store.DB
}

func (s localSource) Status(context.Context) (hrv1.DaemonStatus, error) {
	return hrv1.DaemonStatus{Profile: "test", State: "READY", Backend: s.Name(), Uptime: 90 * time.Second, Contacts: 2, Appointments: 1}, nil
}

type recordingOpener struct{ uris []string }

func (o *recordingOpener) Open(uri string) error {
	o.uris = append(o.uris, uri)
	return nil
}

type harness struct {
	db     *store.DB
	opener *recordingOpener
	ids    map[string]string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	color.NoColor = true
	t.Setenv(config.EnvHome, t.TempDir())

	db, err := store.Open(filepath.Join(t.TempDir(), "records.db"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Migrate(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	h := &harness{db: db, opener: &recordingOpener{}, ids: make(map[string]string)}
	seed := []struct {
		coll   string
		fields map[string]any
	}{
		{records.CollectionContacts, map[string]any{"name": "Ali", "email": "ali@example.com", "timestamp": "2024-03-15T10:00:00Z"}},
		{records.CollectionContacts, map[string]any{"name": "Noor", "status": "approved", "timestamp": "2024-03-14T10:00:00Z"}},
		{records.CollectionAppointments, map[string]any{"name": "Sara", "email": "sara@example.com", "status": "pending", "createdAt": int64(1710500000000)}},
	}
	for _, s := range seed {
		id, err := db.CreateDocument(context.Background(), s.coll, s.fields)
		if err != nil {
			t.Fatal(err)
		}
		h.ids[s.fields["name"].(string)] = id
	}
	return h
}

func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand(Deps{
		Connect: func(string, *config.Config) (Source, func() error, error) {
			return localSource{h.db}, nil, nil
		},
		Opener:     h.opener,
		LoadConfig: func(string) (*config.Config, error) { return config.Default(), nil },
	})
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(append([]string{"--profile", "test"}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func TestList(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{"all", []string{"list"}, []string{"Ali", "Noor", "Sara"}, nil},
		{"kind", []string{"list", "--kind", "appointment"}, []string{"Sara"}, []string{"Ali", "Noor"}},
		{"status new", []string{"list", "--status", "new"}, []string{"Ali"}, []string{"Noor", "Sara"}},
		{"query", []string{"ls", "-q", "SARA@"}, []string{"Sara"}, []string{"Ali"}},
		{"empty", []string{"list", "--query", "nobody"}, []string{"No records."}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := h.run(t, tt.args...)
			if err != nil {
				t.Fatalf("%v failed: %v", tt.args, err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("output should not contain %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestListJSON(t *testing.T) {
	h := newHarness(t)
	out, err := h.run(t, "--json", "list", "--kind", "contact")
	if err != nil {
		t.Fatal(err)
	}
	var got []records.Record
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(got) != 2 || records.Value(got[0].Name) != "Ali" || got[0].Kind != records.KindContact {
		t.Errorf("records = %+v", got)
	}
}

func TestListRejectsBadFilters(t *testing.T) {
	h := newHarness(t)
	if _, err := h.run(t, "list", "--status", "done"); !errors.Is(err, records.ErrInvalidStatus) {
		t.Errorf("bad status: error = %v, want ErrInvalidStatus", err)
	}
	if _, err := h.run(t, "list", "--kind", "lead"); !errors.Is(err, records.ErrInvalidKind) {
		t.Errorf("bad kind: error = %v, want ErrInvalidKind", err)
	}
}

func TestStatusCommand(t *testing.T) {
	h := newHarness(t)
	out, err := h.run(t, "status")
	if err != nil {
		t.Fatal(err)
	}
	for _, w := range []string{"READY", "sqlite", "1m30s"} {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}

	out, err = h.run(t, "status", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var v statusView
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		t.Fatal(err)
	}
	if v.UptimeMs != 90000 || v.Contacts != 2 {
		t.Errorf("status = %+v", v)
	}
}

func TestStatsJSON(t *testing.T) {
	h := newHarness(t)
	out, err := h.run(t, "stats", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var st records.Stats
	if err := json.Unmarshal([]byte(out), &st); err != nil {
		t.Fatal(err)
	}
	if st.Contacts != 2 || st.NewContacts != 1 || st.PendingAppointments != 1 {
		t.Errorf("stats = %+v", st)
	}
}

func TestAnalytics(t *testing.T) {
	h := newHarness(t)
	out, err := h.run(t, "analytics", "--days", "1")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "2024-03-15") || strings.Contains(out, "2024-03-14") {
		t.Errorf("--days 1 should keep only the latest day:\n%s", out)
	}
	if !strings.Contains(out, "2024-03") {
		t.Errorf("monthly bucket missing:\n%s", out)
	}
}

func TestSetStatus(t *testing.T) {
	h := newHarness(t)
	if _, err := h.run(t, "set-status", "appointment", h.ids["Sara"], "approved"); err != nil {
		t.Fatal(err)
	}
	out, err := h.run(t, "list", "--status", "approved")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Sara") {
		t.Errorf("Sara not approved:\n%s", out)
	}

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"unknown id", []string{"set-status", "contact", "missing", "approved"}, store.ErrNotFound},
		{"bad status", []string{"set-status", "contact", h.ids["Ali"], "done"}, records.ErrInvalidStatus},
		{"all kind", []string{"set-status", "all", h.ids["Ali"], "approved"}, records.ErrInvalidKind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := h.run(t, tt.args...); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestAdd(t *testing.T) {
	h := newHarness(t)
	out, err := h.run(t, "--json", "add", "appointment", "--name", "Omar", "--meeting", "remote", "--date", "2024-04-01")
	if err != nil {
		t.Fatal(err)
	}
	var created map[string]string
	if err := json.Unmarshal([]byte(out), &created); err != nil {
		t.Fatal(err)
	}
	docs, err := h.db.ListDocuments(context.Background(), records.CollectionAppointments)
	if err != nil {
		t.Fatal(err)
	}
	var found bool
	for _, d := range docs {
		if d.ID == created["id"] {
			found = true
			if d.Fields["meetingType"] != "remote" || d.Fields["status"] != "new" {
				t.Errorf("fields = %v", d.Fields)
			}
		}
	}
	if !found {
		t.Errorf("created id %q not in store", created["id"])
	}

	if _, err := h.run(t, "add", "lead", "--name", "X"); err == nil {
		t.Error("expected error for unknown kind")
	}
	if _, err := h.run(t, "add", "contact"); err == nil {
		t.Error("expected error without --name")
	}
	if _, err := h.run(t, "add", "appointment", "--name", "X", "--meeting", "phone"); err == nil {
		t.Error("expected error for bad meeting type")
	}
}

func TestExport(t *testing.T) {
	h := newHarness(t)
	dir := t.TempDir()
	out, err := h.run(t, "export", "--out", dir)
	if err != nil {
		t.Fatal(err)
	}
	path := strings.TrimSpace(out)
	if filepath.Dir(path) != dir || !strings.HasPrefix(filepath.Base(path), "hr-data-") {
		t.Fatalf("path = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		Contacts     []records.Record `json:"contacts"`
		Appointments []records.Record `json:"appointments"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Contacts) != 2 || len(got.Appointments) != 1 {
		t.Errorf("exported %d contacts, %d appointments", len(got.Contacts), len(got.Appointments))
	}
}

func TestMail(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "mail", "contact", h.ids["Ali"], "--print", "--subject", "Hi", "--body", "Thanks")
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(out); got != "mailto:ali@example.com?subject=Hi&body=Thanks" {
		t.Errorf("uri = %q", got)
	}
	if len(h.opener.uris) != 0 {
		t.Error("--print must not open the mail client")
	}

	if _, err := h.run(t, "mail", "appointment", h.ids["Sara"]); err != nil {
		t.Fatal(err)
	}
	if len(h.opener.uris) != 1 || !strings.HasPrefix(h.opener.uris[0], "mailto:sara@example.com?subject=") {
		t.Errorf("opened = %v", h.opener.uris)
	}

	if _, err := h.run(t, "mail", "contact", h.ids["Noor"]); !errors.Is(err, mail.ErrNoAddress) {
		t.Errorf("no address: error = %v, want ErrNoAddress", err)
	}
	if _, err := h.run(t, "mail", "appointment", h.ids["Ali"]); err == nil {
		t.Error("expected error for a kind mismatch")
	}
}

func TestRootHelp(t *testing.T) {
	h := newHarness(t)
	out, err := h.run(t, "--help")
	if err != nil {
		t.Fatal(err)
	}
	for _, sub := range []string{"list", "set-status", "analytics", "export", "mail"} {
		if !strings.Contains(out, sub) {
			t.Errorf("help missing %q", sub)
		}
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		n, peak, width int
		want           int
	}{
		{0, 5, 10, 0},
		{5, 5, 10, 10},
		{1, 100, 10, 1},
		{3, 0, 10, 0},
	}
	for _, tt := range tests {
		if got := len([]rune(bar(tt.n, tt.peak, tt.width))); got != tt.want {
			t.Errorf("bar(%d, %d, %d) = %d runes, want %d", tt.n, tt.peak, tt.width, got, tt.want)
		}
	}
}
