package records

import (
	"errors"
	"testing"
	"time"
)

func ptr(s string) *string { return &s }

func statusPtr(s Status) *Status { return &s }

var utcFormatter = Formatter{Layout: time.RFC3339, Location: time.UTC}

func TestNormalizeContactAndAppointment(t *testing.T) {
	raws := []RawDocument{
		{ID: "c1", Fields: map[string]any{
			"name":      "Ali",
			"email":     "ali@example.com",
			"timestamp": "2024-03-15T10:00:00Z",
		}},
	}
	contacts := NormalizeAll(raws, KindContact, utcFormatter)

	appt := Normalize(DocumentFromRaw(RawDocument{ID: "a1", Fields: map[string]any{
		"name":          "Sara",
		"createdAt":     int64(1700000000000),
		"preferredDate": "2024-04-01",
		"meetingType":   MeetingRemote,
	}}), KindAppointment, utcFormatter)

	if len(contacts) != 1 {
		t.Fatalf("len(contacts) = %d, want 1", len(contacts))
	}
	c := contacts[0]
	if c.ID != "c1" || c.Kind != KindContact {
		t.Errorf("contact id/kind = %q/%q", c.ID, c.Kind)
	}
	if c.Status != nil {
		t.Errorf("contact status = %v, want absent", *c.Status)
	}
	if c.EffectiveStatus() != StatusNew {
		t.Errorf("contact effective status = %q, want new", c.EffectiveStatus())
	}
	if c.CreatedAtRaw != "2024-03-15T10:00:00Z" {
		t.Errorf("contact raw = %v", c.CreatedAtRaw)
	}
	if c.CreatedAtDisplay != "2024-03-15T10:00:00Z" {
		t.Errorf("contact display = %q", c.CreatedAtDisplay)
	}

	if appt.CreatedAtRaw != int64(1700000000000) {
		t.Errorf("appointment raw = %v, want createdAt fallback", appt.CreatedAtRaw)
	}
	if appt.CreatedAtDisplay != "2023-11-14T22:13:20Z" {
		t.Errorf("appointment display = %q", appt.CreatedAtDisplay)
	}
	if Value(appt.MeetingType) != MeetingRemote || Value(appt.PreferredDate) != "2024-04-01" {
		t.Errorf("appointment fields not copied: %+v", appt)
	}

	got := Filter([]Record{c, appt}, Criteria{Status: StatusNew})
	if len(got) != 2 {
		t.Errorf("status=new matched %d records, want 2", len(got))
	}
}

func TestNormalizeDropsAppointmentFieldsForContacts(t *testing.T) {
	doc := DocumentFromRaw(RawDocument{ID: "c1", Fields: map[string]any{
		"preferredDate": "2024-04-01",
		"meetingType":   MeetingInPerson,
		"createdAt":     int64(1700000000000),
	}})
	r := Normalize(doc, KindContact, utcFormatter)
	if r.PreferredDate != nil || r.MeetingType != nil {
		t.Errorf("contact carries appointment fields: %+v", r)
	}
	if r.CreatedAtRaw != nil || r.CreatedAtDisplay != "" {
		t.Errorf("contact fell back to createdAt: raw=%v display=%q", r.CreatedAtRaw, r.CreatedAtDisplay)
	}
}

func TestDocumentFromRawIgnoresNonStrings(t *testing.T) {
	doc := DocumentFromRaw(RawDocument{ID: "x", Fields: map[string]any{
		"name":   42,
		"status": "approved",
		"phone":  "",
	}})
	if doc.Name != nil {
		t.Errorf("name = %q, want absent", *doc.Name)
	}
	if doc.Phone == nil || *doc.Phone != "" {
		t.Error("present empty phone should stay present")
	}
	if doc.Status == nil || *doc.Status != StatusApproved {
		t.Errorf("status = %v, want approved", doc.Status)
	}
}

func sampleRecords() []Record {
	return []Record{
		{ID: "1", Kind: KindContact, Name: ptr("Ali Hassan"), Email: ptr("ALI@Example.com"), Phone: ptr("+966 555 0101")},
		{ID: "2", Kind: KindContact, Name: ptr("Mona"), Email: ptr("mona@example.com"), Company: ptr("Acme"), Status: statusPtr(StatusApproved)},
		{ID: "3", Kind: KindAppointment, Name: ptr("Omar"), Email: ptr("omar.ali@example.com"), Status: statusPtr(StatusPending)},
		{ID: "4", Kind: KindAppointment, Phone: ptr("0500 ali"), Status: statusPtr(StatusRejected)},
		{ID: "5", Kind: KindContact, Email: ptr("")},
	}
}

func ids(recs []Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilter(t *testing.T) {
	recs := sampleRecords()
	tests := []struct {
		name string
		c    Criteria
		want []string
	}{
		{"zero criteria is identity", Criteria{}, []string{"1", "2", "3", "4", "5"}},
		{"explicit all is identity", Criteria{Query: "   ", Kind: KindAll, Status: StatusAll}, []string{"1", "2", "3", "4", "5"}},
		{"email search is case-insensitive", Criteria{Query: "ali@example.com"}, []string{"1", "3"}},
		{"substring across name and email", Criteria{Query: "ALI"}, []string{"1", "3", "4"}},
		{"company", Criteria{Query: "acme"}, []string{"2"}},
		{"phone substring", Criteria{Query: "555"}, []string{"1"}},
		{"kind", Criteria{Kind: KindAppointment}, []string{"3", "4"}},
		{"missing status counts as new", Criteria{Status: StatusNew}, []string{"1", "5"}},
		{"kind and status", Criteria{Kind: KindAppointment, Status: StatusPending}, []string{"3"}},
		{"query and kind", Criteria{Query: "ali", Kind: KindContact}, []string{"1"}},
		{"no match", Criteria{Query: "zzz"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(recs, tt.c))
			if !equalIDs(got, tt.want) {
				t.Errorf("Filter(%+v) = %v, want %v", tt.c, got, tt.want)
			}
		})
	}
}

func TestWeekKey(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "Week 1"},
		{time.Date(2023, 12, 31, 12, 0, 0, 0, time.UTC), "Week 52"},
		{time.Date(2021, 1, 3, 0, 0, 0, 0, time.UTC), "Week 53"},
		{time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC), "Week 1"},
	}
	for _, tt := range tests {
		if got := WeekKey(tt.date); got != tt.want {
			t.Errorf("WeekKey(%s) = %q, want %q", tt.date.Format("2006-01-02"), got, tt.want)
		}
	}
}

func TestAggregate(t *testing.T) {
	recs := []Record{
		{ID: "1", CreatedAtRaw: "2024-01-01T08:00:00Z"},
		{ID: "2", CreatedAtRaw: map[string]any{"seconds": int64(1704110400)}}, // 2024-01-01T12:00:00Z
		{ID: "3", CreatedAtRaw: "2023-12-31T23:30:00Z"},
		{ID: "4", CreatedAtRaw: int64(1709251200000)}, // 2024-03-01T00:00:00Z
		{ID: "5", CreatedAtRaw: nil},
		{ID: "6", CreatedAtRaw: ""},
	}
	a := Aggregate(recs)

	wantDaily := map[string]int{"2024-01-01": 2, "2023-12-31": 1, "2024-03-01": 1}
	wantMonthly := map[string]int{"2024-01": 2, "2023-12": 1, "2024-03": 1}
	wantWeekly := map[string]int{"Week 1": 2, "Week 52": 1, "Week 9": 1}

	check := func(name string, got, want map[string]int) {
		t.Helper()
		if len(got) != len(want) {
			t.Errorf("%s = %v, want %v", name, got, want)
			return
		}
		for k, v := range want {
			if got[k] != v {
				t.Errorf("%s[%q] = %d, want %d", name, k, got[k], v)
			}
		}
	}
	check("daily", a.Daily, wantDaily)
	check("monthly", a.Monthly, wantMonthly)
	check("weekly", a.Weekly, wantWeekly)

	withTimestamp := 0
	for _, r := range recs {
		if NormalizeTimestamp(r.CreatedAtRaw) != "" {
			withTimestamp++
		}
	}
	for name, m := range map[string]map[string]int{"daily": a.Daily, "weekly": a.Weekly, "monthly": a.Monthly} {
		sum := 0
		for _, v := range m {
			sum += v
		}
		if sum != withTimestamp {
			t.Errorf("sum(%s) = %d, want %d", name, sum, withTimestamp)
		}
	}
}

func TestBucketsOrdering(t *testing.T) {
	weeks := Buckets(map[string]int{"Week 10": 1, "Week 2": 3, "Week 1": 2})
	if got := []string{weeks[0].Label, weeks[1].Label, weeks[2].Label}; !equalIDs(got, []string{"Week 1", "Week 2", "Week 10"}) {
		t.Errorf("week order = %v", got)
	}
	days := Buckets(map[string]int{"2024-03-01": 1, "2023-12-31": 1, "2024-01-01": 1})
	if days[0].Label != "2023-12-31" || days[2].Label != "2024-03-01" {
		t.Errorf("day order = %v", days)
	}
	last := LastN(days, 2)
	if len(last) != 2 || last[0].Label != "2024-01-01" {
		t.Errorf("LastN = %v", last)
	}
	if got := LastN(days, 0); len(got) != 3 {
		t.Errorf("LastN(0) len = %d, want 3", len(got))
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleRecords())
	if s.Contacts != 3 || s.Appointments != 2 {
		t.Errorf("contacts/appointments = %d/%d, want 3/2", s.Contacts, s.Appointments)
	}
	if s.NewContacts != 2 {
		t.Errorf("new contacts = %d, want 2", s.NewContacts)
	}
	if s.PendingAppointments != 1 {
		t.Errorf("pending appointments = %d, want 1", s.PendingAppointments)
	}
	if s.ByStatus[StatusRejected] != 1 || s.ByStatus[StatusNew] != 2 {
		t.Errorf("by status = %v", s.ByStatus)
	}
}

func TestParseKindAndStatus(t *testing.T) {
	for in, want := range map[string]Kind{"": KindAll, "All": KindAll, "contacts": KindContact, " appointment ": KindAppointment} {
		got, err := ParseKind(in)
		if err != nil || got != want {
			t.Errorf("ParseKind(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseKind("lead"); !errors.Is(err, ErrInvalidKind) {
		t.Errorf("ParseKind(lead) error = %v, want ErrInvalidKind", err)
	}
	if st, err := ParseStatus(" Approved"); err != nil || st != StatusApproved {
		t.Errorf("ParseStatus = %q, %v", st, err)
	}
	if _, err := ParseStatus("all"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("ParseStatus(all) error = %v, want ErrInvalidStatus", err)
	}
	if k, err := KindForCollection(CollectionAppointments); err != nil || k != KindAppointment {
		t.Errorf("KindForCollection = %q, %v", k, err)
	}
}
