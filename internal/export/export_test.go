package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hrdash/hrdash/internal/records"
)

func TestFileNameUsesUTCDate(t *testing.T) {
	riyadh := time.FixedZone("AST", 3*3600)
	// 01:30 local on the 16th is still the 15th in UTC.
	now := time.Date(2024, 3, 16, 1, 30, 0, 0, riyadh)
	if got := FileName(now); got != "hr-data-2024-03-15.json" {
		t.Errorf("FileName = %q", got)
	}
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	name := "Ali"
	st := records.StatusApproved
	contacts := []records.Record{{
		ID: "c1", Kind: records.KindContact, Name: &name, Status: &st,
		CreatedAtDisplay: "2024-03-15 10:00:00",
	}}

	path, err := Write(dir, contacts, nil, time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "hr-data-2024-03-15.json" {
		t.Errorf("path = %q", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got map[string][]map[string]any
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatal(err)
	}
	if len(got["contacts"]) != 1 || got["contacts"][0]["name"] != "Ali" || got["contacts"][0]["status"] != "approved" {
		t.Errorf("contacts = %v", got["contacts"])
	}
	if a, ok := got["appointments"]; !ok || len(a) != 0 {
		t.Errorf("appointments = %v, want empty list", a)
	}
	if raw[0] != '{' || raw[1] != '\n' {
		t.Error("export is not indented")
	}
}
