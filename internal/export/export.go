// Package export writes the dashboard's records to a dated JSON file.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hrdash/hrdash/internal/records"
)

// Data is the exported document.
type Data struct {
	Contacts     []records.Record `json:"contacts"`
	Appointments []records.Record `json:"appointments"`
}

// FileName returns the export file name for the UTC date of now.
func FileName(now time.Time) string {
	return "hr-data-" + now.UTC().Format("2006-01-02") + ".json"
}

// Write saves both collections to dir and returns the written path. A second
// export on the same day replaces the first.
func Write(dir string, contacts, appointments []records.Record, now time.Time) (string, error) {
	data := Data{Contacts: contacts, Appointments: appointments}
	if data.Contacts == nil {
		data.Contacts = []records.Record{}
	}
	if data.Appointments == nil {
		data.Appointments = []records.Record{}
	}

	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode export: %w", err)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, FileName(now))
	if err := os.WriteFile(path, append(encoded, '\n'), 0600); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}
