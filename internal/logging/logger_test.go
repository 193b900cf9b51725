package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewFileOnlyWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "hrd.log")
	logger, err := NewFileOnly(path, "work")
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("store initialized")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	line := strings.TrimSpace(string(data))
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log line is not JSON: %q: %v", line, err)
	}
	if entry["msg"] != "store initialized" || entry["profile"] != "work" {
		t.Errorf("entry = %v", entry)
	}
	if _, ok := entry["ts"]; !ok {
		t.Error("entry has no ts field")
	}
	if _, ok := entry["pid"]; !ok {
		t.Error("entry has no pid field")
	}
}

func TestForCLI(t *testing.T) {
	if ForCLI(false).Core().Enabled(0) {
		t.Error("quiet CLI logger should be disabled")
	}
	if !ForCLI(true).Core().Enabled(0) {
		t.Error("verbose CLI logger should log info")
	}
}
