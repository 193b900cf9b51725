package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hrdash/hrdash/internal/config"
)

func TestPathsUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)

	tests := []struct {
		got  string
		want string
	}{
		{Dir("work"), filepath.Join(home, "profiles", "work")},
		{SocketPath("work"), filepath.Join(home, "profiles", "work", "daemon.sock")},
		{LockPath("work"), filepath.Join(home, "profiles", "work", "LOCK")},
		{DBPath("work"), filepath.Join(home, "profiles", "work", "records.db")},
		{LogPath("work"), filepath.Join(home, "profiles", "work", "logs", "hrd.log")},
		{ExportDir("work"), filepath.Join(home, "profiles", "work", "exports")},
		{EnvPath("work"), filepath.Join(home, "profiles", "work", ".env")},
		{ConfigPath(), filepath.Join(home, "config.toml")},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("path = %q, want %q", tt.got, tt.want)
		}
	}
}

func TestBaseDirDefault(t *testing.T) {
	t.Setenv(config.EnvHome, "")
	home, _ := os.UserHomeDir()
	if got, want := BaseDir(), filepath.Join(home, ".hrdash"); got != want {
		t.Errorf("BaseDir() = %q, want %q", got, want)
	}
}

func TestEnsureDir(t *testing.T) {
	t.Setenv(config.EnvHome, t.TempDir())
	if err := EnsureDir("work"); err != nil {
		t.Fatal(err)
	}
	for _, d := range []string{Dir("work"), LogDir("work"), ExportDir("work")} {
		info, err := os.Stat(d)
		if err != nil || !info.IsDir() {
			t.Errorf("%s not created: %v", d, err)
			continue
		}
		if perm := info.Mode().Perm(); perm != 0700 {
			t.Errorf("%s permission = %o, want 0700", d, perm)
		}
	}
}

func TestResolvePrecedence(t *testing.T) {
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvProfile, "")

	if got := Resolve(""); got != DefaultName {
		t.Errorf("Resolve with nothing set = %q, want %q", got, DefaultName)
	}

	cfg := config.Default()
	cfg.DefaultProfile = "fromconfig"
	if err := config.Save(ConfigPath(), cfg); err != nil {
		t.Fatal(err)
	}
	if got := Resolve(""); got != "fromconfig" {
		t.Errorf("Resolve = %q, want fromconfig", got)
	}

	t.Setenv(config.EnvProfile, "fromenv")
	if got := Resolve(""); got != "fromenv" {
		t.Errorf("Resolve = %q, want fromenv", got)
	}
	if got := Resolve("fromflag"); got != "fromflag" {
		t.Errorf("Resolve = %q, want fromflag", got)
	}
}

func TestLoadConfigAppliesProfileEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvMongoDatabase, "")
	_ = os.Unsetenv(config.EnvMongoDatabase)

	if err := EnsureDir("work"); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(EnvPath("work"), []byte("HRDASH_MONGO_DATABASE=profile_db\n"), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig("work")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Store.MongoDatabase != "profile_db" {
		t.Errorf("MongoDatabase = %q, want profile_db", cfg.Store.MongoDatabase)
	}
}
