// Package profile locates the per-profile working directory and the files
// inside it.
package profile

import (
	"os"
	"path/filepath"

	"github.com/hrdash/hrdash/internal/config"
)

// BaseDir returns $HRDASH_HOME, or ~/.hrdash when unset.
func BaseDir() string {
	if dir := os.Getenv(config.EnvHome); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".hrdash")
}

// Dir returns the profile-specific directory.
func Dir(name string) string {
	return filepath.Join(BaseDir(), "profiles", name)
}

// SocketPath returns the daemon's unix socket path for a profile.
func SocketPath(name string) string {
	return filepath.Join(Dir(name), "daemon.sock")
}

// LockPath returns the lock file path for a profile.
func LockPath(name string) string {
	return filepath.Join(Dir(name), "LOCK")
}

// DBPath returns the local document store path.
func DBPath(name string) string {
	return filepath.Join(Dir(name), "records.db")
}

// LogDir returns the log directory for a profile.
func LogDir(name string) string {
	return filepath.Join(Dir(name), "logs")
}

// LogPath returns the daemon log file path.
func LogPath(name string) string {
	return filepath.Join(LogDir(name), "hrd.log")
}

// TUILogPath returns the dashboard's own log file path.
func TUILogPath(name string) string {
	return filepath.Join(LogDir(name), "hrtui.log")
}

// ExportDir returns the default directory for JSON exports.
func ExportDir(name string) string {
	return filepath.Join(Dir(name), "exports")
}

// EnvPath returns the profile's .env file.
func EnvPath(name string) string {
	return filepath.Join(Dir(name), ".env")
}

// ConfigPath returns the global config file path.
func ConfigPath() string {
	return filepath.Join(BaseDir(), "config.toml")
}

// EnsureDir creates the profile directory tree with proper permissions.
func EnsureDir(name string) error {
	for _, d := range []string{Dir(name), LogDir(name), ExportDir(name)} {
		if err := os.MkdirAll(d, 0700); err != nil {
			return err
		}
	}
	return nil
}
