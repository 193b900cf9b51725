package profile

import (
	"os"

	"github.com/hrdash/hrdash/internal/config"
)

const DefaultName = "default"

// Resolve determines the active profile name using precedence:
// 1. flagOverride (--profile flag)
// 2. $HRDASH_PROFILE
// 3. config.toml default_profile
// 4. "default"
func Resolve(flagOverride string) string {
	if flagOverride != "" {
		return flagOverride
	}
	if env := os.Getenv(config.EnvProfile); env != "" {
		return env
	}
	cfg, err := config.Load(ConfigPath())
	if err == nil && cfg.DefaultProfile != "" {
		return cfg.DefaultProfile
	}
	return DefaultName
}

// LoadConfig reads the global config, then the .env files of the working
// directory and the profile, and applies environment overrides.
func LoadConfig(name string) (*config.Config, error) {
	if err := config.LoadDotEnv(".env", EnvPath(name)); err != nil {
		return nil, err
	}
	cfg, err := config.LoadOrDefault(ConfigPath())
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}
