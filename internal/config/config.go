// Package config resolves tollgate's runtime configuration: a YAML file
// under the user's config directory, overridden by process environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultServerURL matches the approval service's stock listen address.
	DefaultServerURL = "http://localhost:3001"
	DefaultTmuxBin   = "tmux"
)

// Environment overrides. Setting TOLLGATE_TMUX_SESSION arms the gate; an
// empty value (set or unset-and-absent-from-config) leaves it a
// pass-through.
const (
	EnvServerURL   = "APPROVAL_SERVER_URL"
	EnvTmuxSession = "TOLLGATE_TMUX_SESSION"
	EnvTokenFile   = "TOLLGATE_TOKEN_FILE"
)

// Config is resolved once at process start and passed by value; no
// component reads the environment or walks the filesystem for settings
// after that.
type Config struct {
	ServerURL   string `yaml:"server_url"`
	TmuxSession string `yaml:"tmux_session"`
	TmuxBin     string `yaml:"tmux_bin"`
	TokenFile   string `yaml:"token_file"`
}

// Dir returns the tollgate config directory.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".tollgate"), nil
}

// DefaultPath returns the default config file path, or "" when the home
// directory cannot be determined.
func DefaultPath() string {
	dir, err := Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Default returns the built-in configuration.
func Default() Config {
	cfg := Config{
		ServerURL: DefaultServerURL,
		TmuxBin:   DefaultTmuxBin,
	}
	if dir, err := Dir(); err == nil {
		cfg.TokenFile = filepath.Join(dir, "auth-token")
	}
	return cfg
}

// Load reads configuration from a YAML file and applies environment
// overrides. Empty path falls back to ~/.tollgate/config.yaml. A missing
// file yields defaults. Invalid YAML returns an error.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	// Start with defaults; YAML overwrites only specified fields.
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&cfg)
	finalize(&cfg)
	return cfg, nil
}

// FromEnv returns the default configuration with environment overrides
// applied, ignoring any config file. The hook falls back to this when the
// file is unreadable.
func FromEnv() Config {
	cfg := Default()
	applyEnv(&cfg)
	finalize(&cfg)
	return cfg
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvServerURL); v != "" {
		cfg.ServerURL = v
	}
	// A set-but-empty session deliberately disables the gate, so the
	// presence of the variable matters, not just its value.
	if v, ok := os.LookupEnv(EnvTmuxSession); ok {
		cfg.TmuxSession = v
	}
	if v := os.Getenv(EnvTokenFile); v != "" {
		cfg.TokenFile = v
	}
}

func finalize(cfg *Config) {
	if cfg.TmuxBin == "" {
		cfg.TmuxBin = DefaultTmuxBin
	}
	if expanded, err := homedir.Expand(cfg.TokenFile); err == nil {
		cfg.TokenFile = expanded
	}
}
