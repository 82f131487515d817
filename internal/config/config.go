// Package config resolves runtime settings for todo.
//
// Settings are layered: defaults, then todo.toml next to the executable,
// then environment variables, then command-line flags. The data file itself
// always lives next to the executable and is not configurable.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/Makepad-fr/todotxt/internal/logging"
	"github.com/Makepad-fr/todotxt/internal/store/textstore"
)

// FileName is the optional config file looked up beside the executable.
const FileName = "todo.toml"

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds resolved settings.
type Config struct {
	LogLevel string `toml:"log_level"`
	Color    string `toml:"color"`

	// DataFile is derived in Finalize, never read from a file.
	DataFile string `toml:"-"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel: "warn",
		Color:    ColorAuto,
	}
}

// Load resolves settings for an installation rooted at dir (normally the
// executable's directory). Flag overrides are applied by the caller before
// Finalize.
func Load(dir string) (Config, error) {
	cfg := Default()
	if err := LoadFile(&cfg, filepath.Join(dir, FileName)); err != nil {
		return Config{}, err
	}
	cfg = FromEnv(cfg)
	cfg.DataFile = filepath.Join(dir, textstore.DataFileName)
	return cfg, nil
}

// LoadFile decodes path over cfg. A missing file leaves cfg untouched.
func LoadFile(cfg *Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat config %s: %w", path, err)
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return nil
}

// FromEnv applies TODO_LOG_LEVEL, TODO_COLOR and NO_COLOR over base.
func FromEnv(base Config) Config {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("TODO_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("TODO_COLOR")); v != "" {
		cfg.Color = strings.ToLower(v)
	}
	if os.Getenv("NO_COLOR") != "" {
		cfg.Color = ColorNever
	}
	return cfg
}

// Finalize validates cfg after all overrides have been applied.
func (c *Config) Finalize() error {
	c.Color = strings.ToLower(strings.TrimSpace(c.Color))
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q (want auto, always or never)", c.Color)
	}
	if !logging.ValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log level %q (want debug, info, warn or error)", c.LogLevel)
	}
	if c.DataFile == "" {
		return errors.New("data file path is empty")
	}
	return nil
}

// ExecutableDir returns the directory holding the running binary.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
