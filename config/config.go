// Package config handles luny.toml configuration and environment
// overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/chazu/luny/table"
	"github.com/chazu/luny/variable"
)

// FileName is the configuration file Load and FindAndLoad look for.
const FileName = "luny.toml"

// MinVerbosity silences logging entirely.
const MinVerbosity = -4

// Config is the parsed form of luny.toml.
type Config struct {
	Debug   Debug   `toml:"debug"`
	Logging Logging `toml:"logging"`

	// Dir is the directory containing luny.toml (set at load time).
	Dir string `toml:"-"`
}

// Debug holds diagnostics that cost time on every write.
type Debug struct {
	ChangeEvents bool `toml:"change-events" env:"LUNY_CHANGE_EVENTS"`
}

// Logging configures the commonlog backend.
type Logging struct {
	// Verbosity follows commonlog: 0 is Notice, 1 Info, 2 and above Debug,
	// -1 to -3 Warning down to Critical, -4 turns logging off.
	Verbosity int `toml:"verbosity" env:"LUNY_LOG_VERBOSITY"`

	// Path is a log file; empty means stderr.
	Path string `toml:"path" env:"LUNY_LOG_PATH"`
}

// Default returns the configuration used when no luny.toml exists.
func Default() *Config {
	return &Config{
		Debug: Debug{ChangeEvents: variable.Debug},
	}
}

// Load parses luny.toml from the given directory. Keys missing from the
// file keep their Default values. Unknown keys and out-of-range settings
// are errors.
func Load(dir string) (*Config, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}
	path := filepath.Join(abs, FileName)

	c := Default()
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return nil, fmt.Errorf("cannot load %s: %w", path, err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, keys[0].String())
	}
	c.Dir = abs
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// FindAndLoad loads the nearest luny.toml at or above startDir. It returns
// nil, nil when there is none.
func FindAndLoad(startDir string) (*Config, error) {
	dir, ok, err := find(startDir)
	if err != nil || !ok {
		return nil, err
	}
	return Load(dir)
}

// find returns the closest directory at or above startDir that holds
// luny.toml.
func find(startDir string) (string, bool, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, err
	}
	for {
		if fi, err := os.Stat(filepath.Join(dir, FileName)); err == nil && !fi.IsDir() {
			return dir, true, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Validate checks settings the TOML and env decoders cannot. Verbosity
// below -4 is rejected, as is a log path naming a directory.
func (c *Config) Validate() error {
	if c.Logging.Verbosity < MinVerbosity {
		return fmt.Errorf("logging verbosity %d is below %d", c.Logging.Verbosity, MinVerbosity)
	}
	if p := c.logPath(); p != "" {
		if fi, err := os.Stat(p); err == nil && fi.IsDir() {
			return fmt.Errorf("logging path %s is a directory", p)
		}
	}
	return nil
}

// Resolve finds luny.toml from startDir, falls back to Default, and then
// applies environment overrides.
func Resolve(startDir string) (*Config, error) {
	c, err := FindAndLoad(startDir)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = Default()
	}
	if err := ParseEnv(c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// ParseEnv loads configuration from environment variables. Unset variables
// leave the target unchanged.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// TableOptions returns the table options this configuration implies.
func (c *Config) TableOptions() []table.Option {
	return []table.Option{
		table.WithChangeEvents(c.Debug.ChangeEvents),
	}
}

// ConfigureLogging installs the logging settings on the commonlog backend.
func (c *Config) ConfigureLogging() {
	var path *string
	if p := c.logPath(); p != "" {
		path = &p
	}
	commonlog.Configure(c.Logging.Verbosity, path)
}

// logPath resolves a relative log path against Dir.
func (c *Config) logPath() string {
	p := c.Logging.Path
	if p != "" && !filepath.IsAbs(p) && c.Dir != "" {
		p = filepath.Join(c.Dir, p)
	}
	return p
}
