// Package config loads and saves jot's TOML configuration. Values are
// layered: defaults, then the config file, then JOT_* environment
// variables. Command-line flags are applied last by the cmd package.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/marcus/jot/internal/logging"
	"github.com/marcus/jot/internal/repository"
	"github.com/marcus/jot/internal/workdir"
)

// FileName is the config file name inside the home directory.
const FileName = "config.toml"

// Defaults.
const (
	DefaultDataFile   = "data/jot.txt"
	DefaultSQLiteFile = "data/jot.db"
	DefaultBackend    = repository.BackendFile
	DefaultLogLevel   = "warn"
	DefaultLogFormat  = "text"
)

// Environment overrides.
const (
	EnvDataFile  = "JOT_DATA_FILE"
	EnvStorage   = "JOT_STORAGE"
	EnvLogLevel  = "JOT_LOG_LEVEL"
	EnvLogFormat = "JOT_LOG_FORMAT"
)

// Config holds every setting.
type Config struct {
	// DataFile is the record file used by the file backend. Relative paths
	// are resolved against the home directory.
	DataFile string        `toml:"data_file"`
	Storage  StorageConfig `toml:"storage"`
	Dates    DatesConfig   `toml:"dates"`
	Log      LogConfig     `toml:"log"`

	// Home is the directory relative paths are resolved against.
	Home string `toml:"-"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Backend    repository.Backend `toml:"backend"`
	SQLiteFile string             `toml:"sqlite_file"`
}

// DatesConfig controls date argument parsing.
type DatesConfig struct {
	// Relative enables inputs such as "tomorrow" or "+3d".
	Relative bool `toml:"relative"`
}

// LogConfig configures diagnostic logging.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the default configuration rooted at home.
func Default(home string) *Config {
	return &Config{
		DataFile: DefaultDataFile,
		Storage: StorageConfig{
			Backend:    DefaultBackend,
			SQLiteFile: DefaultSQLiteFile,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Home: home,
	}
}

// Path returns the config file path inside home.
func Path(home string) string {
	return filepath.Join(home, FileName)
}

// Load builds the configuration for home from defaults, the file at path
// (if it exists) and the environment. An empty path means Path(home).
func Load(home, path string) (*Config, error) {
	if path == "" {
		path = Path(home)
	}
	cfg := Default(home)

	if err := loadFile(cfg, path); err != nil {
		return nil, err
	}
	loadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFile is Load without environment overrides. `jot config set` edits
// this view so that JOT_* variables are never written back to disk.
func LoadFile(home, path string) (*Config, error) {
	if path == "" {
		path = Path(home)
	}
	cfg := Default(home)
	if err := loadFile(cfg, path); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv(EnvDataFile); v != "" {
		cfg.DataFile = v
	}
	if v := os.Getenv(EnvStorage); v != "" {
		cfg.Storage.Backend = repository.Backend(v)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Log.Format = v
	}
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	if !c.Storage.Backend.IsValid() {
		return fmt.Errorf("invalid storage.backend %q (valid: file, sqlite)", c.Storage.Backend)
	}
	if strings.TrimSpace(c.DataFile) == "" {
		return fmt.Errorf("data_file must not be empty")
	}
	if !logging.ValidLevel(c.Log.Level) {
		return fmt.Errorf("invalid log.level %q (valid: debug, info, warn, error)", c.Log.Level)
	}
	if !logging.ValidFormat(c.Log.Format) {
		return fmt.Errorf("invalid log.format %q (valid: text, json, logfmt)", c.Log.Format)
	}
	return nil
}

// StoragePath returns the resolved path for the selected backend.
func (c *Config) StoragePath() string {
	if c.Storage.Backend == repository.BackendSQLite {
		return workdir.Resolve(c.Home, c.Storage.SQLiteFile)
	}
	return workdir.Resolve(c.Home, c.DataFile)
}

// LogOptions returns logger options for this configuration.
func (c *Config) LogOptions() logging.Options {
	opts := logging.DefaultOptions()
	opts.Level = c.Log.Level
	opts.Format = c.Log.Format
	return opts
}

// Save writes cfg to path using atomic write (temp file + rename).
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "config-*.toml.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if err := toml.NewEncoder(tmp).Encode(cfg); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, path)
}

// key describes one settable value for `jot config get/set`.
type key struct {
	get func(*Config) string
	set func(*Config, string) error
}

var keys = map[string]key{
	"data_file": {
		get: func(c *Config) string { return c.DataFile },
		set: func(c *Config, v string) error { c.DataFile = v; return nil },
	},
	"storage.backend": {
		get: func(c *Config) string { return string(c.Storage.Backend) },
		set: func(c *Config, v string) error { c.Storage.Backend = repository.Backend(v); return nil },
	},
	"storage.sqlite_file": {
		get: func(c *Config) string { return c.Storage.SQLiteFile },
		set: func(c *Config, v string) error { c.Storage.SQLiteFile = v; return nil },
	},
	"dates.relative": {
		get: func(c *Config) string { return strconv.FormatBool(c.Dates.Relative) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("dates.relative must be true or false")
			}
			c.Dates.Relative = b
			return nil
		},
	},
	"log.level": {
		get: func(c *Config) string { return c.Log.Level },
		set: func(c *Config, v string) error { c.Log.Level = v; return nil },
	},
	"log.format": {
		get: func(c *Config) string { return c.Log.Format },
		set: func(c *Config, v string) error { c.Log.Format = v; return nil },
	},
}

// Keys returns the settable keys, sorted.
func Keys() []string {
	out := make([]string, 0, len(keys))
	for k := range keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Get returns the value of name as text.
func (c *Config) Get(name string) (string, error) {
	k, ok := keys[name]
	if !ok {
		return "", fmt.Errorf("unknown config key %q (valid: %s)", name, strings.Join(Keys(), ", "))
	}
	return k.get(c), nil
}

// Set assigns value to name and revalidates.
func (c *Config) Set(name, value string) error {
	k, ok := keys[name]
	if !ok {
		return fmt.Errorf("unknown config key %q (valid: %s)", name, strings.Join(Keys(), ", "))
	}
	if err := k.set(c, value); err != nil {
		return err
	}
	return c.Validate()
}
