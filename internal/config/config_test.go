package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/marcus/jot/internal/repository"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvDataFile, EnvStorage, EnvLogLevel, EnvLogFormat} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()

	cfg, err := Load(home, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Backend != repository.BackendFile {
		t.Errorf("Backend = %q", cfg.Storage.Backend)
	}
	if got, want := cfg.StoragePath(), filepath.Join(home, "data", "jot.txt"); got != want {
		t.Errorf("StoragePath = %q, want %q", got, want)
	}
	if cfg.Dates.Relative {
		t.Errorf("relative dates should default to off")
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	content := `
data_file = "/srv/tasks.txt"

[storage]
backend = "sqlite"
sqlite_file = "db/tasks.db"

[dates]
relative = true

[log]
level = "debug"
format = "json"
`
	if err := os.WriteFile(Path(home), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(home, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataFile != "/srv/tasks.txt" {
		t.Errorf("DataFile = %q", cfg.DataFile)
	}
	if cfg.Storage.Backend != repository.BackendSQLite {
		t.Errorf("Backend = %q", cfg.Storage.Backend)
	}
	if got, want := cfg.StoragePath(), filepath.Join(home, "db", "tasks.db"); got != want {
		t.Errorf("StoragePath = %q, want %q", got, want)
	}
	if !cfg.Dates.Relative || cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	if err := os.WriteFile(Path(home), []byte("[log]\nlevel = \"info\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvDataFile, "elsewhere.txt")

	cfg, err := Load(home, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("Log.Level = %q, want env value", cfg.Log.Level)
	}
	if got, want := cfg.StoragePath(), filepath.Join(home, "elsewhere.txt"); got != want {
		t.Errorf("StoragePath = %q, want %q", got, want)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"unknown backend", "[storage]\nbackend = \"json\"\n", "storage.backend"},
		{"unknown key", "colour = \"red\"\n", "unknown keys"},
		{"bad level", "[log]\nlevel = \"loud\"\n", "log.level"},
		{"bad toml", "data_file = \n", "read config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := t.TempDir()
			if err := os.WriteFile(Path(home), []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(home, "")
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	cfg := Default(home)
	cfg.Dates.Relative = true
	cfg.Storage.Backend = repository.BackendSQLite

	path := filepath.Join(home, "nested", FileName)
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(home, path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !loaded.Dates.Relative || loaded.Storage.Backend != repository.BackendSQLite {
		t.Errorf("round trip lost values: %+v", loaded)
	}

	// No temp files left behind.
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("expected only the config file, found %d entries", len(entries))
	}
}

func TestGetSet(t *testing.T) {
	cfg := Default(t.TempDir())

	if err := cfg.Set("dates.relative", "true"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, _ := cfg.Get("dates.relative"); v != "true" {
		t.Errorf("Get(dates.relative) = %q", v)
	}

	if err := cfg.Set("storage.backend", "sqlite"); err != nil {
		t.Fatalf("Set backend: %v", err)
	}
	if err := cfg.Set("storage.backend", "csv"); err == nil {
		t.Errorf("expected validation error for csv backend")
	}
	if err := cfg.Set("dates.relative", "maybe"); err == nil {
		t.Errorf("expected error for non-bool")
	}
	if _, err := cfg.Get("nope"); err == nil {
		t.Errorf("expected error for unknown key")
	}

	keys := Keys()
	if len(keys) != 6 || keys[0] != "data_file" {
		t.Errorf("Keys = %v", keys)
	}
}
