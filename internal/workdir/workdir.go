// Package workdir resolves jot's home directory, where the config file and
// data live by default. A .jot-root file inside the home directory
// redirects to another location, so several machines or checkouts can
// share one task list.
package workdir

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// HomeEnv overrides the home directory.
	HomeEnv = "JOT_HOME"

	rootFile       = ".jot-root"
	defaultDirName = ".jot"
)

// Home returns the home directory: $JOT_HOME if set, otherwise ~/.jot,
// after following any .jot-root redirect.
func Home() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(HomeEnv)); dir != "" {
		return ResolveRedirect(dir), nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory (set %s): %w", HomeEnv, err)
	}
	return ResolveRedirect(filepath.Join(userHome, defaultDirName)), nil
}

// ResolveRedirect checks for a .jot-root file in dir. If found and
// non-empty, the path it contains is returned; relative paths are taken
// relative to dir. Otherwise dir is returned unchanged.
func ResolveRedirect(dir string) string {
	content, err := os.ReadFile(filepath.Join(dir, rootFile))
	if err != nil {
		return dir
	}
	resolved := strings.TrimSpace(string(content))
	if resolved == "" {
		return dir
	}
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(dir, resolved)
	}
	return filepath.Clean(resolved)
}

// WriteRedirect points dir at target by writing a .jot-root file.
func WriteRedirect(dir, target string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, rootFile), []byte(target+"\n"), 0644)
}

// Resolve returns path unchanged when absolute, otherwise joined onto base.
func Resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
