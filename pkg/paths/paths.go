// Package paths provides centralized path handling for fpsync.
// It resolves configuration candidates per the XDG Base Directory
// specification and expands user-supplied paths (~ and $VARS) before
// they reach rsync.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvHome is the standard home directory variable
	EnvHome = "HOME"

	// EnvConfigDir overrides the XDG config directory for fpsync
	EnvConfigDir = "FPSYNC_CONFIG_DIR"
)

// Fixed file names
const (
	// TransferLogName is the rsync transfer log kept in $HOME.
	// rsync owns this file's format; fpsync only passes its path.
	TransferLogName = ".fpsync.log"

	// ConfigFileName is the config file name under the XDG config dir
	ConfigFileName = "fpsync.toml"

	// DotConfigFileName is the legacy config file name in $HOME
	DotConfigFileName = ".fpsync.toml"
)

// ExpandHome expands a leading ~ to the user's home directory.
// Paths without a leading ~ are returned unchanged.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv(EnvHome)
		if home == "" {
			// Can't expand, return as-is
			return path
		}
	}

	if len(path) == 1 {
		return home
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(home, path[2:])
	}

	// ~user form is not supported, leave untouched
	return path
}

// Expand resolves both ~ and environment-variable references in a
// user-supplied path. Config values go through this exactly once,
// before any filesystem check or command assembly.
func Expand(path string) string {
	return ExpandHome(os.ExpandEnv(path))
}

// TransferLogPath returns the fixed per-user rsync log file path
func TransferLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv(EnvHome)
	}
	return filepath.Join(home, TransferLogName)
}

// ConfigCandidates returns the default configuration search paths, in
// order: the XDG config dir, then the legacy dotfile in $HOME.
func ConfigCandidates() []string {
	configDir := os.Getenv(EnvConfigDir)
	if configDir == "" {
		configDir = filepath.Join(xdg.ConfigHome, "fpsync")
	}
	return []string{
		filepath.Join(configDir, ConfigFileName),
		filepath.Join(homeDir(), DotConfigFileName),
	}
}

// DefaultConfigPath returns where `fpsync init` writes its scaffold
func DefaultConfigPath() string {
	return ConfigCandidates()[0]
}

// IsRemote reports whether a path denotes a remote location in
// host:path form. A colon before the first path separator marks the
// host boundary; plain local paths never contain one there.
func IsRemote(path string) bool {
	colon := strings.Index(path, ":")
	if colon < 0 {
		return false
	}
	slash := strings.IndexByte(path, '/')
	return slash < 0 || colon < slash
}

// SplitRemote splits a host:path form into its host and base parts.
// The second return is false for local paths.
func SplitRemote(path string) (host, base string, ok bool) {
	if !IsRemote(path) {
		return "", path, false
	}
	colon := strings.Index(path, ":")
	return path[:colon], path[colon+1:], true
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.Getenv(EnvHome)
	}
	return home
}
