// Package paths resolves the locations envtmpl reads configuration from and
// writes its log to. It follows the XDG Base Directory layout, with
// environment overrides for each directory.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for envtmpl
	EnvConfigDir = "ENVTMPL_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for envtmpl
	EnvStateDir = "ENVTMPL_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// AppDirName is the directory name used below each XDG base directory
	AppDirName = "envtmpl"

	// UserConfigFile is the config file name inside the config directory
	UserConfigFile = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "envtmpl.log"
)

// ProjectConfigFiles are looked up in the working directory, first match wins.
var ProjectConfigFiles = []string{".envtmpl.toml", ".envtmpl.yaml", ".envtmpl.yml"}

// Paths holds the resolved directories.
type Paths struct {
	configDir string
	stateDir  string
}

// New resolves the directories from the current environment.
func New() *Paths {
	xdg.Reload()

	p := &Paths{}
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.configDir = ExpandHome(dir)
	} else {
		p.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}
	if dir := os.Getenv(EnvStateDir); dir != "" {
		p.stateDir = ExpandHome(dir)
	} else {
		p.stateDir = filepath.Join(xdg.StateHome, AppDirName)
	}
	return p
}

// ConfigDir returns the directory holding the user config file.
func (p *Paths) ConfigDir() string { return p.configDir }

// StateDir returns the directory holding the log file.
func (p *Paths) StateDir() string { return p.stateDir }

// UserConfigPath returns the full path of the user config file.
func (p *Paths) UserConfigPath() string {
	return filepath.Join(p.configDir, UserConfigFile)
}

// LogFilePath returns the full path of the log file.
func (p *Paths) LogFilePath() string {
	return filepath.Join(p.stateDir, LogFileName)
}

// FindProjectConfig returns the first project config file present in dir, or
// "" when there is none.
func FindProjectConfig(dir string) string {
	for _, name := range ProjectConfigFiles {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}
	// ~user forms are left alone
	return path
}
