package main

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the CLI defaults read from .gitwrap.toml in the repository
// root or the user's home directory.
type Config struct {
	// DefaultRemote is used when a command takes an optional remote name.
	DefaultRemote string `toml:"default_remote"`
	// LogFile enables debug logging to a rotating file when set.
	LogFile string `toml:"log_file"`
	// Color forces colored output on or off; unset follows the terminal.
	Color *bool `toml:"color"`
}

const configFileName = ".gitwrap.toml"

// loadConfig reads the first config file found, starting in dir. Missing
// files are not an error; defaults apply.
func loadConfig(dir string) (Config, error) {
	cfg := Config{DefaultRemote: "origin"}

	paths := []string{filepath.Join(dir, configFileName)}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, configFileName))
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, err
		}
		break
	}
	if cfg.DefaultRemote == "" {
		cfg.DefaultRemote = "origin"
	}
	return cfg, nil
}
