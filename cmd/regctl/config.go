package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/joshuapare/regedit/pkg/types"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"

	envHive     = "REGCTL_HIVE"
	envComputer = "REGCTL_COMPUTER"
	envAccess   = "REGCTL_ACCESS"
)

// Config is the regctl configuration file.
type Config struct {
	Hive     string        `toml:"hive"`     // default hive for relative paths
	Computer string        `toml:"computer"` // remote computer, empty for local
	Access   string        `toml:"access"`   // access mask, see types.ParseAccess
	Output   string        `toml:"output"`   // text, json or yaml
	NoColor  bool          `toml:"no_color"`
	Logging  LoggingConfig `toml:"logging"`
}

// LoggingConfig enables the JSON log file.
type LoggingConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`   // default ~/.regctl/logs
	Level   string `toml:"level"` // debug, info, warn, error
}

func defaultConfig() Config {
	return Config{
		Hive:   types.CurrentUser.Short(),
		Output: outputText,
	}
}

// loadConfig reads path, or the default config file when path is empty.
// A missing default file is not an error; a missing explicit one is.
func loadConfig(path string) (Config, error) {
	c := defaultConfig()

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &c); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("failed to load config %s: %w", path, err)
			}
		}
	}

	overrideWithEnv(&c)
	return c, nil
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".regctl", "config.toml")
}

func overrideWithEnv(c *Config) {
	if v := os.Getenv(envHive); v != "" {
		c.Hive = v
	}
	if v := os.Getenv(envComputer); v != "" {
		c.Computer = v
	}
	if v := os.Getenv(envAccess); v != "" {
		c.Access = v
	}
}

func (c *Config) validate() error {
	if _, err := types.ParseHive(c.Hive); err != nil {
		return err
	}
	if _, err := types.ParseAccess(c.Access); err != nil {
		return err
	}
	c.Output = strings.ToLower(c.Output)
	switch c.Output {
	case "":
		c.Output = outputText
	case outputText, outputJSON, outputYAML:
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", c.Output)
	}
	return nil
}

func (l LoggingConfig) level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}
