// Package config loads todo settings from files, environment, and flags.
package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/tiwariParth/go-task-tracker/internal/storage/file"
)

// Defaults.
const (
	DefaultFilename  = file.DefaultFilename
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// Config holds all configuration for the todo CLI.
type Config struct {
	// Filename is the tasks file, relative to the working directory unless
	// absolute.
	Filename string `toml:"filename"`

	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`

	// Lock serializes writers from several processes with a lock file.
	Lock bool `toml:"lock"`

	NoColor bool `toml:"no_color"`

	// ConfigFile is an explicit config file given with -config.
	ConfigFile string `toml:"-"`
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.Filename = DefaultFilename
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.Lock = false
	cfg.NoColor = false
}

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (<user config dir>/todo/config.toml)
// 3. Project config file (todo.toml or .todo.toml in current directory)
// 4. Explicit config file (-config)
// 5. Environment variables
// 6. CLI flags
//
// The arguments left after the flags are available from fs.Args().
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	if fs == nil {
		fs = flag.NewFlagSet("todo", flag.ContinueOnError)
	}

	flagCfg := &Config{}
	setDefaults(flagCfg)
	bindFlags(fs, flagCfg)
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	cfg := &Config{}
	setDefaults(cfg)

	if userConfigFile := findUserConfigFile(); userConfigFile != "" {
		if err := loadConfigFile(cfg, userConfigFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
	}

	if projectConfigFile := findProjectConfigFile(); projectConfigFile != "" {
		if err := loadConfigFile(cfg, projectConfigFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
	}

	if flagCfg.ConfigFile != "" {
		if err := loadConfigFile(cfg, flagCfg.ConfigFile); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", flagCfg.ConfigFile, err)
		}
		cfg.ConfigFile = flagCfg.ConfigFile
	}

	loadFromEnv(cfg)
	applyFlags(cfg, flagCfg, fs)

	if err := finalizeConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// bindFlags registers the global flags on fs, storing values in target.
func bindFlags(fs *flag.FlagSet, target *Config) {
	fs.StringVar(&target.Filename, "file", target.Filename, "path to the tasks file")
	fs.StringVar(&target.ConfigFile, "config", "", "path to a TOML config file")
	fs.StringVar(&target.LogLevel, "log-level", target.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&target.LogFormat, "log-format", target.LogFormat, "log format: text, json, logfmt")
	fs.BoolVar(&target.Lock, "lock", target.Lock, "lock the tasks file while writing")
	fs.BoolVar(&target.NoColor, "no-color", target.NoColor, "disable colored output")
}

// applyFlags copies explicitly set flags over cfg.
func applyFlags(cfg, flagCfg *Config, fs *flag.FlagSet) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "file":
			cfg.Filename = flagCfg.Filename
		case "log-level":
			cfg.LogLevel = flagCfg.LogLevel
		case "log-format":
			cfg.LogFormat = flagCfg.LogFormat
		case "lock":
			cfg.Lock = flagCfg.Lock
		case "no-color":
			cfg.NoColor = flagCfg.NoColor
		}
	})
}

// loadConfigFile loads TOML config from the given file.
func loadConfigFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TODO_FILE"); v != "" {
		cfg.Filename = v
	}
	if v := os.Getenv("TODO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TODO_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("TODO_LOCK"); v != "" {
		cfg.Lock = boolFromString(v)
	}
	// https://no-color.org: any non-empty value disables color.
	if v := os.Getenv("NO_COLOR"); v != "" {
		cfg.NoColor = true
	}
}

// finalizeConfig expands and validates paths.
func finalizeConfig(cfg *Config) error {
	cfg.Filename = expandPath(strings.TrimSpace(cfg.Filename))
	if cfg.Filename == "" {
		return fmt.Errorf("filename must not be empty")
	}
	return nil
}

// findProjectConfigFile looks for a config file in the current directory.
func findProjectConfigFile() string {
	for _, name := range []string{"todo.toml", ".todo.toml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// findUserConfigFile looks for a user-level config file.
func findUserConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(dir, "todo", "config.toml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// expandPath expands a leading ~ to the home directory.
func expandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}

// PrintDefaults writes the global flag usage to w.
func PrintDefaults(w io.Writer) {
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	fs.SetOutput(w)
	cfg := &Config{}
	setDefaults(cfg)
	bindFlags(fs, cfg)
	fs.PrintDefaults()
}
