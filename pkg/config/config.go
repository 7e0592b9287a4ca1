// Package config loads BCE's configuration knobs (§6) from TOML with
// default -> file -> environment precedence, grounded on a sibling
// MCP server project's config-loading pattern. Unknown keys are
// rejected via BurntSushi/toml's Undecoded() metadata, the idiomatic
// mechanism this library exposes for exactly that requirement.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/kittclouds/bce/pkg/bceerr"
)

// LogLevel is the closed enumeration of §6.
type LogLevel string

const (
	Trace LogLevel = "TRACE"
	Debug LogLevel = "DEBUG"
	Info  LogLevel = "INFO"
	Warn  LogLevel = "WARN"
	Error LogLevel = "ERROR"
)

// Config holds the six recognized options of §6.
type Config struct {
	DataRoot         string   `toml:"data_root"`
	CacheSize        int      `toml:"cache_size"`
	EnableValidation bool     `toml:"enable_validation"`
	LogLevel         LogLevel `toml:"log_level"`
	HooksEnabled     bool     `toml:"hooks_enabled"`
	HookPlugins      []string `toml:"hook_plugins"`
}

// Defaults returns the configuration §6 specifies when nothing else is
// provided.
func Defaults() Config {
	return Config{
		DataRoot:         "",
		CacheSize:        128,
		EnableValidation: true,
		LogLevel:         Warn,
		HooksEnabled:     true,
		HookPlugins:      []string{},
	}
}

// Load resolves configuration with default -> file -> environment
// precedence. configPath may be empty, in which case only defaults and
// environment overrides apply.
func Load(configPath string) (Config, error) {
	cfg := Defaults()

	if configPath != "" {
		meta, err := toml.DecodeFile(configPath, &cfg)
		if err != nil {
			return Config{}, bceerr.Wrap(bceerr.Configuration, err, "failed to parse configuration file")
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			names := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				names = append(names, k.String())
			}
			return Config{}, bceerr.New(bceerr.Configuration, "unknown configuration option(s): "+strings.Join(names, ", "))
		}
	}

	applyEnvOverrides(&cfg)

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BCE_DATA_ROOT"); v != "" {
		cfg.DataRoot = v
	}
	if v := os.Getenv("BCE_CACHE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.CacheSize = n
		}
	}
	if v := os.Getenv("BCE_ENABLE_VALIDATION"); v != "" {
		cfg.EnableValidation = v == "true" || v == "1"
	}
	if v := os.Getenv("BCE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = LogLevel(strings.ToUpper(v))
	}
	if v := os.Getenv("BCE_HOOKS_ENABLED"); v != "" {
		cfg.HooksEnabled = v == "true" || v == "1"
	}
	if v := os.Getenv("BCE_HOOK_PLUGINS"); v != "" {
		cfg.HookPlugins = strings.Split(v, ",")
	}
}

func validate(cfg Config) error {
	if cfg.CacheSize < 0 {
		return bceerr.New(bceerr.Configuration, "cache_size must be >= 0")
	}
	switch cfg.LogLevel {
	case Trace, Debug, Info, Warn, Error:
	default:
		return bceerr.New(bceerr.Configuration, "log_level must be one of TRACE|DEBUG|INFO|WARN|ERROR")
	}
	return nil
}
