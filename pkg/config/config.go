// SPDX-FileCopyrightText: © 2025 Nfrastack <code@nfrastack.com>
//
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"snapconfine/pkg/logger"
	"snapconfine/pkg/utils"

	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultPath is read when no other file is requested; it may be absent
	DefaultPath = "/etc/snap-confine.yaml"

	// PathEnv selects another configuration file, which must exist.
	// It is honoured for trusted callers only.
	PathEnv = "SNAP_CONFINE_CONFIG"
)

// replaced in tests
var defaultPath = DefaultPath

type Rotation struct {
	MaxSize    int  `yaml:"max_size"`
	MaxBackups int  `yaml:"max_backups"`
	MaxAge     int  `yaml:"max_age"`
	Compress   bool `yaml:"compress"`
}

type Config struct {
	LogLevel      string   `yaml:"log_level"`
	LogTimestamps bool     `yaml:"log_timestamps"`
	LogFile       string   `yaml:"log_file"`
	LogRotation   Rotation `yaml:"log_rotation"`
	DefaultBase   string   `yaml:"default_base"`
	AllowClassic  bool     `yaml:"allow_classic"`
	RequireSetuid bool     `yaml:"require_setuid"`
}

func DefaultConfig() Config {
	return Config{
		LogLevel:      logger.LevelInfo,
		LogTimestamps: false,
		LogFile:       "",
		LogRotation: Rotation{
			MaxSize:    8,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   false,
		},
		DefaultBase:   "core",
		AllowClassic:  true,
		RequireSetuid: true,
	}
}

// LoggerOptions converts the logging part of the configuration
func (c Config) LoggerOptions() logger.Options {
	return logger.Options{
		Level:          c.LogLevel,
		ShowTimestamps: c.LogTimestamps,
		File:           c.LogFile,
		Rotation: logger.Rotation{
			MaxSize:    c.LogRotation.MaxSize,
			MaxBackups: c.LogRotation.MaxBackups,
			MaxAge:     c.LogRotation.MaxAge,
			Compress:   c.LogRotation.Compress,
		},
	}
}

// Decode reads a YAML document on top of the defaults, so omitted keys keep
// their default values.
func Decode(r io.Reader) (Config, error) {
	config := DefaultConfig()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	return config, nil
}

func LoadConfig(filePath string) (Config, error) {
	return loadConfig(filePath, nil)
}

// loadConfig decodes filePath after verify, when set, accepted the opened file
func loadConfig(filePath string, verify func(*os.File) error) (Config, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".yaml", ".yml":
	default:
		return Config{}, fmt.Errorf("unsupported config file format: %s (supported: .yaml, .yml)", ext)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	if verify != nil {
		if err := verify(file); err != nil {
			return Config{}, err
		}
	}

	return Decode(file)
}

// LoadConfiguration loads the configuration. A trusted caller may name the
// file in SNAP_CONFINE_CONFIG, which must then exist. Otherwise only
// DefaultPath is read, and it must be owned by root and not writable by group
// or others. Only the default file may be missing.
func LoadConfiguration(trusted bool) (Config, string, error) {
	configFile := defaultPath
	verify := utils.CheckRootOwned
	explicit := false
	if trusted {
		verify = nil
		if path := os.Getenv(PathEnv); path != "" {
			configFile = path
			explicit = true
		}
	}

	cfg, err := loadConfig(configFile, verify)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), "", nil
		}
		return Config{}, configFile, fmt.Errorf("cannot load configuration file %s: %w", configFile, err)
	}

	return cfg, configFile, nil
}

// ApplyEnvironment lets LOG_LEVEL and SNAP_CONFINE_DEBUG override the file
func ApplyEnvironment(cfg *Config) {
	if level := os.Getenv("LOG_LEVEL"); logger.ParseLogLevel(level) != logger.LogLevelNone {
		cfg.LogLevel = level
	}
	if logger.DebugRequested() && logger.ParseLogLevel(cfg.LogLevel) < logger.LogLevelDebug {
		cfg.LogLevel = logger.LevelDebug
	}
}

func ValidateConfig(cfg *Config) error {
	if logger.ParseLogLevel(cfg.LogLevel) == logger.LogLevelNone {
		return fmt.Errorf("invalid log level: %s (must be error, warn, info, verbose, debug, or trace)", cfg.LogLevel)
	}

	if strings.TrimSpace(cfg.DefaultBase) == "" {
		return fmt.Errorf("missing required configuration: default_base")
	}

	r := cfg.LogRotation
	if r.MaxSize < 0 || r.MaxBackups < 0 || r.MaxAge < 0 {
		return fmt.Errorf("invalid log rotation: max_size, max_backups and max_age must not be negative")
	}

	if cfg.LogFile != "" && !filepath.IsAbs(cfg.LogFile) {
		return fmt.Errorf("invalid log file %q: path must be absolute", cfg.LogFile)
	}

	return nil
}
