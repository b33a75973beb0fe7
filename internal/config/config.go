// Package config loads kashimitra settings from defaults, an optional TOML
// file and KASHI_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/alexanderramin/kashimitra/internal/intelligence"
	"github.com/alexanderramin/kashimitra/internal/llm"
	"github.com/alexanderramin/kashimitra/internal/logging"
)

// Config is the resolved application configuration.
type Config struct {
	DBPath         string
	LogPath        string
	LogLevel       string
	SimulatedDelay time.Duration
	LLM            llm.LLMConfig
}

// fileConfig mirrors config.toml. Pointers distinguish unset from zero.
type fileConfig struct {
	DBPath   string   `toml:"db_path"`
	LogPath  string   `toml:"log_path"`
	LogLevel string   `toml:"log_level"`
	LLM      llmTable `toml:"llm"`
}

type llmTable struct {
	Endpoint         string `toml:"endpoint"`
	Model            string `toml:"model"`
	TimeoutMs        *int   `toml:"timeout_ms"`
	ChatTimeoutMs    *int   `toml:"chat_timeout_ms"`
	PlanTimeoutMs    *int   `toml:"plan_timeout_ms"`
	LogCalls         *bool  `toml:"log_calls"`
	SimulatedDelayMs *int   `toml:"simulated_delay_ms"`
}

// Dir returns ~/.kashimitra.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".kashimitra")
	}
	return filepath.Join(home, ".kashimitra")
}

// DefaultPath returns the location of config.toml.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DBPath:         filepath.Join(Dir(), "kashimitra.db"),
		LogPath:        logging.DefaultLogPath(),
		LogLevel:       "info",
		SimulatedDelay: intelligence.DefaultSimulatedDelay,
		LLM:            llm.DefaultConfig(),
	}
}

// Load reads the TOML file at path over the defaults and then applies
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	if fc.DBPath != "" {
		cfg.DBPath = fc.DBPath
	}
	if fc.LogPath != "" {
		cfg.LogPath = fc.LogPath
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.LLM.Endpoint != "" {
		cfg.LLM.Endpoint = fc.LLM.Endpoint
	}
	if fc.LLM.Model != "" {
		cfg.LLM.Model = fc.LLM.Model
	}
	if fc.LLM.TimeoutMs != nil && *fc.LLM.TimeoutMs > 0 {
		cfg.LLM.TimeoutMs = *fc.LLM.TimeoutMs
	}
	setTaskTimeout(&cfg.LLM, llm.TaskChat, fc.LLM.ChatTimeoutMs)
	setTaskTimeout(&cfg.LLM, llm.TaskPlan, fc.LLM.PlanTimeoutMs)
	if fc.LLM.LogCalls != nil {
		cfg.LLM.LogCalls = *fc.LLM.LogCalls
	}
	if fc.LLM.SimulatedDelayMs != nil && *fc.LLM.SimulatedDelayMs >= 0 {
		cfg.SimulatedDelay = time.Duration(*fc.LLM.SimulatedDelayMs) * time.Millisecond
	}
	return nil
}

func setTaskTimeout(cfg *llm.LLMConfig, task llm.TaskType, ms *int) {
	if ms == nil || *ms <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = *ms
	cfg.Tasks[task] = tc
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("KASHI_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("KASHI_LOG_PATH"); v != "" {
		cfg.LogPath = v
	}
	if v := os.Getenv("KASHI_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("KASHI_SIMULATED_DELAY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.SimulatedDelay = time.Duration(n) * time.Millisecond
		}
	}
	llm.ApplyEnv(&cfg.LLM)
}
