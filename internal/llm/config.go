package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of generation being performed.
type TaskType string

const (
	TaskChat TaskType = "chat"
	TaskPlan TaskType = "plan"
)

// TaskConfig holds per-task generation parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the Gemini transport.
type LLMConfig struct {
	LogCalls  bool
	Endpoint  string
	Model     string
	TimeoutMs int
	Tasks     map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig with sensible defaults.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		LogCalls:  false,
		Endpoint:  "https://generativelanguage.googleapis.com",
		Model:     "gemini-1.5-flash",
		TimeoutMs: 30000,
		Tasks: map[TaskType]TaskConfig{
			TaskChat: {Temperature: 0.7, MaxTokens: 1024},
			TaskPlan: {Temperature: 0.4, MaxTokens: 4096},
		},
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()
	ApplyEnv(&cfg)
	return cfg
}

// ApplyEnv overlays KASHI_LLM_* environment variables onto cfg.
// Malformed values are ignored.
func ApplyEnv(cfg *LLMConfig) {
	if v := os.Getenv("KASHI_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("KASHI_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("KASHI_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("KASHI_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}

	applyTaskTimeoutEnv(cfg, TaskChat, "KASHI_LLM_CHAT_TIMEOUT_MS")
	applyTaskTimeoutEnv(cfg, TaskPlan, "KASHI_LLM_PLAN_TIMEOUT_MS")
}

// TaskTimeout returns the effective timeout for a given task type.
// Tasks have no timeout of their own by default, so the global timeout
// applies unless a task override was set.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	if cfg.Tasks == nil {
		cfg.Tasks = map[TaskType]TaskConfig{}
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
