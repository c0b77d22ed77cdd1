package llm

import (
	"os"
	"strconv"
	"strings"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	// TaskDecompose turns a product request into a module-attributed WBS.
	TaskDecompose TaskType = "decompose"
)

// TaskConfig holds per-task LLM parameters. Zero values are omitted from
// the request so the provider default applies.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem. An empty APIKey
// disables remote calls entirely.
type LLMConfig struct {
	APIKey    string
	Endpoint  string
	Model     string
	TimeoutMs int
	LogCalls  bool
	Tasks     map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig pointing at the public OpenAI API with
// no credential.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Endpoint:  "https://api.openai.com",
		Model:     "gpt-5",
		TimeoutMs: 45000,
		Tasks: map[TaskType]TaskConfig{
			TaskDecompose: {},
		},
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	return ApplyEnv(DefaultConfig())
}

// ApplyEnv overlays environment variables onto cfg. Invalid numeric values
// are ignored.
func ApplyEnv(cfg LLMConfig) LLMConfig {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("ESTIMATOR_LLM_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("ESTIMATOR_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("ESTIMATOR_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("ESTIMATOR_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("ESTIMATOR_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}

	applyTaskTimeoutEnv(&cfg, TaskDecompose, "ESTIMATOR_LLM_DECOMPOSE_TIMEOUT_MS")

	return cfg
}

// Configured reports whether a credential is present.
func (c LLMConfig) Configured() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
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
		cfg.Tasks = make(map[TaskType]TaskConfig)
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
