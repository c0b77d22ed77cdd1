package llm

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.Configured())
	assert.Equal(t, "https://api.openai.com", cfg.Endpoint)
	assert.Equal(t, "gpt-5", cfg.Model)
	assert.Equal(t, 45000, cfg.TaskTimeout(TaskDecompose))
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("ESTIMATOR_LLM_ENDPOINT", "http://localhost:9999/")
	t.Setenv("ESTIMATOR_LLM_MODEL", "gpt-4o-mini")
	t.Setenv("ESTIMATOR_LLM_TIMEOUT_MS", "9000")
	t.Setenv("ESTIMATOR_LLM_LOG_CALLS", "true")

	cfg := LoadConfig()

	assert.True(t, cfg.Configured())
	assert.Equal(t, "sk-env", cfg.APIKey)
	assert.Equal(t, "http://localhost:9999", cfg.Endpoint)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, 9000, cfg.TaskTimeout(TaskDecompose))
	assert.True(t, cfg.LogCalls)
}

func TestLoadConfig_EstimatorKeyWins(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("ESTIMATOR_LLM_API_KEY", "sk-estimator")

	assert.Equal(t, "sk-estimator", LoadConfig().APIKey)
}

func TestLoadConfig_TaskTimeoutOverride(t *testing.T) {
	t.Setenv("ESTIMATOR_LLM_TIMEOUT_MS", "9000")
	t.Setenv("ESTIMATOR_LLM_DECOMPOSE_TIMEOUT_MS", "15000")

	cfg := LoadConfig()

	assert.Equal(t, 9000, cfg.TimeoutMs)
	assert.Equal(t, 15000, cfg.TaskTimeout(TaskDecompose))
}

func TestLoadConfig_InvalidNumbersIgnored(t *testing.T) {
	t.Setenv("ESTIMATOR_LLM_TIMEOUT_MS", "soon")
	t.Setenv("ESTIMATOR_LLM_DECOMPOSE_TIMEOUT_MS", "-5")

	cfg := LoadConfig()

	assert.Equal(t, 45000, cfg.TaskTimeout(TaskDecompose))
}

func TestConfigured_BlankKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.APIKey = "   "
	assert.False(t, cfg.Configured())
}

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogObserver(slog.New(slog.NewTextHandler(&buf, nil)))

	obs.OnCallComplete(LLMCallEvent{Task: TaskDecompose, Model: "gpt-5", LatencyMs: 12, Success: true})
	obs.OnCallComplete(LLMCallEvent{Task: TaskDecompose, Model: "gpt-5", ErrorCode: "TIMEOUT"})

	out := buf.String()
	assert.Contains(t, out, "msg=llm_call")
	assert.Contains(t, out, "task=decompose")
	assert.Contains(t, out, "latency_ms=12")
	assert.Contains(t, out, "error_code=TIMEOUT")
	assert.Contains(t, out, "level=WARN")
}
