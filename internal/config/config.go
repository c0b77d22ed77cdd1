// Package config loads estimator settings from an optional YAML file and
// ESTIMATOR_* environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/estimator/internal/db"
	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/estimate"
	"github.com/alexanderramin/estimator/internal/llm"
)

// EnvConfigPath names the variable holding the YAML config file path.
const EnvConfigPath = "ESTIMATOR_CONFIG"

const defaultAddr = ":8080"

// Config is the resolved application configuration.
type Config struct {
	DBPath      string
	Addr        string
	CORSOrigins []string
	LogLevel    slog.Level
	// CatalogFile, when set, replaces the built-in seed catalog.
	CatalogFile string
	Estimate    estimate.Config
	LLM         llm.LLMConfig
}

// fileConfig mirrors the YAML layout. Pointer fields distinguish "unset"
// from an explicit zero.
type fileConfig struct {
	DBPath      string        `yaml:"db_path"`
	Addr        string        `yaml:"addr"`
	CORSOrigins []string      `yaml:"cors_origins"`
	LogLevel    string        `yaml:"log_level"`
	CatalogFile string        `yaml:"catalog_file"`
	Estimate    estimateBlock `yaml:"estimate"`
	LLM         llmBlock      `yaml:"llm"`
}

type estimateBlock struct {
	UncertaintyCoefficients map[string]float64 `yaml:"uncertainty_coefficients"`
	UIUXCoefficients        map[string]float64 `yaml:"uiux_coefficients"`
	LegacyMultiplier        *float64           `yaml:"legacy_multiplier"`
	OptimisticMultiplier    *float64           `yaml:"optimistic_multiplier"`
	PessimisticMultiplier   *float64           `yaml:"pessimistic_multiplier"`
	DefaultLevels           map[string]string  `yaml:"default_levels"`
}

type llmBlock struct {
	Endpoint  string `yaml:"endpoint"`
	Model     string `yaml:"model"`
	TimeoutMs int    `yaml:"timeout_ms"`
	LogCalls  *bool  `yaml:"log_calls"`
}

// Default returns the configuration used when no file or env is present.
func Default() *Config {
	return &Config{
		DBPath:   db.DefaultPath(),
		Addr:     defaultAddr,
		LogLevel: slog.LevelInfo,
		Estimate: estimate.DefaultConfig(),
		LLM:      llm.DefaultConfig(),
	}
}

// Load reads the file named by ESTIMATOR_CONFIG (if any), then applies
// environment overrides and validates the result.
func Load() (*Config, error) {
	cfg := Default()
	if path := os.Getenv(EnvConfigPath); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := cfg.merge(data); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse builds a validated Config from YAML bytes on top of the defaults.
// Environment variables are not consulted.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := cfg.merge(data); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) merge(data []byte) error {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("config: parse: %w", err)
	}

	if fc.DBPath != "" {
		c.DBPath = fc.DBPath
	}
	if fc.Addr != "" {
		c.Addr = fc.Addr
	}
	if len(fc.CORSOrigins) > 0 {
		c.CORSOrigins = fc.CORSOrigins
	}
	if fc.LogLevel != "" {
		lvl, err := parseLevel(fc.LogLevel)
		if err != nil {
			return err
		}
		c.LogLevel = lvl
	}
	if fc.CatalogFile != "" {
		c.CatalogFile = fc.CatalogFile
	}

	est := &c.Estimate
	for k, v := range fc.Estimate.UncertaintyCoefficients {
		est.UncertaintyCoefficients[k] = v
	}
	for k, v := range fc.Estimate.UIUXCoefficients {
		est.UIUXCoefficients[k] = v
	}
	if fc.Estimate.LegacyMultiplier != nil {
		est.LegacyMultiplier = *fc.Estimate.LegacyMultiplier
	}
	if fc.Estimate.OptimisticMultiplier != nil {
		est.OptimisticMultiplier = *fc.Estimate.OptimisticMultiplier
	}
	if fc.Estimate.PessimisticMultiplier != nil {
		est.PessimisticMultiplier = *fc.Estimate.PessimisticMultiplier
	}
	for role, level := range fc.Estimate.DefaultLevels {
		est.DefaultLevels[domain.Role(role)] = domain.Level(level)
	}

	if fc.LLM.Endpoint != "" {
		c.LLM.Endpoint = strings.TrimRight(fc.LLM.Endpoint, "/")
	}
	if fc.LLM.Model != "" {
		c.LLM.Model = fc.LLM.Model
	}
	if fc.LLM.TimeoutMs > 0 {
		c.LLM.TimeoutMs = fc.LLM.TimeoutMs
	}
	if fc.LLM.LogCalls != nil {
		c.LLM.LogCalls = *fc.LLM.LogCalls
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("ESTIMATOR_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("ESTIMATOR_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("ESTIMATOR_CORS_ORIGINS"); v != "" {
		c.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("ESTIMATOR_LOG_LEVEL"); v != "" {
		lvl, err := parseLevel(v)
		if err != nil {
			return err
		}
		c.LogLevel = lvl
	}
	if v := os.Getenv("ESTIMATOR_CATALOG"); v != "" {
		c.CatalogFile = v
	}

	multipliers := []struct {
		env string
		dst *float64
	}{
		{"ESTIMATOR_LEGACY_MULTIPLIER", &c.Estimate.LegacyMultiplier},
		{"ESTIMATOR_OPTIMISTIC_MULTIPLIER", &c.Estimate.OptimisticMultiplier},
		{"ESTIMATOR_PESSIMISTIC_MULTIPLIER", &c.Estimate.PessimisticMultiplier},
	}
	for _, m := range multipliers {
		v := os.Getenv(m.env)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: %s: %w", m.env, err)
		}
		*m.dst = f
	}

	c.LLM = llm.ApplyEnv(c.LLM)
	return nil
}

func (c *Config) validate() error {
	var errs []string
	if c.DBPath == "" {
		errs = append(errs, "db path is required")
	}
	if c.Addr == "" {
		errs = append(errs, "addr is required")
	}
	if err := c.Estimate.Validate(); err != nil {
		errs = append(errs, err.Error())
	}
	if c.LLM.TimeoutMs <= 0 {
		errs = append(errs, "llm timeout must be positive")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("config: log level %q: %w", s, err)
	}
	return lvl, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
