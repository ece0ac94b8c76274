// Package config holds process-wide settings for the scamwatch service.
// Everything is configurable via environment variables; the defaults run a
// local model with no external services attached.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds global settings. Built once at startup and read-only after.
type Config struct {
	// === Core ===
	Port string // HTTP listen port (env: SCAMWATCH_PORT)

	// === Classifier model ===
	ModelPath       string // Local ONNX model directory (env: SCAMWATCH_MODEL_PATH)
	ModelName       string // HuggingFace model to download when the path is missing (env: SCAMWATCH_MODEL_NAME)
	OnnxLibraryPath string // Directory containing libonnxruntime; empty = pure Go backend (env: SCAMWATCH_ONNX_LIB)

	// === Phrase registries ===
	PhraseFile string // Optional YAML file merged onto the built-in phrase lists (env: SCAMWATCH_PHRASE_FILE)

	// === Reconciliation thresholds ===
	// A SCAM verdict below DowngradeProbability on a message shorter than
	// DowngradeTokenLimit tokens is overridden to SAFE.
	DowngradeProbability float64 // env: SCAMWATCH_DOWNGRADE_PROBABILITY (default 0.65)
	DowngradeTokenLimit  int     // env: SCAMWATCH_DOWNGRADE_TOKENS (default 5)

	// === Optional verdict cache ===
	RedisAddr     string        // empty disables caching (env: SCAMWATCH_REDIS_ADDR)
	RedisPassword string        // env: SCAMWATCH_REDIS_PASSWORD
	RedisDB       int           // env: SCAMWATCH_REDIS_DB
	CacheTTL      time.Duration // env: SCAMWATCH_CACHE_TTL_SECONDS (default 3600)

	// === Optional audit sink ===
	PostgresDSN   string // empty disables auditing (env: SCAMWATCH_POSTGRES_DSN)
	AuditInflight int    // max concurrent audit writes (env: SCAMWATCH_AUDIT_INFLIGHT, default 100)
}

// NewDefaultConfig creates a Config from the environment with sensible
// defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Port: GetEnv("SCAMWATCH_PORT", "5000"),

		ModelPath:       GetEnv("SCAMWATCH_MODEL_PATH", "./models/scam-classifier"),
		ModelName:       GetEnv("SCAMWATCH_MODEL_NAME", ""),
		OnnxLibraryPath: GetEnv("SCAMWATCH_ONNX_LIB", ""),

		PhraseFile: GetEnv("SCAMWATCH_PHRASE_FILE", ""),

		DowngradeProbability: GetEnvFloat("SCAMWATCH_DOWNGRADE_PROBABILITY", 0.65),
		DowngradeTokenLimit:  clampInt(GetEnvInt("SCAMWATCH_DOWNGRADE_TOKENS", 5), 1, 100),

		RedisAddr:     GetEnv("SCAMWATCH_REDIS_ADDR", ""),
		RedisPassword: GetEnv("SCAMWATCH_REDIS_PASSWORD", ""),
		RedisDB:       GetEnvInt("SCAMWATCH_REDIS_DB", 0),
		CacheTTL:      time.Duration(GetEnvInt("SCAMWATCH_CACHE_TTL_SECONDS", 3600)) * time.Second,

		PostgresDSN:   GetEnv("SCAMWATCH_POSTGRES_DSN", ""),
		AuditInflight: clampInt(GetEnvInt("SCAMWATCH_AUDIT_INFLIGHT", 100), 1, 10000),
	}
}

// Validate checks that the configuration can produce a serving engine.
// A missing model source is fatal: without it every request would error.
func (c *Config) Validate() error {
	var problems []string

	if c.ModelPath == "" && c.ModelName == "" {
		problems = append(problems, "SCAMWATCH_MODEL_PATH or SCAMWATCH_MODEL_NAME must be set")
	}
	if c.DowngradeProbability < 0 || c.DowngradeProbability > 1 {
		problems = append(problems, fmt.Sprintf("SCAMWATCH_DOWNGRADE_PROBABILITY %v outside [0,1]", c.DowngradeProbability))
	}
	if c.PhraseFile != "" {
		if _, err := os.Stat(c.PhraseFile); err != nil {
			problems = append(problems, fmt.Sprintf("SCAMWATCH_PHRASE_FILE: %v", err))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// MustValidate calls Validate and fatally exits on failure. Call at startup
// before serving begins.
func (c *Config) MustValidate() {
	if err := c.Validate(); err != nil {
		log.Fatalf("[STARTUP] FATAL: %v", err)
	}
	log.Println("[STARTUP] Configuration validated")
}

func clampInt(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Helper functions for environment variable parsing.

// GetEnv returns the value of an environment variable or a default value.
func GetEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// GetEnvInt returns the integer value of an environment variable or a default value.
func GetEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return defaultValue
}

// GetEnvFloat returns the float64 value of an environment variable or a default value.
func GetEnvFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return defaultValue
}
