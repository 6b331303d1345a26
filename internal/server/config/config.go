// Package config handles configuration for the server component,
// including defaults, environment variables, and command-line flags.
package config

import "time"

// Config holds runtime settings for the PulsePal server.
//
// Fields:
//   - Addr: bind address for the HTTP endpoint.
//   - DatabaseDSN: either a postgres:// DSN (pgx) or a SQLite path/URI.
//   - InternalAPIKey: shared secret guarding the /internal tool surface.
//     When empty, that surface answers 503 (not configured).
//   - GeminiAPIKey / GeminiModel: structured-generation capability via the
//     Gemini REST API.
//   - OpenAIAPIKey / OpenAIModel: structured-generation capability via an
//     OpenAI-compatible API; used when no Gemini key is present.
//   - AgentBaseURL / AgentAPIKey: agent-invocation capability endpoint.
//   - AgentMessageID / AgentDailyID: agent identifiers for the chat-time
//     (extract/respond) and daily-report operations.
//   - LLMTimeout: upper bound for any single external model call.
type Config struct {
	Addr           string
	DatabaseDSN    string
	InternalAPIKey string
	GeminiAPIKey   string
	GeminiModel    string
	OpenAIAPIKey   string
	OpenAIModel    string
	AgentBaseURL   string
	AgentAPIKey    string
	AgentMessageID string
	AgentDailyID   string
	LLMTimeout     time.Duration
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.DatabaseDSN = "file:pulsepal.db"
	c.GeminiModel = "gemini-1.5-flash"
	c.OpenAIModel = "gpt-4o-mini"
	c.LLMTimeout = 8 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
