package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays Config fields from environment variables. Unset
// variables leave the current value untouched.
func parseEnv(c *Config) {
	setString := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	setString(&c.Addr, "ADDRESS")
	setString(&c.DatabaseDSN, "DATABASE_DSN")
	setString(&c.InternalAPIKey, "INTERNAL_API_KEY")
	setString(&c.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&c.GeminiModel, "GEMINI_MODEL")
	setString(&c.OpenAIAPIKey, "OPENAI_API_KEY")
	setString(&c.OpenAIModel, "OPENAI_MODEL")
	setString(&c.AgentBaseURL, "AGENT_BASE_URL")
	setString(&c.AgentAPIKey, "AGENT_API_KEY")
	setString(&c.AgentMessageID, "AGENT_ID_MESSAGE")
	setString(&c.AgentDailyID, "AGENT_ID_DAILY")

	if v, ok := os.LookupEnv("LLM_TIMEOUT_SECONDS"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.LLMTimeout = time.Duration(n) * time.Second
		}
	}
}
