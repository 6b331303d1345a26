package llm

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/pulsepal/pulsepal/internal/logging"
	"github.com/pulsepal/pulsepal/internal/server/config"
	"github.com/pulsepal/pulsepal/internal/server/models"
)

var errNoCapability = errors.New("no model capability configured")

// Gateway routes each operation through the first configured backend.
// An operation with a configured agent identifier goes to the agent; a
// failure there degrades straight to the local fallback, it does not
// retry on the generative path. Gateway methods never return errors.
type Gateway struct {
	invoker        Invoker
	generator      Generator
	messageAgentID string
	dailyAgentID   string
	timeout        time.Duration
	logger         logging.Logger
}

// NewGateway wires the gateway from configuration: an agent client when
// base URL and key are present, and Gemini or an OpenAI-compatible
// generator depending on which key is set. Gemini wins when both are
// configured.
func NewGateway(cfg *config.Config, logger logging.Logger) *Gateway {
	g := &Gateway{
		messageAgentID: cfg.AgentMessageID,
		dailyAgentID:   cfg.AgentDailyID,
		timeout:        cfg.LLMTimeout,
		logger:         logger,
	}
	if cfg.AgentBaseURL != "" && cfg.AgentAPIKey != "" {
		g.invoker = NewAgentClient(cfg.AgentBaseURL, cfg.AgentAPIKey)
	}
	switch {
	case cfg.GeminiAPIKey != "":
		g.generator = NewGeminiGenerator(cfg.GeminiAPIKey, cfg.GeminiModel)
	case cfg.OpenAIAPIKey != "":
		g.generator = NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	}
	return g
}

// NewGatewayWithBackends builds a gateway around explicit backends,
// mainly for tests.
func NewGatewayWithBackends(invoker Invoker, generator Generator, messageAgentID, dailyAgentID string,
	timeout time.Duration, logger logging.Logger) *Gateway {
	return &Gateway{
		invoker:        invoker,
		generator:      generator,
		messageAgentID: messageAgentID,
		dailyAgentID:   dailyAgentID,
		timeout:        timeout,
		logger:         logger,
	}
}

// call runs one capability attempt: the agent when one is configured for
// this operation, else the generator. mode tags chat-time agent payloads.
func (g *Gateway) call(ctx context.Context, agentID, systemPrompt string, payload any, mode string) ([]byte, string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	if g.invoker != nil && agentID != "" {
		body := payload
		if mode != "" {
			tagged, err := withMode(payload, mode)
			if err != nil {
				return nil, ProviderAgent, err
			}
			body = tagged
		}
		raw, err := g.invoker.Invoke(ctx, agentID, body)
		return raw, ProviderAgent, err
	}

	if g.generator != nil {
		raw, err := g.generator.Generate(ctx, systemPrompt, payload)
		return raw, ProviderGenerative, err
	}

	return nil, ProviderFallback, errNoCapability
}

// Extract turns one inbound message plus context into structured events,
// risk flags and a memory patch.
func (g *Gateway) Extract(ctx context.Context, p *ExtractPayload) (*models.ExtractionResult, string) {
	raw, tag, err := g.call(ctx, g.messageAgentID, extractorSystemPrompt, p, "extract")
	if err == nil {
		var res models.ExtractionResult
		if err = json.Unmarshal(raw, &res); err == nil {
			return &res, tag
		}
	}
	if !errors.Is(err, errNoCapability) {
		g.logger.Warn(ctx, "extraction degraded to fallback", "provider", tag, "error", err)
	}
	return FallbackExtract(p.UserMessage), ProviderFallback
}

// Respond produces the supportive reply for one inbound message.
func (g *Gateway) Respond(ctx context.Context, p *RespondPayload) (*models.ResponseResult, string) {
	raw, tag, err := g.call(ctx, g.messageAgentID, responderSystemPrompt, p, "respond")
	if err == nil {
		var res models.ResponseResult
		if err = json.Unmarshal(raw, &res); err == nil {
			return &res, tag
		}
	}
	if !errors.Is(err, errNoCapability) {
		g.logger.Warn(ctx, "response degraded to fallback", "provider", tag, "error", err)
	}
	return FallbackRespond(p.Extracted), ProviderFallback
}

// GenerateReport builds the daily report. A capability result counts
// only if it carries a non-empty pattern_summary; anything else falls
// back to the deterministic aggregate over events (newest first).
func (g *Gateway) GenerateReport(ctx context.Context, p *ReportPayload, events []models.Event) (*models.ReportDocument, string) {
	raw, tag, err := g.call(ctx, g.dailyAgentID, reportSystemPrompt, p, "")
	if err == nil {
		var res models.ReportDocument
		if err = json.Unmarshal(raw, &res); err == nil && len(res.PatternSummary) > 0 {
			return &res, tag
		}
		if err == nil {
			err = errors.New("report missing pattern_summary")
		}
	}
	if !errors.Is(err, errNoCapability) {
		g.logger.Warn(ctx, "daily report degraded to fallback", "provider", tag, "error", err)
	}
	return FallbackReport(events), ProviderFallback
}
