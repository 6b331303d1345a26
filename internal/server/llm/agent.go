package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Invoker calls a pre-built agent by identifier and returns its raw JSON
// output.
type Invoker interface {
	Invoke(ctx context.Context, agentID string, payload any) ([]byte, error)
}

// AgentClient invokes agents over HTTP: POST {base}/agents/{id}/invoke
// with a bearer key.
type AgentClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewAgentClient(baseURL, apiKey string) *AgentClient {
	return &AgentClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{},
	}
}

func (c *AgentClient) Invoke(ctx context.Context, agentID string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("agent payload encode error: %w", err)
	}

	url := fmt.Sprintf("%s/agents/%s/invoke", c.baseURL, agentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("agent request error: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("agent call error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("agent call error: unexpected status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("agent response read error: %w", err)
	}
	return raw, nil
}
