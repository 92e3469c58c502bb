package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// ollamaBackend talks to a local Ollama instance over its HTTP API.
type ollamaBackend struct {
	endpoint string
	http     *http.Client
}

// NewOllamaClient creates an LLMClient that talks to a local Ollama instance.
func NewOllamaClient(cfg LLMConfig, observer Observer) LLMClient {
	return newRetryingClient(cfg, &ollamaBackend{
		endpoint: cfg.Endpoint,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
	}, observer)
}

// ollamaRequest is the JSON body sent to POST /api/generate.
type ollamaRequest struct {
	Model   string        `json:"model"`
	System  string        `json:"system,omitempty"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Format  string        `json:"format,omitempty"`
	Options ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

// ollamaResponse is the JSON body returned by POST /api/generate (non-streaming).
type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
}

func (b *ollamaBackend) complete(ctx context.Context, model string, c completion) (string, string, error) {
	body := ollamaRequest{
		Model:  model,
		System: c.system,
		Prompt: c.user,
		Stream: false,
		Options: ollamaOptions{
			Temperature: c.temperature,
			NumPredict:  c.maxTokens,
		},
	}
	if c.schema != nil {
		body.Format = "json"
	}

	data, err := json.Marshal(body)
	if err != nil {
		return "", "", fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint+"/api/generate", bytes.NewReader(data))
	if err != nil {
		return "", "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := b.http.Do(httpReq)
	if err != nil {
		return "", "", err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", "", fmt.Errorf("reading response: %w", err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return "", "", &StatusError{Provider: "ollama", StatusCode: httpResp.StatusCode, Body: string(respBody)}
	}

	var resp ollamaResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", "", fmt.Errorf("decoding response: %w", err)
	}
	return resp.Response, resp.Model, nil
}

func (b *ollamaBackend) ping(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.endpoint+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := b.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
