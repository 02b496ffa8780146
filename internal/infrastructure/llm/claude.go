package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/nagampere/MLIT-Summary-Bot/internal/config"
	"github.com/nagampere/MLIT-Summary-Bot/internal/domain"
	"github.com/nagampere/MLIT-Summary-Bot/internal/ports"
)

const anthropicVersion = "2023-06-01"

// ClaudeClient implements ports.Summarizer against the Anthropic messages API.
type ClaudeClient struct {
	endpoint   string
	model      string
	apiKey     string
	httpClient *http.Client
}

var _ ports.Summarizer = (*ClaudeClient)(nil)

// NewClaudeClient builds a client from configuration.
func NewClaudeClient(cfg config.ClaudeConfig) *ClaudeClient {
	return &ClaudeClient{
		endpoint:   cfg.Endpoint,
		model:      cfg.Model,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: callTimeout},
	}
}

// Provider names the backend for logs and the digest footer.
func (c *ClaudeClient) Provider() string {
	return fmt.Sprintf("Claude (%s)", c.model)
}

// SummarizeText posts the prompt as a single user message and concatenates
// the text content blocks of the reply.
func (c *ClaudeClient) SummarizeText(ctx context.Context, text string) (string, error) {
	if c.apiKey == "" || c.endpoint == "" || c.model == "" {
		return "", fmt.Errorf("claude client misconfigured")
	}

	body, err := json.Marshal(map[string]any{
		"model":      c.model,
		"max_tokens": 4000,
		"messages": []map[string]string{
			{"role": "user", "content": text},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal claude payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call claude: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("claude error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var parsed struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode claude response: %w", err)
	}

	var out strings.Builder
	for _, block := range parsed.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}
	result := strings.TrimSpace(out.String())
	if result == "" {
		return "", domain.ErrEmptySummary
	}

	return result, nil
}
