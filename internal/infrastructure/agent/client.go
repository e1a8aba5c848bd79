package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"studio-ops.backend/internal/domain/entities"
	domainerrors "studio-ops.backend/internal/domain/errors"
)

// Client talks to the text-to-SQL agent
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Configured reports whether both the endpoint and the key are set.
func (c *Client) Configured() bool {
	return c.baseURL != "" && c.apiKey != ""
}

// GenerateQuery posts {"query": question} to /query and expects
// {"status":"success","query":"...","message":"..."}.
func (c *Client) GenerateQuery(ctx context.Context, question string) (*entities.GeneratedQuery, error) {
	if !c.Configured() {
		return nil, domainerrors.ErrNotConfigured
	}

	body, err := json.Marshal(map[string]string{"query": question})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/query", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("agent request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("API request failed: %d %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("agent returned invalid JSON")
	}

	parsed := gjson.ParseBytes(raw)
	if parsed.Get("status").String() != "success" {
		msg := parsed.Get("message").String()
		if msg == "" {
			msg = "Unknown error"
		}
		return nil, fmt.Errorf("API response error: %s", msg)
	}

	return &entities.GeneratedQuery{
		Question: question,
		Query:    parsed.Get("query").String(),
		Message:  parsed.Get("message").String(),
	}, nil
}
