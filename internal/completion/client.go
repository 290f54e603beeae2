// Package completion is the client for the text-completion service used
// to turn diary data into free-text analysis. The service is an opaque
// collaborator: one prompt in, one answer out.
package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/tphakala/healthdiary-go/internal/errors"
	"github.com/tphakala/healthdiary-go/internal/httpclient"
	"github.com/tphakala/healthdiary-go/internal/logging"
	"github.com/tphakala/healthdiary-go/internal/observability/metrics"
)

const (
	// DefaultEndpoint is the messages endpoint of the completion service.
	DefaultEndpoint = "https://api.anthropic.com/v1/messages"

	// DefaultModel is used when no model is configured.
	DefaultModel = "claude-sonnet-4-20250514"

	apiVersion = "2023-06-01"
)

// Client issues completion requests. No retry; a failure surfaces to the
// caller unconditionally. Safe for concurrent use.
type Client struct {
	apiKey   string
	model    string
	endpoint string
	http     *httpclient.Client
	metrics  *metrics.CompletionMetrics
	log      *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithModel overrides the default model identifier.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithEndpoint overrides the service endpoint. Used in tests.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithHTTPClient sets the transport client.
func WithHTTPClient(hc *httpclient.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithMetrics enables request metrics collection.
func WithMetrics(m *metrics.CompletionMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// New creates a completion client for the given API key.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:   apiKey,
		model:    DefaultModel,
		endpoint: DefaultEndpoint,
		log:      logging.ForService("completion"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		// Completion runs are slow; allow well beyond the transport default.
		c.http = httpclient.New(&httpclient.Config{DefaultTimeout: 120 * time.Second})
	}
	return c
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type messageResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends one prompt as a single user-role message and returns the
// text of the first content block of the answer.
func (c *Client) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	payload := messageRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", errors.New(fmt.Errorf("encoding completion request: %w", err)).
			Component("completion").
			Category(errors.CategoryJSONParsing).
			Build()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", errors.New(fmt.Errorf("creating completion request: %w", err)).
			Component("completion").
			Category(errors.CategoryGeneric).
			Build()
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	start := time.Now()
	resp, err := c.http.Do(ctx, req)
	if err != nil {
		c.recordRequest("transport_error", start)
		return "", errors.New(fmt.Errorf("completion service request: %w", err)).
			Component("completion").
			Category(errors.CategoryNetwork).
			Build()
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.recordRequest("transport_error", start)
		return "", errors.New(fmt.Errorf("reading completion response: %w", err)).
			Component("completion").
			Category(errors.CategoryNetwork).
			Build()
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.recordRequest("error", start)
		// Surface the service's own error message when it sent one.
		var errResp errorResponse
		msg := "completion service request failed"
		if unmarshalErr := json.Unmarshal(data, &errResp); unmarshalErr == nil && errResp.Error.Message != "" {
			msg = errResp.Error.Message
		}
		return "", errors.Newf("%s", msg).
			Component("completion").
			Category(errors.CategoryCompletion).
			Context("status_code", resp.StatusCode).
			Build()
	}

	var msgResp messageResponse
	if err := json.Unmarshal(data, &msgResp); err != nil {
		c.recordRequest("error", start)
		return "", errors.New(fmt.Errorf("decoding completion response: %w", err)).
			Component("completion").
			Category(errors.CategoryJSONParsing).
			Build()
	}

	if len(msgResp.Content) == 0 || msgResp.Content[0].Text == "" {
		c.recordRequest("error", start)
		return "", errors.Newf("completion response contained no text content").
			Component("completion").
			Category(errors.CategoryCompletion).
			Build()
	}

	c.recordRequest("success", start)

	if c.log != nil {
		c.log.Debug("completion request finished",
			"model", c.model,
			"duration_ms", time.Since(start).Milliseconds(),
			"answer_bytes", len(msgResp.Content[0].Text))
	}

	return msgResp.Content[0].Text, nil
}

func (c *Client) recordRequest(outcome string, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.RecordRequest(outcome, time.Since(start))
}
