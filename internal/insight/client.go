package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"biaslens/internal/bias"
	"biaslens/internal/config"
)

// ErrGenerationFailed wraps any failure of the external insight call. It is
// non-fatal: the gender/age summary has already been returned by the time
// the insight request runs.
var ErrGenerationFailed = errors.New("insight generation failed")

// Generator produces a natural-language insight for a computed summary.
// Implementations are treated as opaque remote functions.
type Generator interface {
	Generate(ctx context.Context, payload bias.InsightPayload) (string, error)
}

// Client is the HTTP Generator implementation. It POSTs the summary payload
// to the configured endpoint and expects {"insight": "..."} back.
type Client struct {
	endpoint string
	apiKey   string
	client   *http.Client
	logger   *slog.Logger
}

var _ Generator = (*Client)(nil)

// NewClient creates an insight client from configuration.
func NewClient(cfg config.InsightConfig, logger *slog.Logger) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: cfg.Timeout},
		logger:   logger.With(slog.String("component", "insight_client")),
	}
}

type insightResponse struct {
	Insight string `json:"insight"`
}

// Generate calls the external generator once; no retries. The payload is the
// summary subset forwarded verbatim.
func (c *Client) Generate(ctx context.Context, payload bias.InsightPayload) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: encode payload: %v", ErrGenerationFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrGenerationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("%w: unexpected status %d", ErrGenerationFailed, resp.StatusCode)
	}

	var decoded insightResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrGenerationFailed, err)
	}
	if decoded.Insight == "" {
		return "", fmt.Errorf("%w: empty insight in response", ErrGenerationFailed)
	}

	c.logger.InfoContext(ctx, "insight generated",
		slog.String("bias_label", payload.BiasLabel),
		slog.String("duration", time.Since(start).String()))

	return decoded.Insight, nil
}
