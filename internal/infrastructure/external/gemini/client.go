// Package gemini implements the text-generation API client used by the
// insight layer. All communication with the generativelanguage endpoint
// goes through this package.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/athar-center/siraj-hub/pkg/circuitbreaker"
	"github.com/athar-center/siraj-hub/pkg/logger"
	"github.com/athar-center/siraj-hub/pkg/retry"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// ClientConfig contains configuration for the API client.
type ClientConfig struct {
	// BaseURL is the API base URL.
	BaseURL string

	// APIKey authenticates the request (passed as a query parameter).
	APIKey string

	// Model is the model identifier, e.g. "gemini-3-flash-preview".
	Model string

	// Timeout is the HTTP request timeout.
	Timeout time.Duration

	// Logger for structured logging.
	Logger *logger.Logger
}

// DefaultClientConfig returns sensible defaults.
func DefaultClientConfig(apiKey string) ClientConfig {
	return ClientConfig{
		BaseURL: "https://generativelanguage.googleapis.com",
		APIKey:  apiKey,
		Model:   "gemini-3-flash-preview",
		Timeout: 30 * time.Second,
	}
}

// ErrEmptyCandidates - the endpoint answered without any usable text.
var ErrEmptyCandidates = errors.New("gemini: response contains no candidates")

// statusError carries a non-2xx response for retry classification.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("gemini: status %d: %s", e.code, e.body)
}

// ══════════════════════════════════════════════════════════════════════════════
// CLIENT
// ══════════════════════════════════════════════════════════════════════════════

// Client is the generateContent API client.
type Client struct {
	config     ClientConfig
	httpClient *http.Client
	retrier    *retry.Retrier
	breaker    *circuitbreaker.CircuitBreaker
	log        *logger.Logger
}

// NewClient creates a new API client.
func NewClient(config ClientConfig) *Client {
	log := config.Logger
	if log == nil {
		log = logger.Default().With(logger.Component("gemini"))
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		retrier: retry.New(
			retry.WithMaxAttempts(3),
			retry.WithInitialDelay(500*time.Millisecond),
			retry.WithRetryIf(isRetryable),
		),
		breaker: circuitbreaker.InsightAPIBreaker(func(name string, from, to circuitbreaker.State) {
			log.Warn("circuit breaker state change",
				logger.String("breaker", name),
				logger.String("from", from.String()),
				logger.String("to", to.String()))
		}),
		log: log,
	}
}

// GenerateText sends the prompt and returns the first candidate text.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	var out string

	err := c.breaker.Execute(ctx, func(ctx context.Context) error {
		return c.retrier.Do(ctx, func(ctx context.Context) error {
			text, err := c.generate(ctx, prompt)
			if err != nil {
				return err
			}
			out = text
			return nil
		})
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.config.BaseURL, c.config.Model, c.config.APIKey)

	body, err := json.Marshal(NewGenerateRequest(prompt))
	if err != nil {
		return "", retry.Permanent(fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", retry.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	c.log.Debug("generate content call",
		logger.Int("status", resp.StatusCode),
		logger.Latency(time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		return "", &statusError{code: resp.StatusCode, body: truncate(string(respBody), 200)}
	}

	var decoded GenerateResponseDTO
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return "", retry.Permanent(fmt.Errorf("decode response: %w", err))
	}

	text := decoded.Text()
	if text == "" {
		return "", ErrEmptyCandidates
	}
	return text, nil
}

// isRetryable treats network failures and 5xx/429 answers as transient.
func isRetryable(err error) bool {
	if retry.IsPermanent(err) {
		return false
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.code == http.StatusTooManyRequests || se.code >= 500
	}
	if errors.Is(err, ErrEmptyCandidates) {
		return false
	}
	return true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
