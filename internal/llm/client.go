package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/careercraft/careercraft/config"
	"github.com/careercraft/careercraft/internal/interfaces"

	"google.golang.org/genai"
)

const (
	DefaultTimeout    = 60 * time.Second
	DefaultMaxRetries = 3
)

// Client wraps the generative AI SDK behind the TextGenerator and Embedder
// interfaces. Calls are bounded by a per-call timeout and retried with
// linear backoff; the SDK blocks otherwise.
type Client struct {
	client         *genai.Client
	model          string
	embeddingModel string
	timeout        time.Duration
	maxRetries     int
	logger         interfaces.Logger
}

// NewClient creates the generative AI client. The API key must already be
// validated; a bad key still fails here rather than on the first page call.
func NewClient(ctx context.Context, apiKey string, cfg *config.GeneratorConfig, logger interfaces.Logger) (*Client, error) {
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create generative AI client: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}

	return &Client{
		client:         genaiClient,
		model:          cfg.Model,
		embeddingModel: cfg.EmbeddingModel,
		timeout:        timeout,
		maxRetries:     maxRetries,
		logger:         logger,
	}, nil
}

// Generate produces a completion for the prompt.
func (c *Client) Generate(ctx context.Context, prompt string, opts interfaces.GenerateOptions) (string, error) {
	model := opts.Model
	if model == "" {
		model = c.model
	}

	var genCfg *genai.GenerateContentConfig
	if opts.Temperature != nil {
		genCfg = &genai.GenerateContentConfig{Temperature: opts.Temperature}
	}

	text, err := retry(c.maxRetries, func() (string, error) {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		resp, err := c.client.Models.GenerateContent(callCtx, model, genai.Text(prompt), genCfg)
		if err != nil {
			return "", err
		}
		out := resp.Text()
		if strings.TrimSpace(out) == "" {
			return "", fmt.Errorf("empty response from model %s", model)
		}
		return out, nil
	})
	if err != nil {
		c.logger.Error("Text generation failed", "model", model, "error", err)
		return "", fmt.Errorf("text generation failed: %w", err)
	}
	return text, nil
}

// Embed maps text to a dense vector using the configured embedding model.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	if c.embeddingModel == "" {
		return nil, fmt.Errorf("no embedding model configured")
	}

	values, err := retry(c.maxRetries, func() ([]float32, error) {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		resp, err := c.client.Models.EmbedContent(callCtx, c.embeddingModel,
			genai.Text(text), nil)
		if err != nil {
			return nil, err
		}
		if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
			return nil, fmt.Errorf("empty embedding from model %s", c.embeddingModel)
		}
		return resp.Embeddings[0].Values, nil
	})
	if err != nil {
		c.logger.Error("Embedding failed", "model", c.embeddingModel, "error", err)
		return nil, fmt.Errorf("embedding failed: %w", err)
	}
	return values, nil
}

// retry retries a function up to `attempts` times with increasing backoff.
func retry[T any](attempts int, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for i := 0; i < attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		wait := time.Duration(500*(i+1)) * time.Millisecond
		time.Sleep(wait)
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}
