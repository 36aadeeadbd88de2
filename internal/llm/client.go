package llm

import (
	"context"
	"fmt"
	"strings"

	"footbuddy/internal/config"
	"footbuddy/pkg/logger"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Invoker is the narrow surface the pipeline depends on: fill a prompt,
// get text back. Stateless per call.
type Invoker interface {
	Invoke(ctx context.Context, model config.ModelConfig, prompt string) (string, error)
}

// Client invokes Gemini models through the Google GenAI API.
type Client struct {
	client *genai.Client
}

func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Client{client: client}, nil
}

// Invoke sends one prompt to the given model and returns the response
// text. An empty response is an error, never silently substituted.
func (c *Client) Invoke(ctx context.Context, model config.ModelConfig, prompt string) (string, error) {
	logger.Debug("Querying LLM",
		zap.String("model", model.Name),
		zap.Int("prompt_len", len(prompt)))

	result, err := c.client.Models.GenerateContent(ctx,
		model.Name,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature: genai.Ptr(model.Temperature),
		},
	)
	if err != nil {
		return "", fmt.Errorf("GenAI call to %s failed: %w", model.Name, err)
	}

	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("GenAI call to %s returned no content", model.Name)
	}

	return text, nil
}
