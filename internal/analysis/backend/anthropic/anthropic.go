// Package anthropic implements the analysis capability on the Anthropic
// Messages API.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/bnnadi/confida-scoring/internal/analysis"
)

const (
	defaultModel = "claude-sonnet-4-5-20250929"
	maxTokens    = 4096
)

// Capability calls the Anthropic Messages API for answer analysis. Safe
// for concurrent use.
type Capability struct {
	client    anthropic.Client
	modelName string
}

// New creates an Anthropic-backed capability.
func New(apiKey, model string) (*Capability, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("anthropic api key is required")
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	return &Capability{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		modelName: model,
	}, nil
}

// Query sends the rendered prompt and returns the first text block of the
// response.
func (c *Capability) Query(ctx context.Context, q analysis.Query) (analysis.Response, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.modelName),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(q.Prompt)),
		},
	}
	if sys := strings.TrimSpace(q.SystemPrompt); sys != "" {
		params.System = []anthropic.TextBlockParam{{Text: sys}}
	}

	message, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return analysis.Response{}, fmt.Errorf("anthropic api: %w", err)
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			return analysis.Response{Text: block.Text}, nil
		}
	}
	return analysis.Response{}, errors.New("no text content in anthropic response")
}

// Model returns the configured model name.
func (c *Capability) Model() string {
	if c == nil {
		return ""
	}
	return c.modelName
}
