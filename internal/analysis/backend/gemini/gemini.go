// Package gemini implements the analysis capability on the Google Gemini
// API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/bnnadi/confida-scoring/internal/analysis"
)

const defaultModel = "gemini-2.5-flash"

// Capability calls Gemini for answer analysis. Safe for concurrent use.
type Capability struct {
	client    *genai.Client
	modelName string
}

// New creates a Gemini-backed capability.
func New(ctx context.Context, apiKey, model string) (*Capability, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	return &Capability{client: client, modelName: model}, nil
}

// Query sends the rendered prompt to Gemini and returns the concatenated
// text parts of the first candidate set.
func (c *Capability) Query(ctx context.Context, q analysis.Query) (analysis.Response, error) {
	if c == nil || c.client == nil {
		return analysis.Response{}, errors.New("gemini capability is not initialized")
	}

	var cfg *genai.GenerateContentConfig
	if sys := strings.TrimSpace(q.SystemPrompt); sys != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: sys}},
			},
		}
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.modelName, genai.Text(q.Prompt), cfg)
	if err != nil {
		return analysis.Response{}, fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return analysis.Response{}, errors.New("gemini api returned empty response")
	}

	return analysis.Response{Text: output}, nil
}

// Model returns the configured model name.
func (c *Capability) Model() string {
	if c == nil {
		return ""
	}
	return c.modelName
}
