package ats

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type GeminiCompleter struct {
	client *genai.Client
	model  string
}

func NewGeminiCompleter(ctx context.Context, apiKey, model string) (*GeminiCompleter, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiCompleter{client: client, model: model}, nil
}

func (c *GeminiCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr(float32(0.2)),
		ResponseMIMEType:  "application/json",
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}
	return resp.Text(), nil
}
