package ats

import (
	"context"
	"errors"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAICompleter talks to any OpenAI-compatible chat completions endpoint.
// A base URL lets it target gateways that proxy other model families.
type OpenAICompleter struct {
	client openai.Client
	model  string
}

func NewOpenAICompleter(apiKey, baseURL, model string) *OpenAICompleter {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAICompleter{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

func (c *OpenAICompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(prompt),
		},
		Model:       c.model,
		Temperature: openai.Float(0.2),
	})
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("no choices in completion")
	}
	return completion.Choices[0].Message.Content, nil
}
