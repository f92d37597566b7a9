package utils

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAICoachClient struct {
	client *openai.Client
	model  string
}

func NewOpenAICoachClient(apiKey, model string) *OpenAICoachClient {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAICoachClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *OpenAICoachClient) Generate(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.4,
		MaxTokens:   400,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: no content generated")
	}
	return resp.Choices[0].Message.Content, nil
}
