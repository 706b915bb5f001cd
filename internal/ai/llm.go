package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// LLMClient talks to an OpenAI-compatible chat completion endpoint. It
// implements both Generator and Tagger.
type LLMClient struct {
	client *openai.Client
	model  string
}

// NewLLMClient builds a client. baseURL may be empty to use the provider's
// default endpoint.
func NewLLMClient(baseURL, apiKey, model string) *LLMClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &LLMClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (c *LLMClient) complete(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("provider returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// Generate builds the three-section prompt, calls the provider, and splits
// the response. An empty response is an error so the caller retries or falls
// back.
func (c *LLMClient) Generate(ctx context.Context, tags []string, ideaText string) (Narrative, error) {
	out, err := c.complete(ctx, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: buildPrompt(tags, ideaText)},
	})
	if err != nil {
		return Narrative{}, err
	}
	if strings.TrimSpace(out) == "" {
		return Narrative{}, fmt.Errorf("provider returned empty text")
	}
	return splitSections(out), nil
}

// ExtractTags asks the vision model to label the image. Any failure, wrong
// shape included, yields nil tags; tagging is strictly best effort.
func (c *LLMClient) ExtractTags(ctx context.Context, imageURL string) []string {
	if imageURL == "" {
		return nil
	}
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: "List up to 8 short labels describing the visual elements of this artwork, comma separated, no other text.",
					},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: imageURL},
					},
				},
			},
		},
	})
	if err != nil || len(resp.Choices) == 0 {
		log.Printf("[AI] tag extraction failed: %v", err)
		return nil
	}

	var tags []string
	for _, part := range strings.Split(resp.Choices[0].Message.Content, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
