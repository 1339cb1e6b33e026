package providers

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/yemubit/zeroclaw/core/protocol"
)

var errNoChoices = errors.New("no choices returned")

// OpenAI talks to the Chat Completions API or any compatible endpoint.
type OpenAI struct {
	*BaseProvider
	client openai.Client
}

// NewOpenAI creates an OpenAI-compatible provider. Empty apiKey and baseURL
// fall back to the SDK's environment defaults.
func NewOpenAI(name, baseURL, apiKey string, opts ...option.RequestOption) *OpenAI {
	var reqOpts []option.RequestOption
	if apiKey != "" {
		reqOpts = append(reqOpts, option.WithAPIKey(apiKey))
	}
	if baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}
	reqOpts = append(reqOpts, opts...)

	return &OpenAI{
		BaseProvider: NewBaseProvider(name, baseURL),
		client:       openai.NewClient(reqOpts...),
	}
}

// Chat sends the conversation and returns the first choice's content.
func (p *OpenAI) Chat(ctx context.Context, messages []protocol.Message, model string, temperature float64) (string, error) {
	data := &ChatData{Model: model, Messages: messages, Temperature: temperature}

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       data.Model,
		Messages:    openAIMessages(data.Messages),
		Temperature: openai.Float(data.Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("%s api error: %w", p.Name(), err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: %w", p.Name(), errNoChoices)
	}

	return resp.Choices[0].Message.Content, nil
}

func openAIMessages(messages []protocol.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case protocol.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case protocol.RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}
