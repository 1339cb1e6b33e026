package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/yemubit/zeroclaw/core/protocol"
)

const anthropicMaxTokens = 4096

// Anthropic talks to the Messages API. System messages are lifted into the
// request's system field.
type Anthropic struct {
	*BaseProvider
	client anthropic.Client
}

// NewAnthropic creates an Anthropic provider.
func NewAnthropic(baseURL, apiKey string, opts ...option.RequestOption) *Anthropic {
	var reqOpts []option.RequestOption
	if apiKey != "" {
		reqOpts = append(reqOpts, option.WithAPIKey(apiKey))
	}
	if baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}
	reqOpts = append(reqOpts, opts...)

	return &Anthropic{
		BaseProvider: NewBaseProvider("anthropic", baseURL),
		client:       anthropic.NewClient(reqOpts...),
	}
}

// Chat sends the conversation and returns the concatenated text blocks of
// the reply.
func (p *Anthropic) Chat(ctx context.Context, messages []protocol.Message, model string, temperature float64) (string, error) {
	data := &ChatData{Model: model, Messages: messages, Temperature: temperature}
	system, conversation := data.Split()

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(data.Model),
		Messages:    anthropicMessages(conversation),
		MaxTokens:   anthropicMaxTokens,
		Temperature: anthropic.Float(data.Temperature),
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic api error: %w", err)
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.AsText().Text)
		}
	}
	return b.String(), nil
}

func anthropicMessages(messages []protocol.Message) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(messages))
	for _, m := range messages {
		block := anthropic.NewTextBlock(m.Content)
		if m.Role == protocol.RoleAssistant {
			out = append(out, anthropic.NewAssistantMessage(block))
		} else {
			out = append(out, anthropic.NewUserMessage(block))
		}
	}
	return out
}
