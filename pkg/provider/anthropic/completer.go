package anthropic

import (
	"context"
	"fmt"

	"github.com/adrianliechti/nimbus/pkg/provider"

	"github.com/anthropics/anthropic-sdk-go"
)

var _ provider.Completer = (*Completer)(nil)

type Completer struct {
	*Config
	messages anthropic.MessageService
}

func NewCompleter(url, model string, options ...Option) (*Completer, error) {
	cfg := &Config{
		url:   url,
		model: model,
	}

	for _, option := range options {
		option(cfg)
	}

	return &Completer{
		Config:   cfg,
		messages: anthropic.NewMessageService(cfg.Options()...),
	}, nil
}

func (c *Completer) Complete(ctx context.Context, messages []provider.Message, options *provider.CompleteOptions) (*provider.Completion, error) {
	if options == nil {
		options = new(provider.CompleteOptions)
	}

	system, history := provider.SplitSystem(messages)

	req := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: 1024,

		Messages: convertMessages(history),
	}

	if system != "" {
		req.System = []anthropic.TextBlockParam{
			{Text: system},
		}
	}

	if len(options.Stop) > 0 {
		req.StopSequences = options.Stop
	}

	if options.MaxTokens != nil {
		req.MaxTokens = int64(*options.MaxTokens)
	}

	if options.Temperature != nil {
		req.Temperature = anthropic.Float(float64(*options.Temperature))
	}

	message, err := c.messages.New(ctx, req)

	if err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	var text string
	var found bool

	for _, block := range message.Content {
		if block.Type == "text" {
			text = block.Text
			found = true
			break
		}
	}

	if !found {
		return nil, provider.ErrNoCandidates
	}

	return &provider.Completion{
		ID:    message.ID,
		Model: string(message.Model),

		Message: &provider.Message{
			Role: provider.MessageRoleAssistant,

			Content: []provider.Content{
				provider.TextContent(text),
			},
		},

		Usage: &provider.Usage{
			InputTokens:  int(message.Usage.InputTokens),
			OutputTokens: int(message.Usage.OutputTokens),
		},
	}, nil
}

func convertMessages(messages []provider.Message) []anthropic.MessageParam {
	var result []anthropic.MessageParam

	for _, m := range messages {
		block := anthropic.NewTextBlock(m.Text())

		if m.Role == provider.MessageRoleAssistant {
			result = append(result, anthropic.NewAssistantMessage(block))
			continue
		}

		result = append(result, anthropic.NewUserMessage(block))
	}

	return result
}
