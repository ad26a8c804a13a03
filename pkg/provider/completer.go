package provider

import (
	"context"
	"strings"
)

type Completer interface {
	Complete(ctx context.Context, messages []Message, options *CompleteOptions) (*Completion, error)
}

type Message struct {
	Role MessageRole

	Content []Content
}

func SystemMessage(content string) Message {
	return Message{
		Role: MessageRoleSystem,

		Content: []Content{
			{
				Text: content,
			},
		},
	}
}

func UserMessage(content string) Message {
	return Message{
		Role: MessageRoleUser,

		Content: []Content{
			{
				Text: content,
			},
		},
	}
}

func AssistantMessage(content string) Message {
	return Message{
		Role: MessageRoleAssistant,

		Content: []Content{
			{
				Text: content,
			},
		},
	}
}

func (m Message) Text() string {
	var parts []string

	for _, c := range m.Content {
		if c.Text != "" {
			parts = append(parts, c.Text)
		}
	}

	return strings.Join(parts, "\n\n")
}

func TextContent(val string) Content {
	return Content{
		Text: val,
	}
}

type Content struct {
	Text string
}

type MessageRole string

const (
	MessageRoleSystem    MessageRole = "system"
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

type CompleteOptions struct {
	Stop []string

	MaxTokens   *int
	Temperature *float32
}

type Completion struct {
	ID    string
	Model string

	Message *Message

	Usage *Usage
}

// Text returns the text of the first content part.
func (c *Completion) Text() (string, error) {
	if c == nil || c.Message == nil || len(c.Message.Content) == 0 {
		return "", ErrMalformedCompletion
	}

	return c.Message.Content[0].Text, nil
}

// SplitSystem separates system messages from the conversation.
func SplitSystem(messages []Message) (string, []Message) {
	var system []string
	var result []Message

	for _, m := range messages {
		if m.Role == MessageRoleSystem {
			if text := m.Text(); text != "" {
				system = append(system, text)
			}

			continue
		}

		result = append(result, m)
	}

	return strings.Join(system, "\n\n"), result
}
