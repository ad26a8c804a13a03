package otel

import (
	"context"
	"errors"
	"testing"

	"github.com/adrianliechti/nimbus/pkg/provider"

	"github.com/stretchr/testify/require"
)

type staticCompleter struct {
	err error
}

func (c *staticCompleter) Complete(ctx context.Context, messages []provider.Message, options *provider.CompleteOptions) (*provider.Completion, error) {
	if c.err != nil {
		return nil, c.err
	}

	return &provider.Completion{
		Model: "gemini-2.5-flash-001",

		Message: &provider.Message{
			Role:    provider.MessageRoleAssistant,
			Content: []provider.Content{provider.TextContent("Hi there")},
		},

		Usage: &provider.Usage{
			InputTokens:  3,
			OutputTokens: 2,
		},
	}, nil
}

type staticSynthesizer struct{}

func (s *staticSynthesizer) Synthesize(ctx context.Context, content string, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	return &provider.Synthesis{Content: []byte(content)}, nil
}

func TestCompleterPassesThrough(t *testing.T) {
	c := NewCompleter("gcp.vertex_ai", "gemini-2.5-flash", &staticCompleter{})

	result, err := c.Complete(context.Background(), []provider.Message{provider.UserMessage("Hello")}, nil)
	require.NoError(t, err)

	text, err := result.Text()
	require.NoError(t, err)
	require.Equal(t, "Hi there", text)
}

func TestCompleterPropagatesError(t *testing.T) {
	failure := errors.New("quota exceeded")
	c := NewCompleter("gcp.vertex_ai", "gemini-2.5-flash", &staticCompleter{err: failure})

	_, err := c.Complete(context.Background(), []provider.Message{provider.UserMessage("Hello")}, nil)
	require.ErrorIs(t, err, failure)
}

func TestSynthesizerWithoutCatalog(t *testing.T) {
	s := NewSynthesizer("elevenlabs", "", &staticSynthesizer{}, nil)

	synthesis, err := s.Synthesize(context.Background(), "abc", &provider.SynthesizeOptions{Voice: "v"})
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), synthesis.Content)

	voices, err := s.ListVoices(context.Background())
	require.NoError(t, err)
	require.Empty(t, voices)
}
