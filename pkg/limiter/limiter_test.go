package limiter

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/adrianliechti/nimbus/pkg/provider"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type countingCompleter struct {
	calls atomic.Int64
}

func (c *countingCompleter) Complete(ctx context.Context, messages []provider.Message, options *provider.CompleteOptions) (*provider.Completion, error) {
	c.calls.Add(1)

	return &provider.Completion{
		Message: &provider.Message{
			Role:    provider.MessageRoleAssistant,
			Content: []provider.Content{provider.TextContent("ok")},
		},
	}, nil
}

func TestNew(t *testing.T) {
	require.Nil(t, New(nil))

	zero := 0
	require.Nil(t, New(&zero))

	limit := 5
	l := New(&limit)
	require.NotNil(t, l)
	require.Equal(t, 5, l.Burst())
}

func TestCompleterWithoutLimit(t *testing.T) {
	p := &countingCompleter{}
	c := NewCompleter(nil, p)

	_, err := c.Complete(context.Background(), []provider.Message{provider.UserMessage("hi")}, nil)
	require.NoError(t, err)
	require.Equal(t, int64(1), p.calls.Load())
}

func TestCompleterHonorsContext(t *testing.T) {
	p := &countingCompleter{}
	l := rate.NewLimiter(rate.Every(time.Hour), 1)
	c := NewCompleter(l, p)

	_, err := c.Complete(context.Background(), []provider.Message{provider.UserMessage("hi")}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = c.Complete(ctx, []provider.Message{provider.UserMessage("hi")}, nil)
	require.Error(t, err)
	require.Equal(t, int64(1), p.calls.Load())
}
