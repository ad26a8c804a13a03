package anthropic_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adrianliechti/nimbus/pkg/provider"
	"github.com/adrianliechti/nimbus/pkg/provider/anthropic"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, content string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))

		var body struct {
			Model     string `json:"model"`
			MaxTokens int    `json:"max_tokens"`
			System    []struct {
				Text string `json:"text"`
			} `json:"system"`
		}

		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "claude-test", body.Model)
		assert.Equal(t, 1024, body.MaxTokens)

		if assert.Len(t, body.System, 1) {
			assert.Equal(t, "Be brief.", body.System[0].Text)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-test",
			"content": ` + content + `,
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 3, "output_tokens": 2}
		}`))
	}))
}

func TestComplete(t *testing.T) {
	server := newServer(t, `[{"type": "text", "text": "Hi there"}]`)
	defer server.Close()

	c, err := anthropic.NewCompleter(server.URL, "claude-test", anthropic.WithToken("test-key"))
	require.NoError(t, err)

	completion, err := c.Complete(context.Background(), []provider.Message{
		provider.SystemMessage("Be brief."),
		provider.UserMessage("Hello"),
	}, nil)

	require.NoError(t, err)

	text, err := completion.Text()
	require.NoError(t, err)

	assert.Equal(t, "Hi there", text)
	assert.Equal(t, "msg_1", completion.ID)
	assert.Equal(t, 3, completion.Usage.InputTokens)
}

func TestCompleteNoText(t *testing.T) {
	server := newServer(t, `[]`)
	defer server.Close()

	c, err := anthropic.NewCompleter(server.URL, "claude-test", anthropic.WithToken("test-key"))
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), []provider.Message{
		provider.SystemMessage("Be brief."),
		provider.UserMessage("Hello"),
	}, nil)

	require.ErrorIs(t, err, provider.ErrNoCandidates)
}
