package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adrianliechti/nimbus/pkg/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/chat", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		assert.Equal(t, "Hello", body["prompt"])
		assert.Equal(t, "abc123", body["voice_id"])

		w.Write([]byte(`{"text":"Hi there","audio":"AQID"}`))
	}))

	defer server.Close()

	c := client.New(server.URL, client.WithToken("secret"))

	result, err := c.Chat.New(context.Background(), client.ChatRequest{
		Prompt:  "Hello",
		VoiceID: "abc123",
	})

	require.NoError(t, err)

	assert.Equal(t, "Hi there", result.Text)
	assert.Equal(t, []byte{1, 2, 3}, result.Audio)
}

func TestChatWithoutAudio(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text":"Hi there","audio":null}`))
	}))

	defer server.Close()

	c := client.New(server.URL)

	result, err := c.Chat.New(context.Background(), client.ChatRequest{Prompt: "Hello", VoiceID: "abc123"})
	require.NoError(t, err)

	assert.Nil(t, result.Audio)
}

func TestChatError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"prompt and voice_id are required"}`))
	}))

	defer server.Close()

	c := client.New(server.URL)

	_, err := c.Chat.New(context.Background(), client.ChatRequest{})

	var clientErr *client.Error
	require.ErrorAs(t, err, &clientErr)

	assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
	assert.Equal(t, "prompt and voice_id are required", clientErr.Message)
}

func TestVoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/voices", r.URL.Path)

		w.Write([]byte(`{"voices":[{"voice_id":"abc123","name":"Rachel","category":"premade","labels":{"accent":"american"}}]}`))
	}))

	defer server.Close()

	c := client.New(server.URL)

	voices, err := c.Voices.List(context.Background())
	require.NoError(t, err)
	require.Len(t, voices, 1)

	assert.Equal(t, "abc123", voices[0].ID)
	assert.Equal(t, "Rachel", voices[0].Name)
	assert.Equal(t, "american", voices[0].Labels["accent"])
	assert.Contains(t, string(voices[0].Raw), "premade")
}
