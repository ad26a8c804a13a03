package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/adrianliechti/nimbus/config"
	"github.com/adrianliechti/nimbus/pkg/auth"
	"github.com/adrianliechti/nimbus/pkg/auth/static"
	"github.com/adrianliechti/nimbus/pkg/provider"
	"github.com/adrianliechti/nimbus/pkg/relay"
	"github.com/adrianliechti/nimbus/server"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	calls atomic.Int32

	text string
	err  error
}

func (f *fakeCompleter) Complete(ctx context.Context, messages []provider.Message, options *provider.CompleteOptions) (*provider.Completion, error) {
	f.calls.Add(1)

	if f.err != nil {
		return nil, f.err
	}

	message := provider.AssistantMessage(f.text)

	return &provider.Completion{
		Message: &message,
	}, nil
}

type fakeSynthesizer struct {
	calls atomic.Int32
	input atomic.Value

	audio []byte
	err   error

	voices []provider.Voice
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, input string, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	f.calls.Add(1)
	f.input.Store(input)

	if f.err != nil {
		return nil, f.err
	}

	return &provider.Synthesis{
		Content:     f.audio,
		ContentType: "audio/mpeg",
	}, nil
}

func (f *fakeSynthesizer) ListVoices(ctx context.Context) ([]provider.Voice, error) {
	if f.err != nil {
		return nil, f.err
	}

	return f.voices, nil
}

func newServer(t *testing.T, c provider.Completer, s *fakeSynthesizer, authorizers ...auth.Provider) *httptest.Server {
	t.Helper()

	svc, err := relay.New(c, s, s)
	require.NoError(t, err)

	srv, err := server.New(&config.Config{
		Authorizers: authorizers,
		Relay:       svc,
	})

	require.NoError(t, err)

	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	return ts
}

func postChat(t *testing.T, url, body string) (int, map[string]any) {
	t.Helper()

	resp, err := http.Post(url+"/chat", "application/json", strings.NewReader(body))
	require.NoError(t, err)

	defer resp.Body.Close()

	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

	return resp.StatusCode, result
}

func TestChat(t *testing.T) {
	c := &fakeCompleter{text: "Hi there"}
	s := &fakeSynthesizer{audio: []byte{1, 2, 3}}

	ts := newServer(t, c, s)

	status, result := postChat(t, ts.URL, `{"prompt":"Hello","voice_id":"abc123"}`)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{"text": "Hi there", "audio": "AQID"}, result)

	assert.EqualValues(t, 1, c.calls.Load())
	assert.EqualValues(t, 1, s.calls.Load())
	assert.Equal(t, "Hi there", s.input.Load())
}

func TestChatMissingFields(t *testing.T) {
	c := &fakeCompleter{text: "Hi there"}
	s := &fakeSynthesizer{audio: []byte{1, 2, 3}}

	ts := newServer(t, c, s)

	for _, body := range []string{
		`{}`,
		`{"prompt":"Hello"}`,
		`{"voice_id":"abc123"}`,
		`{"prompt":"","voice_id":""}`,
	} {
		status, result := postChat(t, ts.URL, body)

		assert.Equal(t, http.StatusBadRequest, status, body)
		assert.Contains(t, result, "error")
	}

	status, _ := postChat(t, ts.URL, `not json`)
	assert.Equal(t, http.StatusBadRequest, status)

	assert.Zero(t, c.calls.Load())
	assert.Zero(t, s.calls.Load())
}

func TestChatCompletionFailure(t *testing.T) {
	c := &fakeCompleter{err: provider.ErrNoCandidates}
	s := &fakeSynthesizer{audio: []byte{1, 2, 3}}

	ts := newServer(t, c, s)

	status, result := postChat(t, ts.URL, `{"prompt":"Hello","voice_id":"abc123"}`)

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Contains(t, result, "error")
	assert.Zero(t, s.calls.Load())
}

func TestChatEmptyCompletion(t *testing.T) {
	c := &fakeCompleter{text: ""}
	s := &fakeSynthesizer{audio: []byte{1, 2, 3}}

	ts := newServer(t, c, s)

	status, result := postChat(t, ts.URL, `{"prompt":"Hello","voice_id":"abc123"}`)

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Contains(t, result, "error")
	assert.Zero(t, s.calls.Load())
}

func TestChatSynthesisFailure(t *testing.T) {
	c := &fakeCompleter{text: "Hi there"}
	s := &fakeSynthesizer{err: &provider.Error{StatusCode: http.StatusUnauthorized, Message: "invalid api key"}}

	ts := newServer(t, c, s)

	for range 2 {
		status, result := postChat(t, ts.URL, `{"prompt":"Hello","voice_id":"abc123"}`)

		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Hi there", result["text"])

		audio, ok := result["audio"]
		assert.True(t, ok)
		assert.Nil(t, audio)
	}
}

func TestVoices(t *testing.T) {
	voice := `{"voice_id":"abc123","name":"Rachel","labels":{"accent":"american"},"preview_url":null}`

	s := &fakeSynthesizer{
		voices: []provider.Voice{json.RawMessage(voice)},
	}

	ts := newServer(t, &fakeCompleter{}, s)

	resp, err := http.Get(ts.URL + "/voices")
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Voices []json.RawMessage `json:"voices"`
	}

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	require.Len(t, result.Voices, 1)

	assert.JSONEq(t, voice, string(result.Voices[0]))
}

func TestVoicesFailure(t *testing.T) {
	s := &fakeSynthesizer{err: errors.New("unavailable")}

	ts := newServer(t, &fakeCompleter{}, s)

	resp, err := http.Get(ts.URL + "/voices")
	require.NoError(t, err)

	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestRootRedirect(t *testing.T) {
	ts := newServer(t, &fakeCompleter{}, &fakeSynthesizer{})

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	resp, err := client.Get(ts.URL + "/")
	require.NoError(t, err)

	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/index.html", resp.Header.Get("Location"))
}

func TestPublicIndex(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>nimbus</h1>"), 0o600))

	svc, err := relay.New(&fakeCompleter{}, &fakeSynthesizer{}, &fakeSynthesizer{})
	require.NoError(t, err)

	srv, err := server.New(&config.Config{
		Public: dir,
		Relay:  svc,
	})

	require.NoError(t, err)

	ts := httptest.NewServer(srv)
	defer ts.Close()

	for _, path := range []string{"/", "/index.html"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err, path)

		data, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Equal(t, "<h1>nimbus</h1>", string(data), path)
	}
}

func TestChatBodyTooLarge(t *testing.T) {
	c := &fakeCompleter{text: "Hi there"}
	s := &fakeSynthesizer{audio: []byte{1, 2, 3}}

	ts := newServer(t, c, s)

	body := `{"prompt":"` + strings.Repeat("a", 1<<20) + `","voice_id":"abc123"}`

	status, _ := postChat(t, ts.URL, body)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Zero(t, c.calls.Load())
}

func TestHealth(t *testing.T) {
	ts := newServer(t, &fakeCompleter{}, &fakeSynthesizer{})

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)

	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(data))
}

func TestAuthorization(t *testing.T) {
	authorizer, err := static.New("secret")
	require.NoError(t, err)

	c := &fakeCompleter{text: "Hi there"}
	s := &fakeSynthesizer{audio: []byte{1, 2, 3}}

	ts := newServer(t, c, s, authorizer)

	status, _ := postChat(t, ts.URL, `{"prompt":"Hello","voice_id":"abc123"}`)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Zero(t, c.calls.Load())

	req, _ := http.NewRequest("POST", ts.URL+"/chat", strings.NewReader(`{"prompt":"Hello","voice_id":"abc123"}`))
	req.Header.Set("Authorization", "Bearer secret")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
