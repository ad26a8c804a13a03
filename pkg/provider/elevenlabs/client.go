package elevenlabs

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/adrianliechti/nimbus/pkg/provider"
)

var (
	_ provider.Synthesizer = (*Client)(nil)
	_ provider.VoiceLister = (*Client)(nil)
)

const (
	DefaultStability       = 0.5
	DefaultSimilarityBoost = 0.75
)

type Client struct {
	*Config
}

func New(url, model string, options ...Option) (*Client, error) {
	if url == "" {
		url = "https://api.elevenlabs.io"
	}

	cfg := &Config{
		url:   strings.TrimRight(url, "/"),
		model: model,

		stability:       DefaultStability,
		similarityBoost: DefaultSimilarityBoost,

		client: http.DefaultClient,
	}

	for _, option := range options {
		option(cfg)
	}

	if cfg.token == "" {
		return nil, errors.New("missing api key")
	}

	return &Client{
		Config: cfg,
	}, nil
}

func (c *Client) newRequest(r *http.Request) *http.Request {
	r.Header.Set("xi-api-key", c.token)
	return r
}

func jsonReader(v any) io.Reader {
	b := new(bytes.Buffer)

	enc := json.NewEncoder(b)
	enc.SetEscapeHTML(false)

	enc.Encode(v)
	return b
}

func convertError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var body struct {
		Detail json.RawMessage `json:"detail"`
	}

	message := strings.TrimSpace(string(data))

	if err := json.Unmarshal(data, &body); err == nil && len(body.Detail) > 0 {
		var detail struct {
			Message string `json:"message"`
		}

		var text string

		if err := json.Unmarshal(body.Detail, &detail); err == nil && detail.Message != "" {
			message = detail.Message
		} else if err := json.Unmarshal(body.Detail, &text); err == nil && text != "" {
			message = text
		}
	}

	return &provider.Error{
		StatusCode: resp.StatusCode,
		Message:    message,
	}
}
