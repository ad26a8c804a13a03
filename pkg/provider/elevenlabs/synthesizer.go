package elevenlabs

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/adrianliechti/nimbus/pkg/provider"

	"github.com/google/uuid"
)

func (c *Client) Synthesize(ctx context.Context, content string, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	if options == nil {
		options = new(provider.SynthesizeOptions)
	}

	if options.Voice == "" {
		return nil, errors.New("missing voice")
	}

	type voiceSettings struct {
		Stability       float32 `json:"stability"`
		SimilarityBoost float32 `json:"similarity_boost"`
	}

	type bodyType struct {
		Text    string `json:"text"`
		ModelID string `json:"model_id,omitempty"`

		VoiceSettings voiceSettings `json:"voice_settings"`
	}

	body := bodyType{
		Text:    content,
		ModelID: c.model,

		VoiceSettings: voiceSettings{
			Stability:       c.stability,
			SimilarityBoost: c.similarityBoost,
		},
	}

	u, err := url.JoinPath(c.url, "/v1/text-to-speech", options.Voice)

	if err != nil {
		return nil, err
	}

	if options.Format != "" {
		u += "?output_format=" + url.QueryEscape(options.Format)
	}

	req, _ := http.NewRequestWithContext(ctx, "POST", u, jsonReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := c.client.Do(c.newRequest(req))

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, convertError(resp)
	}

	data, err := io.ReadAll(resp.Body)

	if err != nil {
		return nil, err
	}

	contentType := resp.Header.Get("Content-Type")

	if contentType == "" {
		contentType = "audio/mpeg"
	}

	return &provider.Synthesis{
		ID:    uuid.NewString(),
		Model: c.model,

		Content:     data,
		ContentType: contentType,
	}, nil
}
