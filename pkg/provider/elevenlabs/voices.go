package elevenlabs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/adrianliechti/nimbus/pkg/provider"
)

func (c *Client) ListVoices(ctx context.Context) ([]provider.Voice, error) {
	u, err := url.JoinPath(c.url, "/v1/voices")

	if err != nil {
		return nil, err
	}

	req, _ := http.NewRequestWithContext(ctx, "GET", u, nil)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(c.newRequest(req))

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, convertError(resp)
	}

	var result struct {
		Voices []provider.Voice `json:"voices"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	if result.Voices == nil {
		result.Voices = []provider.Voice{}
	}

	return result.Voices, nil
}
