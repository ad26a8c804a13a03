package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/adrianliechti/nimbus/server/api"
)

type VoiceService struct {
	Options []RequestOption
}

func NewVoiceService(opts ...RequestOption) VoiceService {
	return VoiceService{
		Options: opts,
	}
}

// Voice holds the commonly used fields of a catalog entry; Raw keeps the full entry.
type Voice struct {
	ID   string `json:"voice_id"`
	Name string `json:"name"`

	Category string            `json:"category,omitempty"`
	Labels   map[string]string `json:"labels,omitempty"`

	Raw json.RawMessage `json:"-"`
}

func (r *VoiceService) List(ctx context.Context, opts ...RequestOption) ([]Voice, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	req, _ := http.NewRequestWithContext(ctx, "GET", strings.TrimRight(c.URL, "/")+"/voices", nil)

	resp, err := c.Client.Do(c.newRequest(req))

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, convertError(resp)
	}

	var result api.VoicesResponse

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	voices := make([]Voice, 0, len(result.Voices))

	for _, raw := range result.Voices {
		var v Voice

		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}

		v.Raw = raw
		voices = append(voices, v)
	}

	return voices, nil
}
