package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/adrianliechti/nimbus/server/api"
)

type ChatService struct {
	Options []RequestOption
}

func NewChatService(opts ...RequestOption) ChatService {
	return ChatService{
		Options: opts,
	}
}

type ChatRequest = api.ChatRequest

type Chat struct {
	Text string

	// Audio is nil when the relay could not synthesize speech.
	Audio []byte
}

func (r *ChatService) New(ctx context.Context, input ChatRequest, opts ...RequestOption) (*Chat, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	var data bytes.Buffer

	if err := json.NewEncoder(&data).Encode(input); err != nil {
		return nil, err
	}

	req, _ := http.NewRequestWithContext(ctx, "POST", strings.TrimRight(c.URL, "/")+"/chat", &data)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(c.newRequest(req))

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, convertError(resp)
	}

	var result api.ChatResponse

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	chat := &Chat{
		Text: result.Text,
	}

	if result.Audio != nil {
		audio, err := base64.StdEncoding.DecodeString(*result.Audio)

		if err != nil {
			return nil, err
		}

		chat.Audio = audio
	}

	return chat, nil
}
