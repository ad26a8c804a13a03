package google

import (
	"context"
	"errors"
	"fmt"

	"github.com/adrianliechti/nimbus/pkg/provider"

	"github.com/google/uuid"
	"google.golang.org/genai"
)

var _ provider.Completer = (*Completer)(nil)

type Completer struct {
	*Config
}

func NewCompleter(model string, options ...Option) (*Completer, error) {
	cfg := &Config{
		model: model,
	}

	for _, option := range options {
		option(cfg)
	}

	if cfg.model == "" {
		return nil, errors.New("missing model")
	}

	if cfg.project != "" && cfg.location == "" {
		cfg.location = "us-central1"
	}

	return &Completer{
		Config: cfg,
	}, nil
}

func (c *Completer) Complete(ctx context.Context, messages []provider.Message, options *provider.CompleteOptions) (*provider.Completion, error) {
	if options == nil {
		options = new(provider.CompleteOptions)
	}

	system, history := provider.SplitSystem(messages)

	if len(history) == 0 {
		return nil, errors.New("missing messages")
	}

	client, err := c.newClient(ctx)

	if err != nil {
		return nil, err
	}

	config := &genai.GenerateContentConfig{}

	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	if len(options.Stop) > 0 {
		config.StopSequences = options.Stop
	}

	if options.MaxTokens != nil {
		config.MaxOutputTokens = int32(*options.MaxTokens)
	}

	if options.Temperature != nil {
		config.Temperature = options.Temperature
	}

	resp, err := client.Models.GenerateContent(ctx, c.model, convertContents(history), config)

	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return nil, provider.ErrNoCandidates
	}

	candidate := resp.Candidates[0]

	if candidate == nil || candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, provider.ErrMalformedCompletion
	}

	part := candidate.Content.Parts[0]

	if part == nil || part.Text == "" {
		return nil, provider.ErrMalformedCompletion
	}

	model := c.model

	if resp.ModelVersion != "" {
		model = resp.ModelVersion
	}

	return &provider.Completion{
		ID:    uuid.NewString(),
		Model: model,

		Message: &provider.Message{
			Role: provider.MessageRoleAssistant,

			Content: []provider.Content{
				provider.TextContent(part.Text),
			},
		},

		Usage: toUsage(resp.UsageMetadata),
	}, nil
}

func convertContents(messages []provider.Message) []*genai.Content {
	var result []*genai.Content

	for _, m := range messages {
		role := genai.Role(genai.RoleUser)

		if m.Role == provider.MessageRoleAssistant {
			role = genai.RoleModel
		}

		result = append(result, genai.NewContentFromText(m.Text(), role))
	}

	return result
}

func toUsage(metadata *genai.GenerateContentResponseUsageMetadata) *provider.Usage {
	if metadata == nil {
		return nil
	}

	return &provider.Usage{
		InputTokens:  int(metadata.PromptTokenCount),
		OutputTokens: int(metadata.CandidatesTokenCount),
	}
}
