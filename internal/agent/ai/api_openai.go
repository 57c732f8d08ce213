package ai

import (
	"context"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/ssestream"
	"github.com/openai/openai-go/shared"

	"github.com/neboloop/think/internal/agent/session"
	"github.com/neboloop/think/internal/logging"
)

// OpenRouterBaseURL is the OpenAI-compatible endpoint of openrouter.ai.
const OpenRouterBaseURL = "https://openrouter.ai/api/v1/"

// OpenAIOptions configures an OpenAIProvider. BaseURL and Headers let the
// same client talk to any OpenAI-compatible API such as OpenRouter.
type OpenAIOptions struct {
	ID      string
	APIKey  string
	BaseURL string
	Model   string
	Headers map[string]string
}

// OpenAIProvider implements the OpenAI chat completions API using the official SDK
type OpenAIProvider struct {
	client openai.Client
	id     string
	model  string
}

// NewOpenAIProvider creates a new OpenAI-compatible provider
func NewOpenAIProvider(opts OpenAIOptions) *OpenAIProvider {
	reqOpts := []option.RequestOption{option.WithAPIKey(opts.APIKey)}
	if opts.BaseURL != "" {
		base := opts.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		reqOpts = append(reqOpts, option.WithBaseURL(base))
	}
	for k, v := range opts.Headers {
		if v != "" {
			reqOpts = append(reqOpts, option.WithHeader(k, v))
		}
	}

	id := opts.ID
	if id == "" {
		id = "openai"
	}
	return &OpenAIProvider{
		client: openai.NewClient(reqOpts...),
		id:     id,
		model:  opts.Model,
	}
}

// ID returns the provider identifier
func (p *OpenAIProvider) ID() string {
	return p.id
}

// Stream sends a request and returns streaming events
func (p *OpenAIProvider) Stream(ctx context.Context, req *ChatRequest) (<-chan StreamEvent, error) {
	model := p.model
	if req.Model != "" {
		model = req.Model
	}

	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(model),
		Messages: buildOpenAIMessages(req),
	}
	if req.MaxTokens > 0 {
		// max_tokens rather than max_completion_tokens: OpenRouter and most
		// compatible servers only understand the older name.
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if req.TopP > 0 {
		params.TopP = openai.Float(req.TopP)
	}

	logging.Debugf("[%s] Sending request: model=%s messages=%d", p.id, model, len(params.Messages))

	stream := p.client.Chat.Completions.NewStreaming(ctx, params)

	events := make(chan StreamEvent, 100)
	go p.handleStream(stream, events)

	return events, nil
}

// buildOpenAIMessages converts conversation turns to OpenAI format
func buildOpenAIMessages(req *ChatRequest) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)
	if req.System != "" {
		result = append(result, openai.SystemMessage(req.System))
	}

	for _, msg := range req.Messages {
		switch msg.Role {
		case session.RoleUser:
			result = append(result, openai.UserMessage(msg.Content))
		case session.RoleAssistant:
			result = append(result, openai.AssistantMessage(msg.Content))
		case session.RoleSystem:
			result = append(result, openai.SystemMessage(msg.Content))
		}
	}
	return result
}

// handleStream processes the streaming response
func (p *OpenAIProvider) handleStream(stream *ssestream.Stream[openai.ChatCompletionChunk], events chan<- StreamEvent) {
	defer close(events)
	defer stream.Close()

	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) > 0 && chunk.Choices[0].Delta.Content != "" {
			events <- StreamEvent{
				Type: EventTypeText,
				Text: chunk.Choices[0].Delta.Content,
			}
		}
	}

	if err := stream.Err(); err != nil {
		logging.Errorf("[%s] Stream error: %v", p.id, err)
		events <- StreamEvent{Type: EventTypeError, Error: err}
		return
	}

	events <- StreamEvent{Type: EventTypeDone}
}
