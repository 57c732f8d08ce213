package ai

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ollama/ollama/api"

	"github.com/neboloop/think/internal/logging"
)

const defaultOllamaURL = "http://localhost:11434"

// OllamaProvider implements the Provider interface for Ollama (local models) using the official SDK
type OllamaProvider struct {
	client *api.Client
	model  string
}

// NewOllamaProvider creates a new Ollama provider
func NewOllamaProvider(baseURL, model string) (*OllamaProvider, error) {
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}
	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("ollama base url: %w", err)
	}

	httpClient := &http.Client{
		Timeout: 5 * time.Minute, // local inference can be slow
	}
	return &OllamaProvider{
		client: api.NewClient(parsedURL, httpClient),
		model:  model,
	}, nil
}

// ID returns the provider identifier
func (p *OllamaProvider) ID() string {
	return "ollama"
}

// Stream sends a request to Ollama and streams the response
func (p *OllamaProvider) Stream(ctx context.Context, req *ChatRequest) (<-chan StreamEvent, error) {
	model := p.model
	if req.Model != "" {
		model = req.Model
	}

	messages := make([]api.Message, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, api.Message{Role: "system", Content: req.System})
	}
	for _, t := range req.Messages {
		messages = append(messages, api.Message{Role: t.Role, Content: t.Content})
	}

	stream := true
	chatReq := &api.ChatRequest{
		Model:    model,
		Messages: messages,
		Stream:   &stream,
		Options:  make(map[string]any),
	}
	if req.Temperature > 0 {
		chatReq.Options["temperature"] = req.Temperature
	}
	if req.TopP > 0 {
		chatReq.Options["top_p"] = req.TopP
	}
	if req.MaxTokens > 0 {
		chatReq.Options["num_predict"] = req.MaxTokens
	}

	logging.Debugf("[Ollama] Sending request: model=%s messages=%d", model, len(messages))

	resultCh := make(chan StreamEvent, 100)
	go func() {
		defer close(resultCh)

		done := false
		err := p.client.Chat(ctx, chatReq, func(resp api.ChatResponse) error {
			if resp.Message.Content != "" {
				resultCh <- StreamEvent{Type: EventTypeText, Text: resp.Message.Content}
			}
			if resp.Done {
				done = true
			}
			return nil
		})
		if err != nil {
			logging.Errorf("[Ollama] Stream error: %v", err)
			resultCh <- StreamEvent{Type: EventTypeError, Error: err}
			return
		}
		if !done {
			logging.Warnf("[Ollama] Stream ended without a done marker")
		}
		resultCh <- StreamEvent{Type: EventTypeDone}
	}()

	return resultCh, nil
}
