package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/neboloop/think/internal/agent/ai"
	"github.com/neboloop/think/internal/agent/session"
	"github.com/neboloop/think/internal/lifecycle"
	"github.com/neboloop/think/internal/logging"
	"github.com/neboloop/think/internal/spell"
)

var (
	// ErrEmptyMessage is returned for blank chat input.
	ErrEmptyMessage = errors.New("message is required")
	// ErrMessageTooLarge is returned when the new message alone does not
	// fit the context budget next to the system prompt.
	ErrMessageTooLarge = errors.New("message does not fit the context budget")
)

// Options tunes a Runner. Zero sampling values leave the provider defaults.
type Options struct {
	BudgetTokens    int
	ResponseReserve int
	SystemPrompt    string // fixed prompt; empty picks one per message
	Model           string
	MaxTokens       int
	Temperature     float64
	TopP            float64
	Timeout         time.Duration
}

// Runner drives one chat exchange: spell-check the message, pick the
// context window, stream the reply, then record both turns.
type Runner struct {
	checker  *spell.Checker
	sessions *session.Store
	provider ai.Provider
	window   Window
	opts     Options
}

// New creates a Runner. provider may be nil, in which case chat fails with
// ai.ErrNoProvider while Analyze keeps working.
func New(checker *spell.Checker, sessions *session.Store, provider ai.Provider, opts Options) *Runner {
	return &Runner{
		checker:  checker,
		sessions: sessions,
		provider: provider,
		window:   Window{ResponseReserve: opts.ResponseReserve},
		opts:     opts,
	}
}

// Checker returns the spell checker used for incoming messages.
func (r *Runner) Checker() *spell.Checker {
	return r.checker
}

// Sessions returns the conversation store.
func (r *Runner) Sessions() *session.Store {
	return r.sessions
}

// HasProvider reports whether chat is available.
func (r *Runner) HasProvider() bool {
	return r.provider != nil
}

// ProviderID names the configured provider, or "" when there is none.
func (r *Runner) ProviderID() string {
	if r.provider == nil {
		return ""
	}
	return r.provider.ID()
}

// Analysis is the spell-check summary of one chat message.
type Analysis struct {
	Errors         []spell.SpellingError `json:"spellingErrors"`
	Corrected      string                `json:"correctedSentence"`
	SpellCheckMode bool                  `json:"isSpellCheckMode"`
	Thinking       string                `json:"thinking"`
}

// Analyze spell-checks message without touching any conversation.
func (r *Runner) Analyze(message string) Analysis {
	corrected, errs := r.checker.Correct(message)
	return Analysis{
		Errors:         errs,
		Corrected:      corrected,
		SpellCheckMode: len(errs) > 0 || IsSpellCheckQuery(message),
		Thinking:       Thinking(errs),
	}
}

// RunRequest is one user message. An empty SessionKey starts a new
// conversation.
type RunRequest struct {
	SessionKey string
	Message    string
}

// Exchange is an in-flight reply. Events carries text deltas followed by a
// single done or error event and is then closed. Both turns are recorded
// before done is sent; a failed exchange records nothing.
type Exchange struct {
	SessionKey string
	Analysis   Analysis
	Events     <-chan ai.StreamEvent
}

// Run starts an exchange. It blocks while another exchange on the same
// session is in flight.
func (r *Runner) Run(ctx context.Context, req *RunRequest) (*Exchange, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, ErrEmptyMessage
	}
	if r.provider == nil {
		return nil, ai.ErrNoProvider
	}

	key := req.SessionKey
	if key == "" {
		key = session.NewKey()
	}
	log := logging.With("session", key)

	analysis := r.Analyze(message)

	conv, unlock, created := r.sessions.Acquire(key)
	if created {
		lifecycle.Emit(lifecycle.EventSessionNew, lifecycle.SessionEventData{SessionKey: key})
	}

	system := r.opts.SystemPrompt
	if system == "" {
		system = SystemPromptFor(analysis.SpellCheckMode)
	}
	history := conv.Turns()
	turns := make([]session.Turn, 0, len(history)+2)
	turns = append(turns, session.Turn{Role: session.RoleSystem, Content: system})
	turns = append(turns, history...)
	turns = append(turns, session.Turn{Role: session.RoleUser, Content: Annotate(message, analysis.Errors)})

	selected, err := r.window.Select(turns, r.opts.BudgetTokens)
	if err != nil {
		unlock()
		return nil, err
	}
	// the newest turn is the first one the window considers
	if len(selected) < 2 {
		unlock()
		return nil, ErrMessageTooLarge
	}
	log.Debugf("[Runner] Window kept %d of %d turns", len(selected)-1, len(turns)-1)

	cancel := context.CancelFunc(func() {})
	if r.opts.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
	}

	events, err := r.provider.Stream(ctx, &ai.ChatRequest{
		Messages:    selected[1:],
		System:      selected[0].Content,
		Model:       r.opts.Model,
		MaxTokens:   r.opts.MaxTokens,
		Temperature: r.opts.Temperature,
		TopP:        r.opts.TopP,
	})
	if err != nil {
		cancel()
		unlock()
		return nil, fmt.Errorf("%s: %w", r.provider.ID(), err)
	}

	info := lifecycle.ExchangeEventData{
		SessionKey:     key,
		Provider:       r.provider.ID(),
		SpellingErrors: len(analysis.Errors),
	}
	lifecycle.Emit(lifecycle.EventExchangeStart, info)

	out := make(chan ai.StreamEvent, 100)
	go r.runLoop(ctx, func() { cancel(); unlock() }, conv, message, info, events, out)

	return &Exchange{SessionKey: key, Analysis: analysis, Events: out}, nil
}

// runLoop forwards provider events and commits the exchange on success.
func (r *Runner) runLoop(ctx context.Context, release func(), conv *session.Conversation, message string, info lifecycle.ExchangeEventData, events <-chan ai.StreamEvent, out chan<- ai.StreamEvent) {
	defer close(out)
	defer release()

	start := time.Now()
	fail := func(err error) {
		info.DurationMS = time.Since(start).Milliseconds()
		info.Error = err
		lifecycle.Emit(lifecycle.EventExchangeError, info)
	}

	abort := func() {
		// unblock the provider goroutine once nobody reads its channel
		go func() {
			for range events {
			}
		}()
	}

	var reply strings.Builder
	for ev := range events {
		switch ev.Type {
		case ai.EventTypeText:
			reply.WriteString(ev.Text)
			if !send(ctx, out, ev) {
				fail(ctx.Err())
				abort()
				return
			}
		case ai.EventTypeError:
			logging.With("session", conv.Key()).Errorf("[Runner] Provider error (%s): %v", ai.ClassifyErrorReason(ev.Error), ev.Error)
			fail(ev.Error)
			send(ctx, out, ev)
			abort()
			return
		}
	}

	if err := ctx.Err(); err != nil {
		fail(err)
		send(ctx, out, ai.StreamEvent{Type: ai.EventTypeError, Error: err})
		return
	}

	conv.Append(
		session.Turn{Role: session.RoleUser, Content: message},
		session.Turn{Role: session.RoleAssistant, Content: reply.String()},
	)
	info.DurationMS = time.Since(start).Milliseconds()
	lifecycle.Emit(lifecycle.EventExchangeComplete, info)
	send(ctx, out, ai.StreamEvent{Type: ai.EventTypeDone})
}

// send delivers ev unless ctx ends first while the buffer is full.
func send(ctx context.Context, out chan<- ai.StreamEvent, ev ai.StreamEvent) bool {
	select {
	case out <- ev:
		return true
	default:
	}
	select {
	case out <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// Result is a completed exchange.
type Result struct {
	SessionKey        string
	Reply             string
	Analysis          Analysis
	ConversationCount int
}

// Chat runs an exchange to completion and returns the full reply.
func (r *Runner) Chat(ctx context.Context, req *RunRequest) (*Result, error) {
	ex, err := r.Run(ctx, req)
	if err != nil {
		return nil, err
	}

	var reply strings.Builder
	done := false
	var streamErr error
	for ev := range ex.Events {
		switch ev.Type {
		case ai.EventTypeText:
			reply.WriteString(ev.Text)
		case ai.EventTypeError:
			streamErr = ev.Error
		case ai.EventTypeDone:
			done = true
		}
	}
	if streamErr != nil {
		return nil, streamErr
	}
	if !done {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, errors.New("reply stream ended unexpectedly")
	}

	count := 0
	if conv, ok := r.sessions.Get(ex.SessionKey); ok {
		count = conv.Len() / 2
	}
	return &Result{
		SessionKey:        ex.SessionKey,
		Reply:             reply.String(),
		Analysis:          ex.Analysis,
		ConversationCount: count,
	}, nil
}

// Clear forgets the conversation for key.
func (r *Runner) Clear(key string) bool {
	if !r.sessions.Clear(key) {
		return false
	}
	lifecycle.Emit(lifecycle.EventSessionReset, lifecycle.SessionEventData{SessionKey: key})
	return true
}

// AcceptCorrection rewrites the most recent user turn that reads original
// so later requests see corrected instead.
func (r *Runner) AcceptCorrection(key, original, corrected string) bool {
	conv, ok := r.sessions.Get(key)
	if !ok {
		return false
	}
	return conv.ReplaceLast(session.RoleUser, original, corrected)
}
