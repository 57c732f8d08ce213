package svc

import (
	"errors"
	"fmt"
	"time"

	"github.com/neboloop/think/internal/agent/ai"
	"github.com/neboloop/think/internal/agent/runner"
	"github.com/neboloop/think/internal/agent/session"
	"github.com/neboloop/think/internal/config"
	"github.com/neboloop/think/internal/logging"
	"github.com/neboloop/think/internal/spell"
)

type ServiceContext struct {
	Config  config.Config
	Version string // Build version (e.g. "v0.2.0" or "dev")

	Runner *runner.Runner
}

// NewServiceContext loads the dictionary and wires the chat runner. A
// hosted provider without an API key is not fatal: spell checking still
// works and chat endpoints answer 503.
func NewServiceContext(c config.Config, version string) (*ServiceContext, error) {
	checker, err := NewChecker(c.Spell)
	if err != nil {
		return nil, err
	}

	provider, err := ai.NewProvider(c.Provider)
	switch {
	case errors.Is(err, ai.ErrNoProvider):
		logging.Warnf("Chat disabled: %v", err)
		provider = nil
	case err != nil:
		return nil, fmt.Errorf("provider: %w", err)
	default:
		logging.Infof("Chat provider: %s (model %s)", provider.ID(), c.Provider.Model)
	}

	return &ServiceContext{
		Config:  c,
		Version: version,
		Runner:  NewRunner(c, checker, provider),
	}, nil
}

// NewChecker loads the configured word list, or the embedded one when no
// path is set, and builds a checker over it.
func NewChecker(c config.SpellConfig) (*spell.Checker, error) {
	var (
		dict *spell.Dictionary
		err  error
	)
	if c.Dictionary != "" {
		dict, err = spell.LoadDictionary(c.Dictionary)
	} else {
		dict, err = spell.DefaultDictionary()
	}
	if err != nil {
		return nil, fmt.Errorf("dictionary: %w", err)
	}

	suggester := spell.NewSuggester(dict, spell.SuggestOptions{
		MaxDistance:    c.MaxDistance,
		Limit:          c.MaxSuggestions,
		Policy:         spell.ScanPolicy(c.ScanPolicy),
		IndexThreshold: c.IndexThreshold,
	})
	logging.Debugf("Dictionary loaded: %d words, scan policy %s", dict.Len(), suggester.Policy())
	return spell.NewChecker(dict, suggester), nil
}

// NewRunner builds a runner with a fresh session store sized from c.
func NewRunner(c config.Config, checker *spell.Checker, provider ai.Provider) *runner.Runner {
	return runner.New(checker, session.NewStore(c.Context.MaxTurns), provider, runner.Options{
		BudgetTokens:    c.Context.BudgetTokens,
		ResponseReserve: c.Context.ResponseReserve,
		SystemPrompt:    c.Provider.SystemPrompt,
		Model:           c.Provider.Model,
		MaxTokens:       c.Provider.MaxTokens,
		Temperature:     c.Provider.Temperature,
		TopP:            c.Provider.TopP,
		Timeout:         time.Duration(c.Provider.TimeoutSeconds) * time.Second,
	})
}
