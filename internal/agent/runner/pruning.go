package runner

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/neboloop/think/internal/agent/session"
)

// CharsPerTokenEstimate is the rough character-to-token ratio used for
// budgeting. It works well enough for English prose on most models.
const CharsPerTokenEstimate = 4

// ErrInvalidArgument is returned for out-of-range inputs such as a
// negative budget.
var ErrInvalidArgument = errors.New("invalid argument")

// EstimateTokens approximates the token cost of s, rounding up so any
// non-empty content costs at least one token.
func EstimateTokens(s string) int {
	n := utf8.RuneCountInString(s)
	return (n + CharsPerTokenEstimate - 1) / CharsPerTokenEstimate
}

// Window picks the turns sent with a generation request.
type Window struct {
	// ResponseReserve is held back from the budget for the model's reply.
	ResponseReserve int
}

// Select returns the turns that fit in budget estimated tokens.
//
// A leading system turn is always kept and charged first, even when it
// alone exceeds the budget. The rest are walked newest to oldest and kept
// while the running total stays strictly under budget-ResponseReserve; the walk
// stops at the first turn that does not fit, so older turns are dropped
// whole and never truncated. Kept turns come back in chronological order.
func (w Window) Select(turns []session.Turn, budget int) ([]session.Turn, error) {
	if budget < 0 {
		return nil, fmt.Errorf("%w: negative budget %d", ErrInvalidArgument, budget)
	}
	if w.ResponseReserve < 0 {
		return nil, fmt.Errorf("%w: negative response reserve %d", ErrInvalidArgument, w.ResponseReserve)
	}
	if len(turns) == 0 {
		return []session.Turn{}, nil
	}

	available := budget - w.ResponseReserve
	used := 0

	var system *session.Turn
	rest := turns
	if turns[0].Role == session.RoleSystem {
		system = &turns[0]
		used = EstimateTokens(system.Content)
		rest = turns[1:]
	}

	start := len(rest)
	for i := len(rest) - 1; i >= 0; i-- {
		size := EstimateTokens(rest[i].Content)
		if used+size >= available {
			break
		}
		used += size
		start = i
	}

	selected := make([]session.Turn, 0, len(rest)-start+1)
	if system != nil {
		selected = append(selected, *system)
	}
	selected = append(selected, rest[start:]...)
	return selected, nil
}
