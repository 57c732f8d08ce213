package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/neboloop/think/internal/spell"
)

func TestIsSpellCheckQuery(t *testing.T) {
	for _, msg := range []string{"Can you check this?", "FIX my grammar", "is this spelled right", "what's wrong here", "Corrections please"} {
		assert.True(t, IsSpellCheckQuery(msg), msg)
	}
	for _, msg := range []string{"hello there", "what is the weather like", ""} {
		assert.False(t, IsSpellCheckQuery(msg), msg)
	}
}

func TestAnnotate(t *testing.T) {
	assert.Equal(t, "hi", Annotate("hi", nil))

	errs := []spell.SpellingError{
		{Word: "wrold", Position: 1, Suggestions: []string{"world", "would"}},
		{Word: "zzyzx", Position: 2, Suggestions: []string{}},
	}
	assert.Equal(t,
		"hello wrold zzyzx\n\n[System: Potential spelling errors detected: \"wrold\" (suggestions: world, would); \"zzyzx\" (no suggestions)]",
		Annotate("hello wrold zzyzx", errs))
}

func TestSystemPromptFor(t *testing.T) {
	assert.Equal(t, WritingPrompt, SystemPromptFor(true))
	assert.Equal(t, ConversationPrompt, SystemPromptFor(false))
}

func TestThinking(t *testing.T) {
	assert.Equal(t, "Processing your message...", Thinking(nil))
	assert.Equal(t, "Found 1 potential spelling error(s). Analyzing...", Thinking([]spell.SpellingError{{Word: "x"}}))
}
