package runner

import (
	"fmt"
	"strings"

	"github.com/neboloop/think/internal/spell"
)

// WritingPrompt is used when the user has spelling errors or asks about
// their writing.
const WritingPrompt = `You are "Think", a helpful spell-checking and grammar assistant.

Your role is to:
1. Check for spelling and grammar errors in user messages
2. Provide corrections with explanations
3. Help improve writing quality
4. Have thoughtful conversations about language and writing

When responding:
- Be friendly and educational
- Explain why corrections are needed
- Provide examples when helpful
- Use clear, concise language`

// ConversationPrompt is used for ordinary chat.
const ConversationPrompt = `You are "Think", a friendly and intelligent AI assistant.

Your personality:
- Helpful and conversational
- Clear and concise
- Knowledgeable across many topics
- Remembers conversation context
- Professional yet approachable

Respond naturally to user questions and maintain engaging conversation.`

var spellCheckKeywords = []string{
	"correct", "fix", "mistake", "error", "wrong", "spell", "grammar", "check",
}

// IsSpellCheckQuery reports whether the user is asking about their writing.
// Matching is by substring, so "corrections" and "spelling" count.
func IsSpellCheckQuery(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range spellCheckKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// SystemPromptFor picks the built-in system prompt for an exchange.
func SystemPromptFor(spellCheckMode bool) string {
	if spellCheckMode {
		return WritingPrompt
	}
	return ConversationPrompt
}

// Annotate appends a note listing the detected spelling errors so the model
// can address them. The message is returned unchanged when errs is empty.
//
//	hello wrold
//
//	[System: Potential spelling errors detected: "wrold" (suggestions: world, would)]
func Annotate(message string, errs []spell.SpellingError) string {
	if len(errs) == 0 {
		return message
	}

	notes := make([]string, len(errs))
	for i, e := range errs {
		if len(e.Suggestions) == 0 {
			notes[i] = fmt.Sprintf("%q (no suggestions)", e.Word)
			continue
		}
		notes[i] = fmt.Sprintf("%q (suggestions: %s)", e.Word, strings.Join(e.Suggestions, ", "))
	}
	return message + "\n\n[System: Potential spelling errors detected: " + strings.Join(notes, "; ") + "]"
}

// Thinking is the short status line shown while a reply is generated.
func Thinking(errs []spell.SpellingError) string {
	if len(errs) > 0 {
		return fmt.Sprintf("Found %d potential spelling error(s). Analyzing...", len(errs))
	}
	return "Processing your message..."
}
