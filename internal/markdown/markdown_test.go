package markdown

import (
	"strings"
	"testing"
)

func TestRenderEmpty(t *testing.T) {
	if got := Render(""); got != "" {
		t.Errorf("Render(\"\") = %q, want \"\"", got)
	}
}

func TestRenderCorrectionReply(t *testing.T) {
	html := Render("Did you mean **quick**? The word *qick* is misspelled.")
	if !strings.Contains(html, "<strong>quick</strong>") {
		t.Errorf("Expected <strong>quick</strong>, got: %s", html)
	}
	if !strings.Contains(html, "<em>qick</em>") {
		t.Errorf("Expected <em>qick</em>, got: %s", html)
	}
}

func TestRenderSuggestionList(t *testing.T) {
	html := Render("Suggestions:\n\n- quick\n- quack")
	if !strings.Contains(html, "<li>quick</li>") {
		t.Errorf("Expected list items, got: %s", html)
	}
}

func TestRenderGFMStrikethrough(t *testing.T) {
	html := Render("~~teh~~ the")
	if !strings.Contains(html, "<del>teh</del>") {
		t.Errorf("Expected <del>teh</del>, got: %s", html)
	}
}

func TestRenderCodeBlock(t *testing.T) {
	html := Render("```go\nfunc main() {}\n```")
	if !strings.Contains(html, "<pre") {
		t.Errorf("Expected <pre> block, got: %s", html)
	}
}

func TestRenderEscapesRawHTML(t *testing.T) {
	html := Render("hello <script>alert(1)</script>")
	if strings.Contains(html, "<script>") {
		t.Errorf("Raw HTML should not pass through, got: %s", html)
	}
}

func TestRenderExternalLinks(t *testing.T) {
	html := Render("[dictionary](https://example.com/words)")
	if !strings.Contains(html, `target="_blank"`) {
		t.Errorf("Expected target=_blank on external link, got: %s", html)
	}
	if !strings.Contains(html, `rel="noopener noreferrer"`) {
		t.Errorf("Expected rel=noopener on external link, got: %s", html)
	}
}

func TestRenderInternalLinks(t *testing.T) {
	html := Render("[help](/help)")
	if strings.Contains(html, `target="_blank"`) {
		t.Errorf("Internal link should NOT have target=_blank, got: %s", html)
	}
}

func TestRenderHardWraps(t *testing.T) {
	html := Render("line1\nline2")
	if !strings.Contains(html, "<br") {
		t.Errorf("Expected hard wrap <br>, got: %s", html)
	}
}
