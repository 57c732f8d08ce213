package runner

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/neboloop/think/internal/agent/session"
)

func turn(role string, chars int, label string) session.Turn {
	// label is padded so each turn costs exactly chars/4 tokens
	return session.Turn{Role: role, Content: label + strings.Repeat("x", chars-len(label))}
}

func TestEstimateTokens(t *testing.T) {
	cases := map[string]int{
		"":      0,
		"a":     1,
		"abcd":  1,
		"abcde": 2,
		"héllo": 2, // runes, not bytes
	}
	for s, want := range cases {
		if got := EstimateTokens(s); got != want {
			t.Errorf("EstimateTokens(%q) = %d, want %d", s, got, want)
		}
	}
}

func TestSelect_KeepsEverythingUnderBudget(t *testing.T) {
	turns := []session.Turn{
		{Role: session.RoleSystem, Content: "be helpful"},
		{Role: session.RoleUser, Content: "hello"},
		{Role: session.RoleAssistant, Content: "hi there"},
	}
	got, err := Window{ResponseReserve: 10}.Select(turns, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 turns, got %d", len(got))
	}
	for i := range turns {
		if got[i] != turns[i] {
			t.Fatalf("turn %d changed: %+v", i, got[i])
		}
	}
}

func TestSelect_SystemSurvivesTinyBudget(t *testing.T) {
	turns := []session.Turn{
		turn(session.RoleSystem, 400, "sys"),
		turn(session.RoleUser, 4, "u"),
	}
	got, err := Window{}.Select(turns, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Role != session.RoleSystem {
		t.Fatalf("expected only the system turn, got %+v", got)
	}

	// reserve larger than the budget still keeps the system turn
	got, err = Window{ResponseReserve: 100}.Select(turns[:1], 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected system turn, got %d turns", len(got))
	}
}

func TestSelect_LastTwoOfTen(t *testing.T) {
	turns := []session.Turn{turn(session.RoleSystem, 40, "sys")} // 10 tokens
	for i := 0; i < 10; i++ {
		role := session.RoleUser
		if i%2 == 1 {
			role = session.RoleAssistant
		}
		turns = append(turns, turn(role, 80, fmt.Sprintf("t%d", i))) // 20 tokens each
	}

	// 10 (system) + 2*20 = 50 fits; a third turn would need 70
	w := Window{ResponseReserve: 30}
	got, err := w.Select(turns, 85)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected system + 2 turns, got %d", len(got))
	}
	if got[0].Role != session.RoleSystem {
		t.Fatalf("first turn should be system, got %s", got[0].Role)
	}
	if !strings.HasPrefix(got[1].Content, "t8") || !strings.HasPrefix(got[2].Content, "t9") {
		t.Fatalf("expected t8, t9 in order, got %q, %q", got[1].Content[:2], got[2].Content[:2])
	}
}

func TestSelect_StopsAtFirstMisfit(t *testing.T) {
	turns := []session.Turn{
		turn(session.RoleUser, 4, "a"),        // 1 token, would fit on its own
		turn(session.RoleAssistant, 400, "b"), // 100 tokens, does not fit
		turn(session.RoleUser, 8, "c"),        // 2 tokens
	}
	got, err := Window{}.Select(turns, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || !strings.HasPrefix(got[0].Content, "c") {
		t.Fatalf("older turns past the misfit must be dropped, got %+v", got)
	}
}

func TestSelect_BudgetBoundaryIsExclusive(t *testing.T) {
	turns := []session.Turn{
		turn(session.RoleSystem, 40, "s"), // 10 tokens
		turn(session.RoleUser, 40, "u"),   // 10 tokens
	}
	// 10 + 10 reaches budget-reserve exactly, so the user turn is dropped
	got, _ := Window{ResponseReserve: 10}.Select(turns, 30)
	if len(got) != 1 || got[0].Role != session.RoleSystem {
		t.Fatalf("a total equal to the budget must not fit, got %d turns", len(got))
	}
	got, _ = Window{ResponseReserve: 10}.Select(turns, 31)
	if len(got) != 2 {
		t.Fatalf("expected 2 turns one token over, got %d", len(got))
	}
}

func TestSelect_NoSystemTurn(t *testing.T) {
	turns := []session.Turn{
		{Role: session.RoleUser, Content: "first"},
		{Role: session.RoleAssistant, Content: "second"},
	}
	got, err := Window{}.Select(turns, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Content != "first" {
		t.Fatalf("unexpected selection %+v", got)
	}
}

func TestSelect_Empty(t *testing.T) {
	got, err := Window{}.Select(nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestSelect_NegativeBudget(t *testing.T) {
	_, err := Window{}.Select([]session.Turn{{Role: session.RoleUser, Content: "x"}}, -1)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}

	_, err = Window{ResponseReserve: -5}.Select(nil, 10)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for negative reserve, got %v", err)
	}
}

func TestSelect_DoesNotMutateInput(t *testing.T) {
	turns := []session.Turn{
		{Role: session.RoleSystem, Content: "sys"},
		{Role: session.RoleUser, Content: "u1"},
		{Role: session.RoleUser, Content: "u2"},
	}
	got, _ := Window{}.Select(turns, 100)
	got[0].Content = "changed"
	if turns[0].Content != "sys" {
		t.Fatal("Select must not alias the caller's system turn")
	}
}
