package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/neboloop/think/internal/spell"
	"github.com/neboloop/think/internal/svc"
)

// CheckCmd reports misspelled words
func CheckCmd() *cobra.Command {
	var files []string

	cmd := &cobra.Command{
		Use:   "check [text]",
		Short: "List misspelled words and suggestions",
		Long: `Check text for misspellings. Text comes from the arguments, from
--file (repeatable, checked in parallel) or from stdin.

Examples:
  think check "the qick brown fox"
  think check -f README.md -f NOTES.md
  echo "recieve" | think check --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			checker, err := newChecker()
			if err != nil {
				return err
			}
			inputs, err := readInputs(cmd.InOrStdin(), args, files)
			if err != nil {
				return err
			}

			results := make([][]spell.SpellingError, len(inputs))
			var g errgroup.Group
			g.SetLimit(4)
			for i, in := range inputs {
				g.Go(func() error {
					results[i] = checker.Check(in.text)
					return nil
				})
			}
			_ = g.Wait()

			out := cmd.OutOrStdout()
			for i, in := range inputs {
				if jsonOutput {
					if err := writeJSON(out, map[string]any{"source": in.name, "errors": results[i]}); err != nil {
						return err
					}
					continue
				}
				printErrors(out, in.name, len(inputs) > 1, results[i])
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&files, "file", "f", nil, "file to check (repeatable)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print JSON instead of text")
	return cmd
}

// CorrectCmd prints text with misspellings replaced
func CorrectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "correct [text]",
		Short: "Replace misspelled words with their best suggestion",
		Long: `Print the text with every correctable misspelling replaced.
Words without suggestions are left as typed.

Examples:
  think correct "teh quick fox"
  think correct < draft.txt > fixed.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			checker, err := newChecker()
			if err != nil {
				return err
			}
			inputs, err := readInputs(cmd.InOrStdin(), args, nil)
			if err != nil {
				return err
			}

			corrected, errs := checker.Correct(inputs[0].text)
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"corrected": corrected, "errors": errs})
			}
			fmt.Fprintln(cmd.OutOrStdout(), corrected)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print JSON instead of text")
	return cmd
}

func newChecker() (*spell.Checker, error) {
	c, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return svc.NewChecker(c.Spell)
}

type input struct {
	name string
	text string
}

// readInputs prefers files, then joined args, then stdin.
func readInputs(stdin io.Reader, args, files []string) ([]input, error) {
	if len(files) > 0 {
		inputs := make([]input, len(files))
		for i, f := range files {
			data, err := os.ReadFile(f)
			if err != nil {
				return nil, err
			}
			inputs[i] = input{name: f, text: string(data)}
		}
		return inputs, nil
	}
	if len(args) > 0 {
		return []input{{name: "args", text: strings.Join(args, " ")}}, nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return []input{{name: "stdin", text: string(data)}}, nil
}

func printErrors(w io.Writer, name string, withName bool, errs []spell.SpellingError) {
	prefix := ""
	if withName {
		prefix = name + ": "
	}
	if len(errs) == 0 {
		fmt.Fprintf(w, "%sno spelling errors\n", prefix)
		return
	}
	for _, e := range errs {
		suggestions := "(no suggestions)"
		if len(e.Suggestions) > 0 {
			suggestions = strings.Join(e.Suggestions, ", ")
		}
		fmt.Fprintf(w, "%sword %d %q: %s\n", prefix, e.Position, e.Word, suggestions)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
