package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/neboloop/think/internal/agent/ai"
	"github.com/neboloop/think/internal/agent/runner"
	"github.com/neboloop/think/internal/agent/session"
	"github.com/neboloop/think/internal/svc"
)

const defaultCLISession = "cli:default"

// ChatCmd creates the chat command
func ChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Chat with the assistant from the terminal",
		Long: `Send a message and stream the reply. Without a message, start an
interactive session. Spelling issues are listed before each reply.

Commands inside the session:
  /clear     forget the conversation
  /history   print the stored turns
  /exit      quit

Examples:
  think chat "is recieve spelled right?"
  think chat -s notes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig()
			if err != nil {
				return err
			}
			svcCtx, err := svc.NewServiceContext(c, Version)
			if err != nil {
				return err
			}
			if !svcCtx.Runner.HasProvider() {
				return fmt.Errorf("%w: configure Provider in %s or set OPENROUTER_API_KEY", ai.ErrNoProvider, configName())
			}

			key, err := session.ParseKey(sessionKey)
			if err != nil {
				return fmt.Errorf("--session: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			if len(args) > 0 {
				return chatOnce(ctx, out, svcCtx.Runner, key, strings.Join(args, " "))
			}
			return chatLoop(ctx, cmd.InOrStdin(), out, svcCtx.Runner, key)
		},
	}

	cmd.Flags().StringVarP(&sessionKey, "session", "s", defaultCLISession, "conversation key")
	return cmd
}

func configName() string {
	if cfgFile != "" {
		return cfgFile
	}
	return "the config"
}

func chatLoop(ctx context.Context, in io.Reader, out io.Writer, r *runner.Runner, key string) error {
	fmt.Fprintf(out, "Think (%s). Type /exit to quit.\n", key)
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "\n> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case "":
			continue
		case "/exit", "/quit":
			return nil
		case "/clear":
			r.Clear(key)
			fmt.Fprintln(out, "Conversation cleared.")
			continue
		case "/history":
			if conv, ok := r.Sessions().Get(key); ok {
				for _, t := range conv.Turns() {
					fmt.Fprintf(out, "[%s] %s\n", t.Role, t.Content)
				}
			}
			continue
		}

		if err := chatOnce(ctx, out, r, key, line); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	}
}

// chatOnce streams one exchange to out.
func chatOnce(ctx context.Context, out io.Writer, r *runner.Runner, key, message string) error {
	ex, err := r.Run(ctx, &runner.RunRequest{SessionKey: key, Message: message})
	if err != nil {
		return err
	}

	for _, e := range ex.Analysis.Errors {
		if len(e.Suggestions) > 0 {
			fmt.Fprintf(out, "  spelling: %s -> %s\n", e.Word, strings.Join(e.Suggestions, ", "))
		} else {
			fmt.Fprintf(out, "  spelling: %s (no suggestions)\n", e.Word)
		}
	}
	if len(ex.Analysis.Errors) > 0 {
		fmt.Fprintf(out, "  corrected: %s\n\n", ex.Analysis.Corrected)
	}

	var streamErr error
	for ev := range ex.Events {
		switch ev.Type {
		case ai.EventTypeText:
			fmt.Fprint(out, ev.Text)
		case ai.EventTypeError:
			streamErr = ev.Error
		}
	}
	fmt.Fprintln(out)
	if streamErr != nil {
		return streamErr
	}
	if err := ctx.Err(); err != nil {
		return errors.New("interrupted")
	}
	return nil
}
