package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/vibegen/internal/app"
	"github.com/doeshing/vibegen/internal/domain"
	"github.com/doeshing/vibegen/internal/infrastructure/cli/helpers"
	"github.com/doeshing/vibegen/internal/pkg/filesystem"
	"github.com/doeshing/vibegen/internal/session"
)

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Browse previously generated prompts",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistorySearchCommand(container),
		newHistoryShowCommand(container),
		newHistoryRestoreCommand(container),
		newHistoryClearCommand(container),
		newHistoryExportCommand(container),
	)

	return historyCmd
}

// newHistoryListCommand creates the 'history list' subcommand
func newHistoryListCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent history entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistoryEntries(cmd.Context(), cmd.OutOrStdout(), container, "", limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", domain.DefaultHistoryLimit, "Max entries to show (0 for all)")
	return cmd
}

// newHistorySearchCommand creates the 'history search' subcommand
func newHistorySearchCommand(container *app.Container) *cobra.Command {
	var searchLimit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy search topics, vibestacks and prompts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistoryEntries(cmd.Context(), cmd.OutOrStdout(), container, args[0], searchLimit)
		},
	}

	cmd.Flags().IntVar(&searchLimit, "limit", domain.DefaultHistorySearchLimit, "Limit search results")
	return cmd
}

// newHistoryShowCommand creates the 'history show' subcommand
func newHistoryShowCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a history entry (id or unique prefix)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, err := loadWorkspace(ctx, container)
			if err != nil {
				return err
			}
			item, ok := ws.FindHistory(args[0])
			if !ok {
				return fmt.Errorf(ErrHistoryNotFound, args[0])
			}
			helpers.RenderHistoryItem(cmd.OutOrStdout(), helpers.NewTheme(cmd.OutOrStdout(), ws.DarkMode), item)
			return nil
		},
	}
}

// newHistoryRestoreCommand creates the 'history restore' subcommand
func newHistoryRestoreCommand(container *app.Container) *cobra.Command {
	var regenerate, raw bool

	cmd := &cobra.Command{
		Use:   "restore <id>",
		Short: "Restore an entry's inputs, optionally generating again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, err := loadWorkspace(ctx, container)
			if err != nil {
				return err
			}
			item, ok := ws.FindHistory(args[0])
			if !ok {
				return fmt.Errorf(ErrHistoryNotFound, args[0])
			}
			ws.Restore(item, container.Config.ResolveModelID(""))

			if regenerate {
				return runGenerate(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), container, ws, generateOptions{raw: raw})
			}
			return renderRestored(cmd.OutOrStdout(), ws)
		},
	}

	cmd.Flags().BoolVar(&regenerate, "regenerate", false, "Submit the restored inputs again")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print only the generated prompt")
	return cmd
}

// newHistoryClearCommand creates the 'history clear' subcommand
func newHistoryClearCommand(container *app.Container) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all history entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				ok, err := helpers.PromptForConfirmation(cmd.OutOrStdout(), cmd.InOrStdin(), "Clear all history?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), MsgCancelled)
					return nil
				}
			}
			if err := container.Repository.SaveHistory(cmd.Context(), nil); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), MsgHistoryCleared)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

// newHistoryExportCommand creates the 'history export' subcommand
func newHistoryExportCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export history to a JSONL file (- for stdout)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := container.Repository.History(cmd.Context())
			if err != nil {
				return err
			}
			data, err := encodeJSONLines(items)
			if err != nil {
				return err
			}
			if args[0] == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := filesystem.WriteFileAtomic(args[0], data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", len(items), args[0])
			return nil
		},
	}
}

// listHistoryEntries lists or searches history entries
func listHistoryEntries(ctx context.Context, out io.Writer, container *app.Container, query string, limit int) error {
	ws, err := loadWorkspace(ctx, container)
	if err != nil {
		return err
	}
	if len(ws.History) == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}
	items := session.SearchHistory(ws.History, query, limit)
	if len(items) == 0 {
		fmt.Fprintln(out, MsgNoMatches)
		return nil
	}
	helpers.RenderHistory(out, helpers.NewTheme(out, ws.DarkMode), items)
	return nil
}

func renderRestored(out io.Writer, ws *session.Workspace) error {
	theme := helpers.NewTheme(out, ws.DarkMode)
	fmt.Fprintf(out, "%s %s\n", theme.Label.Render("Model:"), ws.ModelID)
	fmt.Fprintf(out, "%s %s\n", theme.Label.Render("Duration:"), ws.Duration)
	fmt.Fprintf(out, "%s\n%s\n", theme.Label.Render("Topic:"), ws.Topic)
	fmt.Fprintf(out, "%s\n%s\n", theme.Label.Render("Vibestack:"), ws.Vibestack)
	helpers.RenderResult(out, theme, ws.Result, false)
	return nil
}

func encodeJSONLines(items []domain.HistoryItem) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, item := range items {
		if err := enc.Encode(item); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
