package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/doeshing/vibegen/internal/app"
	"github.com/doeshing/vibegen/internal/application/presets"
	"github.com/doeshing/vibegen/internal/domain"
	"github.com/doeshing/vibegen/internal/infrastructure/cli/helpers"
	"github.com/doeshing/vibegen/internal/pkg/filesystem"
)

// NewPresetsCommand creates the presets command with all subcommands
func NewPresetsCommand(container *app.Container) *cobra.Command {
	presetsCmd := &cobra.Command{
		Use:     "presets",
		Aliases: []string{"vibes"},
		Short:   "Manage saved vibestack presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listPresets(cmd.Context(), cmd.OutOrStdout(), container, "")
		},
	}

	presetsCmd.AddCommand(
		newPresetsListCommand(container),
		newPresetsSearchCommand(container),
		newPresetsShowCommand(container),
		newPresetsApplyCommand(container),
		newPresetsAddCommand(container),
		newPresetsDeleteCommand(container),
		newPresetsResetCommand(container),
		newPresetsImportCommand(container),
		newPresetsExportCommand(container),
	)

	return presetsCmd
}

func newPresetsListCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listPresets(cmd.Context(), cmd.OutOrStdout(), container, "")
		},
	}
}

func newPresetsSearchCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy search presets by name, description or id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return listPresets(cmd.Context(), cmd.OutOrStdout(), container, args[0])
		},
	}
}

func newPresetsShowCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id|name>",
		Short: "Show a preset's vibestack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			list, err := container.Repository.Presets(ctx)
			if err != nil {
				return err
			}
			p, ok := presets.Find(list, args[0])
			if !ok {
				return fmt.Errorf(ErrPresetNotFound, args[0])
			}
			helpers.RenderPreset(cmd.OutOrStdout(), themeFor(ctx, cmd.OutOrStdout(), container), p)
			return nil
		},
	}
}

func newPresetsApplyCommand(container *app.Container) *cobra.Command {
	var vibestack, vibestackFile string

	cmd := &cobra.Command{
		Use:   "apply <id|name>",
		Short: "Print a vibestack with the preset merged in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := container.Repository.Presets(cmd.Context())
			if err != nil {
				return err
			}
			p, ok := presets.Find(list, args[0])
			if !ok {
				return fmt.Errorf(ErrPresetNotFound, args[0])
			}
			current, err := helpers.ReadText(vibestack, vibestackFile, cmd.InOrStdin())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), presets.Apply(current, p.Value))
			return nil
		},
	}

	cmd.Flags().StringVarP(&vibestack, "vibestack", "s", "", "Current vibestack to merge into")
	cmd.Flags().StringVar(&vibestackFile, "vibestack-file", "", "Read the current vibestack from a file (- for stdin)")
	return cmd
}

func newPresetsAddCommand(container *app.Container) *cobra.Command {
	var name, description, vibestack, vibestackFile string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Save a vibestack as a new preset",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			value, err := helpers.ReadText(vibestack, vibestackFile, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if name == "" {
				name, err = helpers.PromptForString(cmd.OutOrStdout(), cmd.InOrStdin(), "Preset name", "")
				if err != nil {
					return err
				}
			}
			p, err := presets.New(name, description, value)
			if err != nil {
				return err
			}

			list, err := container.Repository.Presets(ctx)
			if err != nil {
				return err
			}
			if err := container.Repository.SavePresets(ctx, presets.Add(list, p)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved preset %q (%s)\n", p.Name, p.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Preset name (prompted when omitted)")
	cmd.Flags().StringVar(&description, "description", "", "Short description")
	cmd.Flags().StringVarP(&vibestack, "vibestack", "s", "", "Vibestack text to save")
	cmd.Flags().StringVar(&vibestackFile, "vibestack-file", "", "Read the vibestack from a file (- for stdin)")
	return cmd
}

func newPresetsDeleteCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id|name>",
		Aliases: []string{"rm"},
		Short:   "Delete a preset",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			list, err := container.Repository.Presets(ctx)
			if err != nil {
				return err
			}
			p, ok := presets.Find(list, args[0])
			if !ok {
				return fmt.Errorf(ErrPresetNotFound, args[0])
			}
			updated, err := presets.Delete(list, p.ID)
			if err != nil {
				return err
			}
			if err := container.Repository.SavePresets(ctx, updated); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted preset %q\n", p.Name)
			return nil
		},
	}
}

func newPresetsResetCommand(container *app.Container) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the built-in presets, deleting custom ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				ok, err := helpers.PromptForConfirmation(cmd.OutOrStdout(), cmd.InOrStdin(),
					"Reset presets to defaults? Custom presets will be lost")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), MsgCancelled)
					return nil
				}
			}
			if err := container.Repository.SavePresets(cmd.Context(), presets.Defaults()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), MsgPresetsReset)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

func newPresetsImportCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Merge presets from a JSON file, skipping existing ids",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			data, err := readInputFile(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			list, err := container.Repository.Presets(ctx)
			if err != nil {
				return err
			}
			merged, added, err := presets.Import(list, data)
			if err != nil {
				return err
			}
			if err := container.Repository.SavePresets(ctx, merged); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Successfully imported %d new vibes!\n", added)
			return nil
		},
	}
}

func newPresetsExportCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: fmt.Sprintf("Export presets as JSON (default %s, - for stdout)", domain.PresetExportFileName),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest := domain.PresetExportFileName
			if len(args) == 1 {
				dest = args[0]
			}
			list, err := container.Repository.Presets(cmd.Context())
			if err != nil {
				return err
			}
			data, err := presets.Export(list)
			if err != nil {
				return err
			}
			if dest == "-" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			if err := filesystem.WriteFileAtomic(dest, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", dest, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d presets to %s\n", len(list), dest)
			return nil
		},
	}
}

func listPresets(ctx context.Context, out io.Writer, container *app.Container, query string) error {
	if container.Repository == nil {
		return fmt.Errorf(ErrRepositoryUnavailable)
	}
	list, err := container.Repository.Presets(ctx)
	if err != nil {
		return err
	}
	if query != "" {
		list = presets.Search(list, query)
		if len(list) == 0 {
			fmt.Fprintln(out, MsgNoMatches)
			return nil
		}
	}
	if len(list) == 0 {
		fmt.Fprintln(out, MsgNoPresets)
		return nil
	}
	helpers.RenderPresets(out, themeFor(ctx, out, container), list)
	return nil
}

func readInputFile(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
