package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/vibegen/internal/app"
	"github.com/doeshing/vibegen/internal/infrastructure/cli/helpers"
)

// NewModelsCommand creates the models command with all subcommands
func NewModelsCommand(container *app.Container) *cobra.Command {
	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "Show the generation model catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listModels(cmd, container)
		},
	}

	modelsCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List configured models",
			RunE: func(cmd *cobra.Command, args []string) error {
				return listModels(cmd, container)
			},
		},
		&cobra.Command{
			Use:   "use <model-id>",
			Short: "Set default model",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return newConfigSetDefaultModelCommand(container).RunE(cmd, args)
			},
		},
	)

	return modelsCmd
}

// listModels prints the catalog with the default marked
func listModels(cmd *cobra.Command, container *app.Container) error {
	out := cmd.OutOrStdout()
	if len(container.Config.Models) == 0 {
		fmt.Fprintln(out, "No models configured.")
		return nil
	}
	theme := themeFor(cmd.Context(), out, container)
	helpers.RenderModels(out, theme, container.Config.Models, container.Config.ResolveModelID(""))
	return nil
}
