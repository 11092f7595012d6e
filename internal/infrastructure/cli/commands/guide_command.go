package commands

import (
	"github.com/spf13/cobra"

	"github.com/doeshing/vibegen/assets"
	"github.com/doeshing/vibegen/internal/app"
	"github.com/doeshing/vibegen/internal/infrastructure/cli/helpers"
)

// NewGuideCommand creates the guide command
func NewGuideCommand(container *app.Container) *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "guide",
		Short: "Explain how VibeGen turns a topic and vibestack into a prompt",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return helpers.RenderMarkdown(out, themeFor(cmd.Context(), out, container), assets.GuideMarkdown, width)
		},
	}

	cmd.Flags().IntVar(&width, "width", DefaultMarkdownWidth, "Word wrap width")
	return cmd
}
