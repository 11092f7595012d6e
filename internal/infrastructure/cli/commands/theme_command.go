package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/vibegen/internal/app"
)

// NewThemeCommand creates the theme command
func NewThemeCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light|toggle]",
		Short:     "Show or change the output theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"dark", "light", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dark, err := container.Repository.DarkMode(ctx)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				switch strings.ToLower(args[0]) {
				case "dark":
					dark = true
				case "light":
					dark = false
				case "toggle":
					dark = !dark
				default:
					return fmt.Errorf("unknown theme %q (dark|light|toggle)", args[0])
				}
				if err := container.Repository.SaveDarkMode(ctx, dark); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), themeFor(ctx, cmd.OutOrStdout(), container).ThemeName())
			return nil
		},
	}
}
