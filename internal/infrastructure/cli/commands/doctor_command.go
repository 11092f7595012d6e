package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/vibegen/internal/app"
	"github.com/doeshing/vibegen/internal/infrastructure/cli/helpers"
)

// NewDoctorCommand creates the doctor command
func NewDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose environment setup",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.DoctorService == nil {
				return errors.New(ErrDoctorServiceUnavailable)
			}

			ctx := cmd.Context()
			report, err := container.DoctorService.Run(ctx)

			// Display report even if there were errors
			out := cmd.OutOrStdout()
			helpers.RenderDoctorReport(out, themeFor(ctx, out, container), report)

			if err != nil {
				return fmt.Errorf("diagnostics completed with errors: %w", err)
			}
			if problems := report.Problems(); len(problems) > 0 {
				return fmt.Errorf("diagnostics found problems: %s", strings.Join(problems, ", "))
			}
			return nil
		},
	}
}
