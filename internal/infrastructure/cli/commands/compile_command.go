package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/vibegen/internal/app"
	"github.com/doeshing/vibegen/internal/application/generate"
)

// NewCompileCommand creates the compile command, which prints the filled
// master template without calling any endpoint.
func NewCompileCommand(container *app.Container) *cobra.Command {
	var input promptInput

	cmd := &cobra.Command{
		Use:   "compile [topic]",
		Short: "Print the compiled instruction that generate would send",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(cmd.Context(), container)
			if err != nil {
				return err
			}
			if err := input.apply(cmd, args, ws, container.Config.GetDefaultDuration()); err != nil {
				return err
			}
			req := ws.Request()
			if err := generate.Validate(req); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), container.Compiler.Compile(req.Topic, req.Vibestack, req.Duration))
			return nil
		},
	}

	input.bind(cmd)
	return cmd
}
