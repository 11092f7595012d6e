package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/doeshing/vibegen/internal/app"
	"github.com/doeshing/vibegen/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// formFlags mark a bare `vibegen --topic ...` invocation as a generation.
var formFlags = []string{"topic", "topic-file", "vibestack", "vibestack-file", "preset"}

// NewRootCmd wires the cobra root command. The container is built in
// PersistentPreRunE, after flags are parsed. The returned closer releases it
// and must be called after Execute whether or not the command failed.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, io.Closer) {
	container := &app.Container{}
	var verbose bool

	root := newRootCommand(container, func(cmd *cobra.Command) error {
		built, err := app.BuildContainer(cmd.Context(), opts.Verbose || verbose)
		if err != nil {
			return err
		}
		*container = *built
		container.Clipboard = NewClipboard()
		return nil
	})
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")
	root.SetContext(ctx)
	root.SetIn(os.Stdin)
	return root, container
}

// newRootCommand assembles the command tree around container. setup runs
// before every command except version and help; nil means the container is ready.
func newRootCommand(container *app.Container, setup func(*cobra.Command) error) *cobra.Command {
	generateCmd := commands.NewGenerateCommand(container)

	root := &cobra.Command{
		Use:   "vibegen [topic]",
		Short: "VibeGen - cinematic video prompt compiler",
		Long: "VibeGen merges a topic and a vibestack style description into a master template\n" +
			"and asks a generative model for a production-ready video prompt.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if setup == nil || skipsSetup[cmd.Name()] {
				return nil
			}
			return setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !anyChanged(cmd, formFlags...) {
				return cmd.Help()
			}
			return generateCmd.RunE(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.Flags().AddFlagSet(generateCmd.Flags())

	root.AddCommand(
		generateCmd,
		commands.NewCompileCommand(container),
		commands.NewPresetsCommand(container),
		commands.NewHistoryCommand(container),
		commands.NewKeyCommand(container),
		commands.NewThemeCommand(container),
		commands.NewModelsCommand(container),
		commands.NewGuideCommand(container),
		commands.NewDoctorCommand(container),
		commands.NewConfigCommand(container),
		commands.NewVersionCommand(),
	)
	return root
}

var skipsSetup = map[string]bool{"version": true, "help": true}

func anyChanged(cmd *cobra.Command, names ...string) bool {
	for _, name := range names {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}
