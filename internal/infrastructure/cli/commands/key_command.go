package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/vibegen/internal/app"
	"github.com/doeshing/vibegen/internal/application/credential"
	"github.com/doeshing/vibegen/internal/infrastructure/cli/helpers"
)

// NewKeyCommand creates the key command for the user-supplied API key
func NewKeyCommand(container *app.Container) *cobra.Command {
	keyCmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the custom API key",
	}

	setCmd := &cobra.Command{
		Use:   "set [key]",
		Short: "Save a custom API key (prompted when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := ""
			if len(args) == 1 {
				key = args[0]
			} else {
				var err error
				key, err = helpers.PromptForString(cmd.OutOrStdout(), cmd.InOrStdin(), "API key", "")
				if err != nil {
					return err
				}
			}
			key = strings.TrimSpace(key)
			if err := container.Repository.SaveAPIKey(cmd.Context(), key); err != nil {
				return err
			}
			if key == "" {
				fmt.Fprintln(cmd.OutOrStdout(), MsgKeyCleared)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved key %s\n", credential.Mask(key))
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove the custom API key",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.Repository.SaveAPIKey(cmd.Context(), ""); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), MsgKeyCleared)
			return nil
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show which key generate would use",
		RunE: func(cmd *cobra.Command, args []string) error {
			custom, err := container.Repository.APIKey(cmd.Context())
			if err != nil {
				return err
			}
			env := credential.NewEnvSource(container.Config.GetCredentialEnvVars()...)
			key, origin, ok := credential.Resolve(custom, env)
			out := cmd.OutOrStdout()
			switch {
			case !ok:
				fmt.Fprintf(out, "No key: none saved and %s unset\n", strings.Join(env.Vars, ", "))
			case origin == credential.OriginCustom:
				fmt.Fprintf(out, "Using custom key %s\n", credential.Mask(key))
			default:
				fmt.Fprintf(out, "Using %s from %s\n", credential.Mask(key), env.Var())
			}
			return nil
		},
	}

	keyCmd.AddCommand(setCmd, clearCmd, statusCmd)
	return keyCmd
}
