package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/vibegen/internal/app"
	configapp "github.com/doeshing/vibegen/internal/application/config"
	"github.com/doeshing/vibegen/internal/domain"
	configinfra "github.com/doeshing/vibegen/internal/infrastructure/config"
)

const msgNoDifferencesFromDefault = "No differences from default configuration."

// NewConfigCommand creates the config command with all subcommands
func NewConfigCommand(container *app.Container) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect VibeGen configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfiguration(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}

	configCmd.AddCommand(
		newConfigShowCommand(container),
		newConfigPathCommand(container),
		newConfigValidateCommand(container),
		newConfigDiffCommand(container),
		newConfigSetDefaultModelCommand(container),
		newConfigSetDefaultDurationCommand(container),
	)

	return configCmd
}

// newConfigShowCommand creates the 'config show' subcommand
func newConfigShowCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show full configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfiguration(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}
}

// newConfigPathCommand creates the 'config path' subcommand
func newConfigPathCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := configLoader(container)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), loader.Path())
			return nil
		},
	}
}

// newConfigValidateCommand creates the 'config validate' subcommand
func newConfigValidateCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := container.ConfigProvider.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}
			if err := configapp.Validate(cfg); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), MsgConfigurationValid)
			return nil
		},
	}
}

// newConfigDiffCommand creates the 'config diff' subcommand
func newConfigDiffCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "diff",
		Short: "Show diff versus default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigurationDiff(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}
}

// newConfigSetDefaultModelCommand creates the 'config set-default-model' subcommand
func newConfigSetDefaultModelCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "set-default-model <model-id>",
		Short: "Select the model used when --model is omitted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfiguration(cmd.Context(), cmd.OutOrStdout(), container, func(cfg *domain.Config) error {
				return cfg.SetDefaultModel(args[0])
			})
		},
	}
}

// newConfigSetDefaultDurationCommand creates the 'config set-default-duration' subcommand
func newConfigSetDefaultDurationCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:       "set-default-duration <5s|8s|10s|15s>",
		Short:     "Select the duration used when --duration is omitted",
		Args:      cobra.ExactArgs(1),
		ValidArgs: domain.DurationOptions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfiguration(cmd.Context(), cmd.OutOrStdout(), container, func(cfg *domain.Config) error {
				return cfg.SetDefaultDuration(args[0])
			})
		},
	}
}

// showConfiguration displays the full configuration in YAML format
func showConfiguration(ctx context.Context, out io.Writer, container *app.Container) error {
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	_, err = out.Write(data)
	return err
}

// showConfigurationDiff compares the loaded configuration with the defaults
func showConfigurationDiff(ctx context.Context, out io.Writer, container *app.Container) error {
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	defaults, err := configinfra.Defaults()
	if err != nil {
		return err
	}
	diff := cmp.Diff(defaults, cfg)
	if diff == "" {
		fmt.Fprintln(out, msgNoDifferencesFromDefault)
		return nil
	}
	fmt.Fprintln(out, "Differences (-default +current):")
	fmt.Fprint(out, diff)
	return nil
}

// updateConfiguration loads, mutates, validates and saves the config file
func updateConfiguration(ctx context.Context, out io.Writer, container *app.Container, mutate func(*domain.Config) error) error {
	loader, err := configLoader(container)
	if err != nil {
		return err
	}
	cfg, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := mutate(&cfg); err != nil {
		return err
	}
	if err := configapp.Validate(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if err := loader.Save(ctx, cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	container.Config = cfg
	fmt.Fprintf(out, "Updated %s\n", loader.Path())
	return nil
}

func configLoader(container *app.Container) (*configinfra.FileLoader, error) {
	if container.ConfigLoader == nil {
		return nil, errors.New(ErrConfigLoaderUnavailable)
	}
	return container.ConfigLoader, nil
}
