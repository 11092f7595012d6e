package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/vibegen/internal/app"
	"github.com/doeshing/vibegen/internal/application/presets"
	"github.com/doeshing/vibegen/internal/infrastructure/cli/helpers"
	"github.com/doeshing/vibegen/internal/session"
)

// ErrGenerationFailed is returned after a failed generation has been rendered.
var ErrGenerationFailed = errors.New("generation failed")

// promptInput gathers the request fields shared by generate and compile.
type promptInput struct {
	topic         string
	topicFile     string
	vibestack     string
	vibestackFile string
	presetRefs    []string
	duration      string
}

func (p *promptInput) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&p.topic, "topic", "t", "", "Topic or script (positional args are used when omitted)")
	cmd.Flags().StringVar(&p.topicFile, "topic-file", "", "Read the topic from a file (- for stdin)")
	cmd.Flags().StringVarP(&p.vibestack, "vibestack", "s", "", "Vibestack style description")
	cmd.Flags().StringVar(&p.vibestackFile, "vibestack-file", "", "Read the vibestack from a file (- for stdin)")
	cmd.Flags().StringSliceVarP(&p.presetRefs, "preset", "p", nil, "Apply a preset by id or name (repeatable)")
	cmd.Flags().StringVarP(&p.duration, "duration", "d", "", "Clip duration: 5s, 8s, 10s or 15s (default from config)")
}

// apply fills the workspace form from flags, files and presets.
func (p *promptInput) apply(cmd *cobra.Command, args []string, ws *session.Workspace, defaultDuration string) error {
	topic, err := helpers.ReadText(p.topic, p.topicFile, cmd.InOrStdin())
	if err != nil {
		return err
	}
	if topic == "" && len(args) > 0 {
		topic = strings.Join(args, " ")
	}
	vibestack, err := helpers.ReadText(p.vibestack, p.vibestackFile, cmd.InOrStdin())
	if err != nil {
		return err
	}

	ws.Topic = topic
	ws.Vibestack = vibestack
	for _, ref := range p.presetRefs {
		preset, ok := presets.Find(ws.Presets, ref)
		if !ok {
			return fmt.Errorf(ErrPresetNotFound, ref)
		}
		ws.ApplyPreset(preset)
	}

	ws.Duration = p.duration
	if ws.Duration == "" {
		ws.Duration = defaultDuration
	}
	return nil
}

// NewGenerateCommand creates the generate command
func NewGenerateCommand(container *app.Container) *cobra.Command {
	var (
		input   promptInput
		model   string
		copyOut bool
		raw     bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:     "generate [topic]",
		Aliases: []string{"gen"},
		Short:   "Compile a topic and vibestack into a cinematic video prompt",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			ws, err := loadWorkspace(ctx, container)
			if err != nil {
				return err
			}
			if err := input.apply(cmd, args, ws, container.Config.GetDefaultDuration()); err != nil {
				return err
			}
			ws.ModelID = container.Config.ResolveModelID(model)

			opts := generateOptions{
				copy: copyOut || container.Config.Preferences.CopyToClipboard,
				raw:  raw,
			}
			return runGenerate(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), container, ws, opts)
		},
	}

	input.bind(cmd)
	cmd.Flags().StringVarP(&model, "model", "m", "", "Model id (default from config)")
	cmd.Flags().BoolVarP(&copyOut, "copy", "c", false, "Copy the generated prompt to the clipboard")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print only the generated prompt")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Abort the request after this long (0 waits indefinitely)")

	return cmd
}

type generateOptions struct {
	copy bool
	raw  bool
}

// runGenerate submits the workspace request and persists a successful result.
func runGenerate(ctx context.Context, out, errOut io.Writer, container *app.Container, ws *session.Workspace, opts generateOptions) error {
	if container.GenerateService == nil {
		return errors.New(ErrGenerateUnavailable)
	}
	theme := helpers.NewTheme(out, ws.DarkMode)

	spinner := helpers.NewSpinner(errOut, "Compiling Vision...")
	defer spinner.Stop()
	svc := *container.GenerateService
	svc.Observer = spinner.Observe

	result, err := ws.Generate(ctx, &svc)
	if err != nil {
		return err
	}
	if result.Err != nil {
		helpers.RenderFailure(errOut, helpers.NewTheme(errOut, ws.DarkMode), result.Err)
		return ErrGenerationFailed
	}

	if err := container.Repository.SaveHistory(ctx, ws.History); err != nil {
		container.Logger.Warn("history not saved", map[string]interface{}{"error": err.Error()})
	}

	helpers.RenderResult(out, theme, result.Text, opts.raw)
	if opts.copy {
		copyToClipboard(errOut, container, result.Text)
	}
	return nil
}

func copyToClipboard(out io.Writer, container *app.Container, text string) {
	if container.Clipboard == nil || !container.Clipboard.Enabled() {
		fmt.Fprintln(out, ErrClipboardUnavailable)
		return
	}
	if err := container.Clipboard.Copy(text); err != nil {
		fmt.Fprintf(out, "copy failed: %v\n", err)
		return
	}
	fmt.Fprintln(out, MsgCopied)
}
