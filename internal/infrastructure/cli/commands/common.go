package commands

import (
	"context"
	"errors"
	"io"

	"github.com/doeshing/vibegen/internal/app"
	"github.com/doeshing/vibegen/internal/infrastructure/cli/helpers"
	"github.com/doeshing/vibegen/internal/session"
)

// loadWorkspace reads the persisted state into a workspace.
func loadWorkspace(ctx context.Context, container *app.Container) (*session.Workspace, error) {
	if container.Repository == nil {
		return nil, errors.New(ErrRepositoryUnavailable)
	}
	return container.Repository.Load(ctx)
}

// themeFor returns the stored theme bound to out.
func themeFor(ctx context.Context, out io.Writer, container *app.Container) helpers.Theme {
	dark := true
	if container.Repository != nil {
		if d, err := container.Repository.DarkMode(ctx); err == nil {
			dark = d
		}
	}
	return helpers.NewTheme(out, dark)
}
