package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/doeshing/vibegen/internal/app"
	"github.com/doeshing/vibegen/internal/domain"
)

func TestVersionSkipsContainerSetup(t *testing.T) {
	setupCalls := 0
	root := newRootCommand(&app.Container{}, func(*cobra.Command) error {
		setupCalls++
		return errors.New("setup should not run")
	})

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("version error = %v", err)
	}
	if setupCalls != 0 || !strings.Contains(out.String(), "VibeGen version") {
		t.Errorf("setup calls = %d, output %q", setupCalls, out.String())
	}
}

func TestSetupErrorStopsCommand(t *testing.T) {
	root := newRootCommand(&app.Container{}, func(*cobra.Command) error {
		return errors.New("config unreadable")
	})
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"history", "list"})
	if err := root.ExecuteContext(context.Background()); err == nil || err.Error() != "config unreadable" {
		t.Fatalf("err = %v", err)
	}
}

func TestBareRootShowsHelp(t *testing.T) {
	root := newRootCommand(&app.Container{}, nil)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "vibegen [topic]") {
		t.Errorf("help output = %q", out.String())
	}
}

func TestRootFormFlagsDelegateToGenerate(t *testing.T) {
	root := newRootCommand(&app.Container{}, nil)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--topic", "A fox", "--vibestack", "noir"})

	err := root.ExecuteContext(context.Background())
	if err == nil || !strings.Contains(err.Error(), "state store unavailable") {
		t.Fatalf("err = %v, want the generate path to run", err)
	}
}

func TestClipboardToolSelection(t *testing.T) {
	missing := &Clipboard{lookPath: func(string) (string, error) { return "", errors.New("not found") }}
	if missing.Enabled() {
		t.Error("clipboard without tools should be disabled")
	}
	if err := missing.Copy("x"); err == nil {
		t.Error("Copy() without tools should fail")
	}

	if runtime.GOOS != "linux" {
		t.Skip("tool preference is only asserted on linux")
	}
	c := &Clipboard{lookPath: func(name string) (string, error) {
		if name == "xclip" {
			return "/usr/bin/xclip", nil
		}
		return "", errors.New("not found")
	}}
	if got := c.tool(); len(got) == 0 || got[0] != "xclip" {
		t.Errorf("tool() = %v, want xclip", got)
	}
}

func TestCloserReleasesStoreAfterFailedCommand(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("VIBEGEN_CONFIG", filepath.Join(home, "config.yaml"))

	ctx := context.Background()
	root, closer := NewRootCmd(ctx, Options{})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"history", "show", "no-such-id"})

	if err := root.ExecuteContext(ctx); err == nil {
		t.Fatal("expected the command to fail")
	}
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	container, ok := closer.(*app.Container)
	if !ok || container.StateStore == nil {
		t.Fatalf("closer should be the built container, got %T", closer)
	}
	if _, _, err := container.StateStore.Get(ctx, domain.KeyHistory); err == nil {
		t.Error("state store still usable after Close")
	}
}
