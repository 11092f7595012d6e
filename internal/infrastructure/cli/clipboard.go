package cli

import (
	"bytes"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/doeshing/vibegen/internal/ports"
)

// clipboardTools lists candidate commands per platform, in preference order.
var clipboardTools = map[string][][]string{
	"darwin":  {{"pbcopy"}},
	"linux":   {{"wl-copy"}, {"xclip", "-selection", "clipboard"}, {"xsel", "--clipboard", "--input"}},
	"windows": {{"clip.exe"}},
}

// Clipboard implements ports.Clipboard using platform-specific tools.
type Clipboard struct {
	lookPath func(string) (string, error)
}

// NewClipboard builds the clipboard helper.
func NewClipboard() *Clipboard {
	return &Clipboard{lookPath: exec.LookPath}
}

func (c *Clipboard) Enabled() bool {
	return c.tool() != nil
}

// Copy copies text to the system clipboard.
func (c *Clipboard) Copy(text string) error {
	tool := c.tool()
	if tool == nil {
		return fmt.Errorf("no clipboard utility found on %s", runtime.GOOS)
	}
	cmd := exec.Command(tool[0], tool[1:]...)
	cmd.Stdin = bytes.NewBufferString(text)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", tool[0], err, bytes.TrimSpace(out))
	}
	return nil
}

func (c *Clipboard) tool() []string {
	for _, candidate := range clipboardTools[runtime.GOOS] {
		if _, err := c.lookPath(candidate[0]); err == nil {
			return candidate
		}
	}
	return nil
}

var _ ports.Clipboard = (*Clipboard)(nil)
