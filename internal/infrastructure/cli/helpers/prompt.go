package helpers

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// PromptForString asks for one line of input; an empty answer yields defaultValue.
func PromptForString(out io.Writer, in io.Reader, promptText string, defaultValue string) (string, error) {
	fmt.Fprint(out, promptText)
	if defaultValue != "" {
		fmt.Fprintf(out, " (default: %s)", defaultValue)
	}
	fmt.Fprint(out, ": ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return defaultValue, nil
	}
	return line, nil
}

// PromptForConfirmation asks a y/N question. Anything but y or yes declines.
func PromptForConfirmation(out io.Writer, in io.Reader, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "y" || line == "yes", nil
}

// ReadText returns inline when set, otherwise the contents of path. A path of
// "-" reads in until EOF.
func ReadText(inline, path string, in io.Reader) (string, error) {
	if path == "" {
		return inline, nil
	}
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(in)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
