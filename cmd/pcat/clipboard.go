package main

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

type clipboardTool struct {
	name string
	args []string
}

func runClipboardCommand(tool clipboardTool, data string) error {
	cmd := exec.Command(tool.name, tool.args...)
	cmd.Stdin = strings.NewReader(data)
	cmd.Stdout = io.Discard
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("%s failed: %s", tool.name, msg)
		}
		return fmt.Errorf("%s failed: %w", tool.name, err)
	}
	return nil
}

// copyToClipboard pipes data into the first clipboard utility found for the
// current platform.
func copyToClipboard(data string) error {
	var candidates []clipboardTool
	switch runtime.GOOS {
	case "darwin":
		candidates = []clipboardTool{{name: "pbcopy"}}
	case "windows":
		candidates = []clipboardTool{{name: "clip"}}
	default:
		candidates = []clipboardTool{
			{name: "wl-copy"},
			{name: "xclip", args: []string{"-selection", "clipboard"}},
			{name: "xsel", args: []string{"--clipboard", "--input"}},
			{name: "clip.exe"},
		}
	}

	var tried []string
	for _, tool := range candidates {
		if path, err := exec.LookPath(tool.name); err == nil {
			tool.name = path
			return runClipboardCommand(tool, data)
		}
		tried = append(tried, tool.name)
	}
	return fmt.Errorf("no clipboard utility found (tried %s)", strings.Join(tried, ", "))
}

// osc52Sequence wraps data in an OSC 52 escape so the terminal on the near
// side of an SSH session sets the clipboard. tmux and screen need the
// sequence wrapped in their passthrough envelopes.
func osc52Sequence(data string) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(data))
	seq := fmt.Sprintf("\x1b]52;c;%s\x07", encoded)
	if os.Getenv("TMUX") != "" {
		return "\x1bPtmux;" + seq + "\x1b\\"
	}
	if strings.HasPrefix(os.Getenv("TERM"), "screen") {
		return "\x1bP" + seq + "\x1b\\"
	}
	return seq
}

func copyToOSC52(data string) error {
	if _, err := io.WriteString(os.Stdout, osc52Sequence(data)); err != nil {
		return fmt.Errorf("failed to write OSC 52 sequence: %w", err)
	}
	return nil
}
