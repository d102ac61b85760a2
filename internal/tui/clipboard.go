package tui

import (
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	copiedLabel      = "✅ Copied!"
	copyLabel        = "📋 Copy"
	copiedResetAfter = 2 * time.Second
	msgCopyFailed    = "Failed to copy to clipboard"
)

// clipboardWriter is swapped out in tests.
var clipboardWriter = copyToClipboard

type copiedMsg struct {
	seq int
	err error
}

type copiedResetMsg struct{ seq int }

func copyCmd(seq int, text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{seq: seq, err: clipboardWriter(text)}
	}
}

// copiedResetCmd clears the acknowledgement unless a newer copy superseded it.
func copiedResetCmd(seq int) tea.Cmd {
	return tea.Tick(copiedResetAfter, func(time.Time) tea.Msg { return copiedResetMsg{seq: seq} })
}

func copyToClipboard(s string) error {
	s = strings.ReplaceAll(s, "\r\n", "\n")

	switch runtime.GOOS {
	case "darwin":
		return runClipboardCmd("pbcopy", nil, s)
	case "windows":
		if err := runClipboardCmd("cmd", []string{"/c", "clip"}, s); err == nil {
			return nil
		}
		return runClipboardCmd("powershell", []string{"-NoProfile", "-Command", "Set-Clipboard"}, s)
	default:
		// Wayland first, then X11.
		if err := runClipboardCmd("wl-copy", nil, s); err == nil {
			return nil
		}
		if err := runClipboardCmd("xclip", []string{"-selection", "clipboard"}, s); err == nil {
			return nil
		}
		return runClipboardCmd("xsel", []string{"--clipboard", "--input"}, s)
	}
}

func runClipboardCmd(name string, args []string, stdin string) error {
	if _, err := exec.LookPath(name); err != nil {
		return err
	}
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	if err := cmd.Run(); err != nil {
		return errors.New(name + ": " + err.Error())
	}
	return nil
}
