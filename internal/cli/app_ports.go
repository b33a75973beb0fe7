package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/alexanderramin/kashimitra/internal/cli/formatter"
	"github.com/atotto/clipboard"
	"golang.org/x/term"
)

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) width() int {
	if a.Width > 0 {
		return formatter.ClampWidth(a.Width)
	}
	return formatter.TermWidth()
}

func (a *App) readSecret(prompt string) (string, error) {
	if a.ReadSecret != nil {
		return a.ReadSecret(prompt)
	}
	return readHidden(prompt)
}

func (a *App) copyToClipboard(text string) error {
	if a.CopyToClipboard != nil {
		return a.CopyToClipboard(text)
	}
	if clipboard.Unsupported {
		return errors.New("clipboard is not available on this system")
	}
	return clipboard.WriteAll(text)
}

// readHidden reads one line from the terminal with echo disabled.
func readHidden(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin is not a terminal; pass the key as an argument")
	}
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading key: %w", err)
	}
	return string(b), nil
}
