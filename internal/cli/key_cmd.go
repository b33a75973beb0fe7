package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/kashimitra/internal/cli/formatter"
	"github.com/alexanderramin/kashimitra/internal/credential"
	"github.com/spf13/cobra"
)

func newKeyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the Gemini API key",
		Long: "Store, clear or inspect the Gemini API key. With a key the guide answers live;\n" +
			"without one it runs in simulated mode.",
	}
	cmd.AddCommand(
		newKeySetCmd(app),
		newKeyClearCmd(app),
		newKeyStatusCmd(app),
	)
	return cmd
}

func newKeySetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set [key]",
		Short: "Store the API key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var value string
			switch {
			case len(args) == 1:
				value = args[0]
			case app.interactive():
				v, err := app.readSecret("Gemini API key: ")
				if err != nil {
					return err
				}
				value = v
			default:
				v, err := readLine(cmd.InOrStdin())
				if err != nil {
					return err
				}
				value = v
			}

			if err := app.Credentials.Set(commandContext(cmd), strings.TrimSpace(value)); err != nil {
				if errors.Is(err, credential.ErrEmptyCredential) {
					return fmt.Errorf("no key given")
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render("Key saved.")+" "+formatter.Dim("Answers now come from Gemini."))
			return nil
		},
	}
}

func newKeyClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the stored API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Credentials.Clear(commandContext(cmd)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Key cleared. "+formatter.Dim("Simulated mode is active."))
			return nil
		},
	}
}

func newKeyStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cred, ok, err := app.Credentials.Get(commandContext(cmd))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatKeyStatus(ok, credential.Mask(cred)))
			return nil
		},
	}
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading key: %w", err)
	}
	return strings.TrimSpace(line), nil
}
