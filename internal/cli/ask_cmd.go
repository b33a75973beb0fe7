package cli

import (
	"fmt"
	"strings"

	kashiapp "github.com/alexanderramin/kashimitra/internal/app"
	"github.com/alexanderramin/kashimitra/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newAskCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   `ask "<question>"`,
		Short: "Ask the guide a single question",
		Long:  "Ask Kashi Mitra one question and print the answer. Without an API key the guide answers in simulated mode.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.Join(args, " ")

			var stop func()
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), kashiapp.PendingPlaceholder)
			}
			turn, err := app.Conversation.Submit(commandContext(cmd), question)
			if stop != nil {
				stop()
			}
			if err != nil {
				return fmt.Errorf("ask: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderResponse(turn.Content, app.width()))
			return nil
		},
	}
}
