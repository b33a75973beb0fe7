package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newChatCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Open the interactive chat",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(commandContext(cmd), app)
		},
	}
}

func runChat(ctx context.Context, app *App) error {
	if ctx == nil {
		ctx = context.Background()
	}
	view := newChatView(ctx, app)
	defer view.cancel()

	p := tea.NewProgram(view, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
