package cli

import (
	"context"

	kashiapp "github.com/alexanderramin/kashimitra/internal/app"
	"github.com/alexanderramin/kashimitra/internal/credential"
	"github.com/spf13/cobra"
)

// App holds everything the CLI commands need.
type App struct {
	Generator    kashiapp.Generator
	Conversation *kashiapp.Conversation
	Planner      *kashiapp.Planner
	Credentials  credential.Store

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
	// ReadSecret prompts for a value without echoing it.
	ReadSecret func(prompt string) (string, error)
	// CopyToClipboard writes text to the system clipboard.
	CopyToClipboard func(text string) error
	// Width overrides the detected terminal width when > 0.
	Width int
}

// NewApp wires the controllers around a generator and credential store.
func NewApp(gen kashiapp.Generator, store credential.Store) *App {
	return &App{
		Generator:    gen,
		Conversation: kashiapp.NewConversation(gen),
		Planner:      kashiapp.NewPlanner(gen),
		Credentials:  store,
	}
}

// NewRootCmd creates the top-level "kashimitra" command. Run bare on a
// terminal it opens the chat view.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "kashimitra",
		Short:         "Kashi Mitra, your guide to Varanasi",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runChat(cmd.Context(), app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newChatCmd(app),
		newAskCmd(app),
		newPlanCmd(app),
		newKeyCmd(app),
	)

	return root
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
