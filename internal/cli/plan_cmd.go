package cli

import (
	"fmt"
	"strings"

	kashiapp "github.com/alexanderramin/kashimitra/internal/app"
	"github.com/alexanderramin/kashimitra/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	var days, budget, interests string
	var copyResult bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate a Varanasi itinerary",
		Long: "Generate a day-by-day Varanasi itinerary for a number of days and a budget in rupees.\n" +
			"On a terminal, missing fields are asked for interactively.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() && (strings.TrimSpace(days) == "" || strings.TrimSpace(budget) == "") {
				if err := planForm(&days, &budget, &interests).Run(); err != nil {
					return fmt.Errorf("plan form: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			var stop func()
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), kashiapp.LoadingIndicator)
			}
			res, err := app.Planner.Submit(commandContext(cmd), days, budget, interests)
			if stop != nil {
				stop()
			}
			if err != nil {
				if res.State == kashiapp.PlannerInvalid {
					fmt.Fprintln(out, formatter.FormatPlan(res, app.width()))
				}
				return fmt.Errorf("plan: %w", err)
			}

			fmt.Fprintln(out, formatter.FormatPlan(res, app.width()))

			if copyResult {
				if err := app.copyToClipboard(res.Content); err != nil {
					return fmt.Errorf("copying plan: %w", err)
				}
				fmt.Fprintln(out, formatter.Dim("Copied to clipboard."))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&days, "days", "", "number of days")
	cmd.Flags().StringVar(&budget, "budget", "", "total budget in rupees")
	cmd.Flags().StringVar(&interests, "interests", "", "what you would like to see")
	cmd.Flags().BoolVar(&copyResult, "copy", false, "copy the raw itinerary to the clipboard")

	return cmd
}
