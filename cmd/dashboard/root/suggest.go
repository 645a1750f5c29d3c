package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/productivity-app/backend/config"
	"github.com/productivity-app/backend/internal/client/mutation"
	"github.com/productivity-app/backend/internal/client/ui"
)

func newSuggestCmd(cfg *config.Config, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <goalId>",
		Short: "Ask for checkpoint ideas for a goal",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(cfg, opts, func(cmd *cobra.Command, a *app, args []string) error {
			id, err := parseID("goal id", args[0])
			if err != nil {
				return err
			}
			list, err := a.client.Goals().Suggest(cmd.Context(), id)
			if err != nil {
				a.notifier.Error(mutation.FailureMessage(err, "Failed to get suggestions"))
				return errReported
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Suggested checkpoints"))
			if len(list.Suggestions) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No suggestions."))
				return nil
			}
			for _, s := range list.Suggestions {
				fmt.Fprintf(out, "- %s %s\n", s.Title, ui.Muted.Render("due "+s.DueDate.String()))
				if s.Description != "" {
					fmt.Fprintf(out, "  %s\n", ui.Muted.Render(s.Description))
				}
			}
			fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("Add one with: dashboard checkpoints create %s <title> --due YYYY-MM-DD", id)))
			return nil
		}),
	}
}
