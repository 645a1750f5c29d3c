package root

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/productivity-app/backend/config"
	"github.com/productivity-app/backend/internal/client/api"
	"github.com/productivity-app/backend/internal/client/ui"
	"github.com/productivity-app/backend/internal/client/viewmodel"
)

const chartWidth = 30

func newDashboardCmd(cfg *config.Config, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show stats, recent activity and the goal chart",
		RunE: withApp(cfg, opts, func(cmd *cobra.Command, a *app, args []string) error {
			userID, err := a.userID()
			if err != nil {
				return err
			}
			o, err := a.fetchOverview(cmd.Context(), userID)
			if err != nil {
				return loadFailed("dashboard", err)
			}

			stats, err := viewmodel.NewDashboardStats(o.goals, o.requests)
			if err != nil {
				return err
			}
			slices, err := viewmodel.ProgressChart(o.goals)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Dashboard"))
			fmt.Fprintln(out, ui.Panel.Render(strings.Join([]string{
				ui.LabelValue("Total goals", stats.TotalGoals),
				ui.LabelValue("Active", stats.Active),
				ui.LabelValue("Completed", stats.Completed),
				ui.LabelValue("Pending buddy requests", stats.PendingBuddyRequests),
			}, "\n")))
			fmt.Fprintln(out, "")

			writeActivity(out, viewmodel.RecentActivity(o.goals, o.checkpoints))
			fmt.Fprintln(out, "")
			writeChart(out, slices)
			return nil
		}),
	}
}

func writeActivity(out io.Writer, items []viewmodel.Activity) {
	fmt.Fprintln(out, ui.H2.Render(ui.IconActivity+" Recent activity"))
	if len(items) == 0 {
		fmt.Fprintln(out, ui.Muted.Render("No activity yet."))
		return
	}
	for _, item := range items {
		icon := ui.IconGoal
		if item.Kind == viewmodel.ActivityCheckpoint {
			icon = ui.IconCheckpoint
		}
		fmt.Fprintf(out, "- %s %s %s %s\n", icon, item.Title, ui.StatusText(item.Status), ui.Muted.Render(item.Date.String()))
	}
}

func writeChart(out io.Writer, slices []viewmodel.ChartSlice) {
	fmt.Fprintln(out, ui.H2.Render(ui.IconChart+" Goal progress"))
	if len(slices) == 0 {
		fmt.Fprintln(out, ui.Muted.Render("No goals yet."))
		return
	}
	for _, s := range slices {
		share, _ := s.Share.Float64()
		fmt.Fprintf(out, "%-10s %s %d (%s%%)\n", s.Label, ui.Bar(share, chartWidth, s.Color), s.Count, s.Share.StringFixed(2))
	}
}

// loadFailed turns a query error into the command error. A rejected token
// has already been reported by the session observer.
func loadFailed(what string, err error) error {
	if api.IsUnauthorized(err) {
		return errReported
	}
	return fmt.Errorf("failed to load %s: %w", what, err)
}
