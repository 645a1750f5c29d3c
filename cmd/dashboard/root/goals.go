package root

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/productivity-app/backend/config"
	"github.com/productivity-app/backend/internal/client/api"
	"github.com/productivity-app/backend/internal/client/model"
	"github.com/productivity-app/backend/internal/client/mutation"
	"github.com/productivity-app/backend/internal/client/ui"
	"github.com/productivity-app/backend/internal/client/viewmodel"
	"github.com/productivity-app/backend/internal/domain/valueobject"
)

func newGoalsCmd(cfg *config.Config, opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "List and manage goals",
	}
	cmd.AddCommand(
		newGoalsListCmd(cfg, opts),
		newGoalsCreateCmd(cfg, opts),
		newGoalsCompleteCmd(cfg, opts),
		newGoalsStatusCmd(cfg, opts),
		newGoalsDeleteCmd(cfg, opts),
	)
	return cmd
}

func newGoalsListCmd(cfg *config.Config, opts *globalOptions) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your goals grouped by status",
		RunE: withApp(cfg, opts, func(cmd *cobra.Command, a *app, args []string) error {
			var filter model.GoalStatus
			if status != "" {
				parsed, err := model.ParseGoalStatus(strings.ToUpper(status))
				if err != nil {
					return err
				}
				filter = parsed
			}

			userID, err := a.userID()
			if err != nil {
				return err
			}
			goals, err := a.fetchGoals(cmd.Context(), userID)
			if err != nil {
				return loadFailed("goals", err)
			}
			p, err := viewmodel.PartitionGoals(goals)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconGoal, fmt.Sprintf("Goals (%d)", p.Total())))
			for _, s := range model.GoalStatuses {
				if filter != "" && s != filter {
					continue
				}
				group := p.ByStatus(s)
				if len(group) == 0 {
					continue
				}
				fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("%s (%d)", s, len(group))))
				for _, g := range group {
					writeGoal(out, g)
				}
			}
			return nil
		}),
	}

	cmd.Flags().StringVarP(&status, "status", "s", "", "Only show goals with this status")
	return cmd
}

func writeGoal(out io.Writer, g model.Goal) {
	fmt.Fprintf(out, "- %s %s %s %s\n",
		g.Title,
		ui.StatusText(string(g.Status)),
		ui.Muted.Render(fmt.Sprintf("%d%% %s..%s", g.Progress, g.StartDate, g.EndDate)),
		ui.Muted.Render(g.ID.String()),
	)
}

func newGoalsCreateCmd(cfg *config.Config, opts *globalOptions) *cobra.Command {
	var description, start, end string

	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a goal",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(cfg, opts, func(cmd *cobra.Command, a *app, args []string) error {
			userID, err := a.userID()
			if err != nil {
				return err
			}
			request := api.GoalCreate{Title: args[0], Description: description, StartDate: valueobject.Today()}
			if start != "" {
				if request.StartDate, err = valueobject.ParseDate(start); err != nil {
					return err
				}
			}
			if request.EndDate, err = valueobject.ParseDate(end); err != nil {
				return fmt.Errorf("--end: %w", err)
			}

			_, err = a.mutations.CreateGoal(cmd.Context(), userID, request)
			return settle(err)
		}),
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "What the goal is about")
	cmd.Flags().StringVar(&start, "start", "", "Start date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&end, "end", "", "End date YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func newGoalsCompleteCmd(cfg *config.Config, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <goalId>",
		Short: "Mark a goal completed",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(cfg, opts, func(cmd *cobra.Command, a *app, args []string) error {
			id, err := parseID("goal id", args[0])
			if err != nil {
				return err
			}
			if _, err := a.mutations.CompleteGoal(cmd.Context(), id); err != nil {
				return settle(err)
			}
			return a.showGoal(cmd, id)
		}),
	}
}

func newGoalsStatusCmd(cfg *config.Config, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status <goalId> <ACTIVE|COMPLETED|PAUSED|CANCELLED>",
		Short: "Change a goal's status",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(cfg, opts, func(cmd *cobra.Command, a *app, args []string) error {
			id, err := parseID("goal id", args[0])
			if err != nil {
				return err
			}
			status, err := model.ParseGoalStatus(strings.ToUpper(args[1]))
			if err != nil {
				return err
			}
			if _, err := a.mutations.ChangeGoalStatus(cmd.Context(), id, status); err != nil {
				return settle(err)
			}
			return a.showGoal(cmd, id)
		}),
	}
}

func newGoalsDeleteCmd(cfg *config.Config, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <goalId>",
		Short: "Delete a goal after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(cfg, opts, func(cmd *cobra.Command, a *app, args []string) error {
			id, err := parseID("goal id", args[0])
			if err != nil {
				return err
			}
			m, err := a.mutations.DeleteGoal(cmd.Context(), id)
			if err != nil {
				return settle(err)
			}
			if m.State() == mutation.Cancelled {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Cancelled."))
			}
			return nil
		}),
	}
}

// showGoal prints the goal as the refreshed goals query now holds it.
func (a *app) showGoal(cmd *cobra.Command, id uuid.UUID) error {
	userID, err := a.userID()
	if err != nil {
		return err
	}
	goals, err := a.fetchGoals(cmd.Context(), userID)
	if err != nil {
		return loadFailed("goals", err)
	}
	for _, g := range goals {
		if g.ID == id {
			writeGoal(cmd.OutOrStdout(), g)
			return nil
		}
	}
	return nil
}

// settle maps a mutation error to the command result. Failures were already
// shown as toasts.
func settle(err error) error {
	if err == nil || errors.Is(err, mutation.ErrMutationInFlight) {
		return err
	}
	return errReported
}
