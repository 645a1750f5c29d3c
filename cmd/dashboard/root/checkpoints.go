package root

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/productivity-app/backend/config"
	"github.com/productivity-app/backend/internal/client/api"
	"github.com/productivity-app/backend/internal/client/model"
	"github.com/productivity-app/backend/internal/client/ui"
	"github.com/productivity-app/backend/internal/client/viewmodel"
	"github.com/productivity-app/backend/internal/domain/valueobject"
)

func newCheckpointsCmd(cfg *config.Config, opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkpoints",
		Short: "List and manage checkpoints",
	}
	cmd.AddCommand(
		newCheckpointsListCmd(cfg, opts),
		newCheckpointsCreateCmd(cfg, opts),
		newCheckpointsCompleteCmd(cfg, opts),
		newCheckpointsDeleteCmd(cfg, opts),
	)
	return cmd
}

func newCheckpointsListCmd(cfg *config.Config, opts *globalOptions) *cobra.Command {
	var goal string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List checkpoints, optionally for one goal",
		RunE: withApp(cfg, opts, func(cmd *cobra.Command, a *app, args []string) error {
			if _, err := a.userID(); err != nil {
				return err
			}
			goalID := uuid.Nil
			if goal != "" {
				id, err := parseID("goal id", goal)
				if err != nil {
					return err
				}
				goalID = id
			}

			checkpoints, err := a.fetchCheckpoints(cmd.Context(), goalID)
			if err != nil {
				return loadFailed("checkpoints", err)
			}
			stats, err := viewmodel.NewCheckpointStats(checkpoints)
			if err != nil {
				return err
			}
			p, err := viewmodel.PartitionCheckpoints(checkpoints)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconCheckpoint, "Checkpoints"))
			fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("%d total, %d pending, %d completed", stats.Total, stats.Pending, stats.Completed)))
			groups := []struct {
				status model.CheckpointStatus
				items  []model.Checkpoint
			}{
				{model.CheckpointOverdue, p.Overdue},
				{model.CheckpointInProgress, p.InProgress},
				{model.CheckpointPending, p.Pending},
				{model.CheckpointCompleted, p.Completed},
			}
			for _, group := range groups {
				if len(group.items) == 0 {
					continue
				}
				fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("%s (%d)", group.status, len(group.items))))
				for _, c := range group.items {
					fmt.Fprintf(out, "- %s %s %s %s\n",
						c.Title,
						ui.StatusText(string(c.Status)),
						ui.Muted.Render("due "+c.DueDate.String()),
						ui.Muted.Render(c.ID.String()),
					)
				}
			}
			return nil
		}),
	}

	cmd.Flags().StringVarP(&goal, "goal", "g", "", "Goal id to filter by")
	return cmd
}

func newCheckpointsCreateCmd(cfg *config.Config, opts *globalOptions) *cobra.Command {
	var description, due string

	cmd := &cobra.Command{
		Use:   "create <goalId> <title>",
		Short: "Add a checkpoint to a goal",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(cfg, opts, func(cmd *cobra.Command, a *app, args []string) error {
			goalID, err := parseID("goal id", args[0])
			if err != nil {
				return err
			}
			dueDate, err := valueobject.ParseDate(due)
			if err != nil {
				return fmt.Errorf("--due: %w", err)
			}
			_, err = a.mutations.CreateCheckpoint(cmd.Context(), api.CheckpointCreate{
				GoalID:      goalID,
				Title:       args[1],
				Description: description,
				DueDate:     dueDate,
			})
			return settle(err)
		}),
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Details")
	cmd.Flags().StringVar(&due, "due", "", "Due date YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("due")
	return cmd
}

func newCheckpointsCompleteCmd(cfg *config.Config, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <checkpointId>",
		Short: "Mark a checkpoint completed",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(cfg, opts, func(cmd *cobra.Command, a *app, args []string) error {
			id, err := parseID("checkpoint id", args[0])
			if err != nil {
				return err
			}
			_, err = a.mutations.CompleteCheckpoint(cmd.Context(), id)
			return settle(err)
		}),
	}
}

func newCheckpointsDeleteCmd(cfg *config.Config, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <checkpointId>",
		Short: "Delete a checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(cfg, opts, func(cmd *cobra.Command, a *app, args []string) error {
			id, err := parseID("checkpoint id", args[0])
			if err != nil {
				return err
			}
			_, err = a.mutations.DeleteCheckpoint(cmd.Context(), id)
			return settle(err)
		}),
	}
}
