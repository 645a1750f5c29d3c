package root

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/productivity-app/backend/config"
	"github.com/productivity-app/backend/internal/client/model"
	"github.com/productivity-app/backend/internal/client/ui"
	"github.com/productivity-app/backend/internal/client/viewmodel"
)

func newBuddiesCmd(cfg *config.Config, opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buddies",
		Short: "Manage accountability buddy requests",
	}
	cmd.AddCommand(
		newBuddiesListCmd(cfg, opts),
		newBuddiesSendCmd(cfg, opts),
		newBuddiesRespondCmd(cfg, opts, "accept", "Accept a pending buddy request", true),
		newBuddiesRespondCmd(cfg, opts, "reject", "Reject a pending buddy request", false),
	)
	return cmd
}

func newBuddiesListCmd(cfg *config.Config, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List buddy requests by status",
		RunE: withApp(cfg, opts, func(cmd *cobra.Command, a *app, args []string) error {
			userID, err := a.userID()
			if err != nil {
				return err
			}
			requests, err := a.fetchBuddyRequests(cmd.Context(), userID)
			if err != nil {
				return loadFailed("buddy requests", err)
			}
			stats, err := viewmodel.NewBuddyStats(requests)
			if err != nil {
				return err
			}
			p, err := viewmodel.PartitionBuddyRequests(requests)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconBuddy, "Buddies"))
			fmt.Fprintln(out, ui.LabelValue("Total buddies", stats.TotalBuddies))
			writeRequests(out, userID, model.BuddyPending, p.Pending)
			writeRequests(out, userID, model.BuddyAccepted, p.Accepted)
			writeRequests(out, userID, model.BuddyRejected, p.Rejected)
			return nil
		}),
	}
}

func writeRequests(out io.Writer, userID uuid.UUID, status model.BuddyRequestStatus, requests []model.BuddyRequest) {
	if len(requests) == 0 {
		return
	}
	fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("%s (%d)", status, len(requests))))
	for _, r := range requests {
		direction := "from " + r.RequesterID.String()
		if r.RequesterID == userID {
			direction = "to " + r.ReceiverID.String()
		}
		fmt.Fprintf(out, "- %s %s %s\n", direction, ui.StatusText(string(r.Status)), ui.Muted.Render(r.ID.String()))
	}
}

func newBuddiesSendCmd(cfg *config.Config, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "send <userId>",
		Short: "Invite a user to be your buddy",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(cfg, opts, func(cmd *cobra.Command, a *app, args []string) error {
			receiverID, err := parseID("user id", args[0])
			if err != nil {
				return err
			}
			_, err = a.mutations.SendBuddyRequest(cmd.Context(), receiverID)
			return settle(err)
		}),
	}
}

func newBuddiesRespondCmd(cfg *config.Config, opts *globalOptions, verb, short string, accept bool) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <requestId>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: withApp(cfg, opts, func(cmd *cobra.Command, a *app, args []string) error {
			id, err := parseID("request id", args[0])
			if err != nil {
				return err
			}
			_, err = a.mutations.RespondToBuddyRequest(cmd.Context(), id, accept)
			return settle(err)
		}),
	}
}
