package root

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/productivity-app/backend/config"
	"github.com/productivity-app/backend/internal/client/ui"
)

const Version = "0.1.0"

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	apiURL      string
	sessionFile string
	verbose     bool
	yes         bool
}

func newRootCmd() *cobra.Command {
	_ = godotenv.Load()
	cfg := config.Load()
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:           "dashboard",
		Short:         "Goal Buddy: goals, checkpoints and accountability buddies",
		Long:          "dashboard talks to a Goal Buddy server and shows your goals, checkpoints and buddy requests.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	cmd.PersistentFlags().StringVar(&opts.apiURL, "api-url", cfg.Client.APIBaseURL, "Goal Buddy server URL")
	cmd.PersistentFlags().StringVar(&opts.sessionFile, "session-file", cfg.Client.SessionFile, "Where the session token is stored")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log requests and cache activity to stderr")
	cmd.PersistentFlags().BoolVarP(&opts.yes, "yes", "y", false, "Answer yes to confirmation prompts")

	cmd.AddCommand(
		newLoginCmd(cfg, opts),
		newLogoutCmd(cfg, opts),
		newRegisterCmd(cfg, opts),
		newDashboardCmd(cfg, opts),
		newGoalsCmd(cfg, opts),
		newCheckpointsCmd(cfg, opts),
		newBuddiesCmd(cfg, opts),
		newSuggestCmd(cfg, opts),
	)
	return cmd
}

// errReported marks failures the notifier already printed.
var errReported = errors.New("failure already reported")

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		if errors.Is(err, errReported) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
