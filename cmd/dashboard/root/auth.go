package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/productivity-app/backend/config"
	"github.com/productivity-app/backend/internal/client/api"
	"github.com/productivity-app/backend/internal/client/mutation"
	"github.com/productivity-app/backend/internal/client/ui"
)

func newLoginCmd(cfg *config.Config, opts *globalOptions) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		RunE: withApp(cfg, opts, func(cmd *cobra.Command, a *app, args []string) error {
			if email == "" || password == "" {
				return errors.New("--email and --password are required")
			}
			resp, err := a.client.Users().Login(cmd.Context(), api.LoginRequest{Email: email, Password: password})
			if err != nil {
				a.notifier.Error(mutation.FailureMessage(err, "Login failed"))
				return errReported
			}
			a.notifier.Success(fmt.Sprintf("Welcome back, %s", resp.User.Username))
			return nil
		}),
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password")
	return cmd
}

func newLogoutCmd(cfg *config.Config, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the session token and forget it",
		RunE: withApp(cfg, opts, func(cmd *cobra.Command, a *app, args []string) error {
			if !a.session.Authenticated() {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Not logged in."))
				return nil
			}
			if err := a.client.Users().Logout(cmd.Context()); err != nil {
				a.notifier.Error("Signed out locally, the server could not revoke the token")
				return nil
			}
			a.notifier.Success("Signed out")
			return nil
		}),
	}
}

func newRegisterCmd(cfg *config.Config, opts *globalOptions) *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: withApp(cfg, opts, func(cmd *cobra.Command, a *app, args []string) error {
			if username == "" || email == "" || password == "" {
				return errors.New("--username, --email and --password are required")
			}
			user, err := a.client.Users().Register(cmd.Context(), api.RegisterRequest{
				Username: username,
				Email:    email,
				Password: password,
			})
			if err != nil {
				a.notifier.Error(mutation.FailureMessage(err, "Registration failed"))
				return errReported
			}
			a.notifier.Success(fmt.Sprintf("Account %s created, run `dashboard login` to sign in", user.Username))
			return nil
		}),
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Display name")
	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password")
	return cmd
}
