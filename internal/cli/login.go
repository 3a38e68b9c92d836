package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/keybtech/shopcli/internal/api"
	"github.com/keybtech/shopcli/internal/notify"
	"github.com/keybtech/shopcli/internal/ui"
)

func newLoginCommand() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}

			rd := bufio.NewReader(cmd.InOrStdin())
			if username == "" {
				fmt.Print("Email: ")
				line, _ := rd.ReadString('\n')
				username = strings.TrimSpace(line)
			}
			if password == "" {
				fmt.Print("Password: ")
				line, _ := rd.ReadString('\n')
				password = strings.TrimSpace(line)
			}
			if username == "" || password == "" {
				return fmt.Errorf("username and password are required")
			}

			res, err := app.Client.SignIn(cmd.Context(), username, password)
			if err != nil {
				app.Notifier.Notify(notify.Error("Login failed", api.UserMessage(err)))
				return err
			}
			if err := app.Creds.Save(res.Token, res.Expired); err != nil {
				return fmt.Errorf("store credentials: %w", err)
			}
			app.Notifier.Notify(notify.Success("Signed in", username))
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")
	return cmd
}

func newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}

			// Best effort server-side; the local slot is cleared regardless.
			if err := app.Client.Logout(cmd.Context()); err != nil {
				app.Log.Info("server logout failed", zap.Error(err))
			}
			if err := app.Creds.Clear(); err != nil {
				return err
			}
			app.Notifier.Notify(notify.Success("Signed out", "session cleared"))
			return nil
		},
	}
}

func newWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session state",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}

			cred, err := app.Creds.Load()
			if err != nil {
				return err
			}
			if cred == nil {
				ui.Fail("not signed in")
				os.Exit(1)
			}

			ui.OK("signed in")
			lines := []string{
				"source:  " + cred.Source,
				"token:   " + maskToken(cred.Token),
			}
			if cred.ExpiresAt != nil {
				state := "valid"
				if cred.Expired(time.Now()) {
					state = "expired"
				}
				lines = append(lines, fmt.Sprintf("expires: %s (%s)", cred.ExpiresAt.Format(time.RFC3339), state))
			}
			ui.Panel(lines)
			return nil
		},
	}
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "********"
	}
	return token[:4] + "…" + token[len(token)-4:]
}
