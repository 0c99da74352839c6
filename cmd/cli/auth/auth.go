package auth

import (
	"fmt"

	"github.com/calebmoran/weatherdeck/cmd/cli/client"
	"github.com/calebmoran/weatherdeck/cmd/cli/config"
	"github.com/spf13/cobra"
)

// InitAuth registers auth-related CLI commands (login, logout) on the root command.
func InitAuth(rootCmd *cobra.Command) {
	rootCmd.AddCommand(loginCmd(), logoutCmd())
}

// loginCmd creates a command that logs in a user and stores the session locally.
func loginCmd() *cobra.Command {
	var username string
	var password string
	var register bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the WeatherDeck API",
		Long:  "Authenticate with the WeatherDeck API and store a session for subsequent CLI commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" {
				return fmt.Errorf("username is required")
			}
			if password == "" {
				return fmt.Errorf("password is required")
			}

			credentials := map[string]string{"username": username, "password": password}

			// Optionally register the account first
			if register {
				if err := client.Do("POST", "/auth/register", "", credentials, nil); err != nil {
					return fmt.Errorf("failed to register user: %w", err)
				}
			}

			var loginResp struct {
				Token string `json:"token"`
				User  struct {
					ID int `json:"id"`
				} `json:"user"`
			}
			if err := client.Do("POST", "/auth/login", "", credentials, &loginResp); err != nil {
				return fmt.Errorf("failed to login: %w", err)
			}
			if loginResp.Token == "" {
				return fmt.Errorf("login succeeded but no token returned")
			}

			if err := config.SaveSession(config.Session{Token: loginResp.Token, UserID: loginResp.User.ID}); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}

			fmt.Println("Login successful. Session stored locally.")
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username to authenticate as")
	cmd.Flags().StringVar(&password, "password", "", "Password for the account")
	cmd.Flags().BoolVar(&register, "register", false, "Register the account before logging in")

	return cmd
}

// logoutCmd removes the locally stored session.
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out of the WeatherDeck API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ClearSession(); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}
