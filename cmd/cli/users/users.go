package users

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/calebmoran/weatherdeck/cmd/cli/client"
	"github.com/calebmoran/weatherdeck/cmd/cli/config"
	"github.com/calebmoran/weatherdeck/cmd/cli/output"
	"github.com/calebmoran/weatherdeck/internal/models"
	"github.com/spf13/cobra"
)

// InitUsers registers the user subcommands on the root command.
func InitUsers(rootCmd *cobra.Command) {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Inspect the logged-in account",
	}
	userCmd.AddCommand(showUserCmd())
	rootCmd.AddCommand(userCmd)
}

// showUserCmd fetches the logged-in user's record.
func showUserCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := config.LoadSession()
			if err != nil {
				return fmt.Errorf("not logged in, run 'wdeck login' first")
			}

			var user models.User
			if err := client.Do("GET", "/users/"+strconv.Itoa(session.UserID), session.Token, nil, &user); err != nil {
				return fmt.Errorf("failed to fetch user: %w", err)
			}

			if asJSON {
				data, err := json.MarshalIndent(user, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			units := "imperial"
			if user.Metric {
				units = "metric"
			}
			output.RenderTable(
				[]string{"ID", "Username", "Units", "Locations"},
				[][]interface{}{{user.ID, user.Username, units, len(user.Locations)}},
			)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw JSON record")

	return cmd
}
