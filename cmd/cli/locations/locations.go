package locations

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

// InitLocations registers the locations subcommands on the root command.
func InitLocations(rootCmd *cobra.Command) {
	locationsCmd := &cobra.Command{
		Use:   "locations",
		Short: "Manage the saved locations on the logged-in account",
	}
	locationsCmd.AddCommand(listCmd(), addCmd(), removeCmd())
	rootCmd.AddCommand(locationsCmd)
}

func listCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved locations",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := config.LoadSession()
			if err != nil {
				return fmt.Errorf("not logged in, run 'wdeck login' first")
			}

			var locations []models.Location
			if err := client.Do("GET", locationsPath(session.UserID), session.Token, nil, &locations); err != nil {
				return fmt.Errorf("failed to list locations: %w", err)
			}

			if asJSON {
				data, err := json.MarshalIndent(locations, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			rows := make([][]interface{}, 0, len(locations))
			for _, loc := range locations {
				rows = append(rows, []interface{}{loc.ID, loc.Name})
			}
			output.RenderTable([]string{"ID", "Name"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw JSON list")

	return cmd
}

func addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := config.LoadSession()
			if err != nil {
				return fmt.Errorf("not logged in, run 'wdeck login' first")
			}

			var user models.User
			payload := map[string]string{"name": args[0]}
			if err := client.Do("POST", locationsPath(session.UserID), session.Token, payload, &user); err != nil {
				return fmt.Errorf("failed to add location: %w", err)
			}

			fmt.Printf("Added %q. Account now has %d location(s).\n", args[0], len(user.Locations))
			return nil
		},
	}
}

func removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a location by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			locationID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("location id must be a number")
			}

			session, err := config.LoadSession()
			if err != nil {
				return fmt.Errorf("not logged in, run 'wdeck login' first")
			}

			var user models.User
			payload := map[string]int{"locationId": locationID}
			if err := client.Do("DELETE", locationsPath(session.UserID), session.Token, payload, &user); err != nil {
				return fmt.Errorf("failed to remove location: %w", err)
			}

			fmt.Printf("Removed location %d. Account now has %d location(s).\n", locationID, len(user.Locations))
			return nil
		},
	}
}

func locationsPath(userID int) string {
	return "/users/" + strconv.Itoa(userID) + "/locations"
}
