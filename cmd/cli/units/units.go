package units

import (
	"fmt"
	"strconv"

	"github.com/calebmoran/weatherdeck/cmd/cli/client"
	"github.com/calebmoran/weatherdeck/cmd/cli/config"
	"github.com/spf13/cobra"
)

// InitUnits registers the units subcommands on the root command.
func InitUnits(rootCmd *cobra.Command) {
	unitsCmd := &cobra.Command{
		Use:   "units",
		Short: "Show or set the unit-system preference",
	}
	unitsCmd.AddCommand(showCmd(), setCmd())
	rootCmd.AddCommand(unitsCmd)
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current unit preference",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := config.LoadSession()
			if err != nil {
				return fmt.Errorf("not logged in, run 'wdeck login' first")
			}

			var out struct {
				Metric bool `json:"metric"`
			}
			if err := client.Do("GET", metricPath(session.UserID), session.Token, nil, &out); err != nil {
				return fmt.Errorf("failed to fetch preference: %w", err)
			}

			fmt.Println(unitsName(out.Metric))
			return nil
		},
	}
}

func setCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <metric|imperial>",
		Short: "Set the unit preference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var metric bool
			switch args[0] {
			case "metric":
				metric = true
			case "imperial":
				metric = false
			default:
				return fmt.Errorf("units must be 'metric' or 'imperial'")
			}

			session, err := config.LoadSession()
			if err != nil {
				return fmt.Errorf("not logged in, run 'wdeck login' first")
			}

			payload := map[string]bool{"metric": metric}
			if err := client.Do("PUT", metricPath(session.UserID), session.Token, payload, nil); err != nil {
				return fmt.Errorf("failed to set preference: %w", err)
			}

			fmt.Printf("Units set to %s.\n", unitsName(metric))
			return nil
		},
	}
}

func unitsName(metric bool) string {
	if metric {
		return "metric"
	}
	return "imperial"
}

func metricPath(userID int) string {
	return "/users/" + strconv.Itoa(userID) + "/metric"
}
