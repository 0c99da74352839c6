package main

import (
	"github.com/calebmoran/weatherdeck/cmd/cli/auth"
	"github.com/calebmoran/weatherdeck/cmd/cli/locations"
	"github.com/calebmoran/weatherdeck/cmd/cli/root"
	"github.com/calebmoran/weatherdeck/cmd/cli/units"
	"github.com/calebmoran/weatherdeck/cmd/cli/users"
)

func main() {
	rootCmd := root.GetRoot()

	auth.InitAuth(rootCmd)
	users.InitUsers(rootCmd)
	locations.InitLocations(rootCmd)
	units.InitUnits(rootCmd)

	root.Execute()
}
