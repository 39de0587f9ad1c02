package main

import (
	"os"

	"github.com/efreitasn/fuelcalc/cmd/fuelcalc/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
