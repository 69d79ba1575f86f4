package main

import (
	"os"

	"bookit/cmd/bookit/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
