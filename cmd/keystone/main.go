package main

import (
	"os"

	"keystone/cmd/keystone/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
