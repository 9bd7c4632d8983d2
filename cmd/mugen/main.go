package main

import (
	"os"

	"mugen/cmd/mugen/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
