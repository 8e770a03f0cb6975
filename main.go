package main

import (
	"os"

	"mindsprint_backend/internals/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
