package main

import (
	"os"

	"github.com/bokslut-dev/bokslut/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
