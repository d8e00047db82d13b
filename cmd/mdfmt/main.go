package main

import (
	"os"

	"github.com/salmonumbrella/mdfmt/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}
