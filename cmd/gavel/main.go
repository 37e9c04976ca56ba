package main

import (
	"os"

	"github.com/gavelhq/gavel/cmd/gavel/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
