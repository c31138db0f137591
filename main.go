package main

import (
	"os"

	"github.com/cizzoo/Ulauncher/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
