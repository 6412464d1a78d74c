// Package main is the entry point for epochctl, the admin CLI of the epoch
// ticker daemon.
package main

import (
	"os"

	"github.com/RealZimboGuy/epochtick/cmd/epochctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
