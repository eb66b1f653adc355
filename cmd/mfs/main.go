package main

import (
	"os"

	"github.com/bnema/mifit-steps-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
