package main

import (
	"os"

	"github.com/sleepypower/circuit-simplifier/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
