package main

import (
	"os"

	"cern/cmd/cern/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
