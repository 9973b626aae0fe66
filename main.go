package main

import (
	"os"

	"github.com/learnhub-io/learnhub/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
