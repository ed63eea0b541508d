package main

import (
	"os"

	"github.com/samvad-hq/pwnwatch/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
