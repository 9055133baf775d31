package main

import (
	"os"

	"github.com/genrun-dev/genrun/pkg/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
