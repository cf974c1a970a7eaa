package main

import (
	"context"
	"os"

	"github.com/dshills/docsearch/internal/cli"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	cli.SetVersion(version, buildTime)

	if err := cli.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
