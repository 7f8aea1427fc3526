package main

import (
	"os"

	"github.com/craftedcodex/senthrix/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
