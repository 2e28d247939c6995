package main

import (
	"os"

	"github.com/rustyeddy/swingtree/cmd/swingtree/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
