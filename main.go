package main

import (
	"os"

	"github.com/tomciopaluch2000pl/landing-zone/internal/adapters/inbound/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
