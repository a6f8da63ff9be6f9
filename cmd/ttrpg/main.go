// Package main provides the ttrpg command line tool.
package main

import (
	"os"

	"github.com/cory-johannsen/ttrpg/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
