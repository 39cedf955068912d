// labctl - command line client for the Circuit Lab API
package main

import (
	"os"

	"github.com/circuitlab/circuitlab/api/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
