// ABOUTME: Entry point for the perftrack CLI
// ABOUTME: Terminal client for performance management and CI/CD integration

package main

import (
	"fmt"
	"os"

	"github.com/perftrack/perftrack-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
