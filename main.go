// ABOUTME: Entry point for the bloghub CLI
// ABOUTME: Command-line and terminal client for the BlogHub blogging platform

package main

import (
	"fmt"
	"os"

	"github.com/Pinerealm/my-blogging-app/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
