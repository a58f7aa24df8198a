// ABOUTME: Version command for the bloghub CLI
// ABOUTME: Prints the build version set through -ldflags

package cmd

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X .../cmd.version=v1.2.3"
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the bloghub version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func printVersion(w io.Writer) {
	if IsJSONOutput() {
		fmt.Fprintln(w, toJSON(map[string]string{"version": version, "go": runtime.Version()}))
		return
	}
	fmt.Fprintf(w, "bloghub %s (%s)\n", version, runtime.Version())
}
