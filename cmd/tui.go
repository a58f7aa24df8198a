// ABOUTME: TUI command for the bloghub CLI
// ABOUTME: Launches the interactive terminal UI on the shared session

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Pinerealm/my-blogging-app/internal/app"
	"github.com/Pinerealm/my-blogging-app/internal/logger"
	"github.com/Pinerealm/my-blogging-app/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse, write and manage posts interactively",
	Long: `Open the interactive terminal UI.

The UI shares its session with the other commands, so signing in here also
signs in "bloghub posts new" and friends. Logs would corrupt the screen, so
they are only written when --debug sends them to <config-dir>/debug.log.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runWithApp(runTUI)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(ctx context.Context, a *app.App, w io.Writer) int {
	if debugLog {
		closeLog, err := logger.InitFile(a.Config.ConfigDir)
		if err != nil {
			fmt.Fprintf(w, "Error: cannot open debug log: %v\n", err)
			return exitError
		}
		defer closeLog()
		slog.Debug("TUI starting", "api_url", a.Config.APIURL)
	} else {
		logger.Setup(io.Discard, slog.LevelError)
	}

	if err := tui.Run(ctx, a); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}
	return exitOK
}
