// ABOUTME: Root command for the bloghub CLI
// ABOUTME: Handles global flags, configuration and wiring shared by every command

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Pinerealm/my-blogging-app/internal/app"
	"github.com/Pinerealm/my-blogging-app/internal/config"
	"github.com/Pinerealm/my-blogging-app/internal/logger"
	"github.com/Pinerealm/my-blogging-app/internal/storage"
)

var (
	apiURL     string
	configDir  string
	jsonOutput bool
	debugLog   bool
	ephemeral  bool
)

// Exit codes
const (
	exitOK     = 0
	exitFailed = 1 // the backend or validation rejected the operation
	exitError  = 2 // not logged in, unreachable backend, bad configuration
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "bloghub",
	Short: "CLI for the BlogHub blogging platform",
	Long: `bloghub is a command-line client for BlogHub.

Sign in once and your session is kept between runs, so posts can be written,
edited and published from scripts. Run "bloghub tui" for the interactive UI.

Exit codes:
  0 - Success
  1 - Operation failed (rejected by the backend or invalid input)
  2 - Error (not logged in, session expired, backend unreachable)

Environment Variables:
  BLOGHUB_API_URL           Backend API URL (default: http://localhost:8000/api)
  BLOGHUB_CONFIG_DIR        Where the session and debug log live (default: ~/.config/bloghub)
  BLOGHUB_SESSION_STORE     file, memory or redis (default: file)
  BLOGHUB_REDIS_URL         Redis URL when the session store is redis
  BLOGHUB_HTTP_TIMEOUT      Request timeout in seconds (default: 30)
  BLOGHUB_RATE_LIMIT        Max requests per second, 0 for unlimited (default: 0)
  BLOGHUB_AUTHOR_CACHE_TTL  Seconds to cache author pages (default: 60)
  LOG_LEVEL, LOG_FORMAT     Logging level and format (text or json)`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.LoadDotEnv()
		if cmd.Name() == "tui" && debugLog {
			return nil // the tui command logs to a file once the config dir is known
		}
		logger.Init()
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides BLOGHUB_API_URL)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Session and log directory (overrides BLOGHUB_CONFIG_DIR)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "Write debug logs to <config-dir>/debug.log")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "Keep the session in memory for this run only")
}

// loadConfig reads the environment and applies flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	if configDir != "" {
		cfg.ConfigDir = configDir
	}
	if ephemeral {
		cfg.SessionStore = storage.BackendMemory
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// interactive reports whether prompts can be shown
func interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && !jsonOutput
}

// runWithApp wires the app, runs fn and exits with its code
func runWithApp(fn func(ctx context.Context, a *app.App, w io.Writer) int) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	code := exitError
	cfg, err := loadConfig()
	if err == nil {
		var a *app.App
		a, err = app.New(cfg)
		if err == nil {
			code = fn(ctx, a, os.Stdout)
			a.Close()
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	cancel()

	if code != exitOK {
		os.Exit(code)
	}
}
