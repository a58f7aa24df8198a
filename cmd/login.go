// ABOUTME: Login and logout commands
// ABOUTME: Sign in persists the session for later commands; logout always clears it

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Pinerealm/my-blogging-app/internal/app"
	"github.com/Pinerealm/my-blogging-app/internal/client"
)

var (
	loginEmail         string
	loginPassword      string
	loginPasswordStdin bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to BlogHub",
	Long: `Sign in with your email and password. The session is saved to the
configured session store and reused by later commands until it expires or you
log out.

Missing values are prompted for when running in a terminal. For scripts, pass
--email and pipe the password with --password-stdin.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		creds := &client.Credentials{Email: loginEmail, Password: loginPassword}
		if loginPasswordStdin {
			secret, err := readSecret(os.Stdin)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: reading password: %v\n", err)
				os.Exit(exitError)
			}
			creds.Password = secret
		}
		if (creds.Email == "" || creds.Password == "") && interactive() {
			if err := promptCredentials(creds); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(exitError)
			}
		}
		runWithApp(func(ctx context.Context, a *app.App, w io.Writer) int {
			return runLogin(ctx, a, w, creds)
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the saved session",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runWithApp(runLogout)
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prefer --password-stdin)")
	loginCmd.Flags().BoolVar(&loginPasswordStdin, "password-stdin", false, "Read the password from stdin")
}

// runLogin signs in and returns exit code
func runLogin(ctx context.Context, a *app.App, w io.Writer, creds *client.Credentials) int {
	if err := creds.Validate(); err != nil {
		return reportFailure(w, client.FirstViolation(err))
	}

	res := a.Session.Login(ctx, creds)
	if !res.Success {
		return reportFailure(w, res.Error)
	}

	user := a.Session.Snapshot().User
	if IsJSONOutput() {
		fmt.Fprintln(w, toJSON(map[string]any{"success": true, "user": user}))
	} else {
		fmt.Fprintln(w, formatLoginHuman(user))
	}
	return exitOK
}

// runLogout clears the session; it cannot fail
func runLogout(ctx context.Context, a *app.App, w io.Writer) int {
	a.Session.Logout(ctx)
	if IsJSONOutput() {
		fmt.Fprintln(w, toJSON(map[string]any{"success": true}))
	} else {
		fmt.Fprintln(w, "Logged out.")
	}
	return exitOK
}

// formatLoginHuman greets the signed-in user
func formatLoginHuman(user *client.User) string {
	if name := user.FullName(); name != "" {
		return fmt.Sprintf("Logged in as %s (%s).", user.DisplayName(), name)
	}
	return fmt.Sprintf("Logged in as %s.", user.DisplayName())
}
