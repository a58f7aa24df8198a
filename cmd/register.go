// ABOUTME: Register command for the bloghub CLI
// ABOUTME: Creates an account; signing in is a separate step

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

var registerReq client.RegisterRequest

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a BlogHub account",
	Long: `Create a new account. Registration does not sign you in; run
"bloghub login" afterwards.

Usernames are 3-50 letters, numbers or underscores. Passwords need at least 8
characters including an upper case letter, a lower case letter and a number.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		req := registerReq
		if (req.Username == "" || req.Email == "" || req.Password == "") && interactive() {
			if err := promptRegistration(&req); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(exitError)
			}
		}
		runWithApp(func(ctx context.Context, a *app.App, w io.Writer) int {
			return runRegister(ctx, a, w, &req)
		})
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVar(&registerReq.Username, "username", "", "Username")
	registerCmd.Flags().StringVar(&registerReq.Email, "email", "", "Email")
	registerCmd.Flags().StringVar(&registerReq.Password, "password", "", "Password")
	registerCmd.Flags().StringVar(&registerReq.FirstName, "first-name", "", "First name (optional)")
	registerCmd.Flags().StringVar(&registerReq.LastName, "last-name", "", "Last name (optional)")
}

// runRegister creates the account and returns exit code
func runRegister(ctx context.Context, a *app.App, w io.Writer, req *client.RegisterRequest) int {
	if err := req.Validate(); err != nil {
		return reportFailure(w, client.FirstViolation(err))
	}

	res := a.Session.Register(ctx, req)
	if !res.Success {
		return reportFailure(w, res.Error)
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, toJSON(res))
	} else {
		fmt.Fprintf(w, "Account created for %s. Run \"bloghub login\" to sign in.\n", req.Username)
	}
	return exitOK
}
