// ABOUTME: Whoami and profile commands
// ABOUTME: Show the signed-in user and edit their public profile

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Pinerealm/my-blogging-app/internal/app"
	"github.com/Pinerealm/my-blogging-app/internal/client"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Long:  `Validate the saved session with the backend and print who it belongs to.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runWithApp(runWhoami)
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update your profile",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runWithApp(runProfileShow)
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your full profile",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runWithApp(runProfileShow)
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profile fields",
	Long: `Update only the fields whose flags are given. Pass an empty value
(e.g. --bio "") to clear a field.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		update := profileUpdateFromFlags(cmd)
		runWithApp(func(ctx context.Context, a *app.App, w io.Writer) int {
			return runProfileUpdate(ctx, a, w, update)
		})
	},
}

// profileFlags maps flag names to ProfileUpdate fields
var profileFlags = []struct {
	name  string
	usage string
	field func(*client.ProfileUpdate) **string
}{
	{"first-name", "First name", func(u *client.ProfileUpdate) **string { return &u.FirstName }},
	{"last-name", "Last name", func(u *client.ProfileUpdate) **string { return &u.LastName }},
	{"bio", "Short bio (max 500 characters)", func(u *client.ProfileUpdate) **string { return &u.Bio }},
	{"avatar-url", "Avatar image URL", func(u *client.ProfileUpdate) **string { return &u.AvatarURL }},
	{"website", "Website URL", func(u *client.ProfileUpdate) **string { return &u.Website }},
	{"location", "Location", func(u *client.ProfileUpdate) **string { return &u.Location }},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileUpdateCmd)
	for _, f := range profileFlags {
		profileUpdateCmd.Flags().String(f.name, "", f.usage)
	}
}

func profileUpdateFromFlags(cmd *cobra.Command) *client.ProfileUpdate {
	update := &client.ProfileUpdate{}
	for _, f := range profileFlags {
		if !cmd.Flags().Changed(f.name) {
			continue
		}
		value, _ := cmd.Flags().GetString(f.name)
		*f.field(update) = &value
	}
	return update
}

// currentUser runs the login gate and returns the validated user
func currentUser(ctx context.Context, a *app.App) (*client.User, error) {
	if err := a.Gate().Require(ctx); err != nil {
		return nil, err
	}
	return a.Session.Snapshot().User, nil
}

// runWhoami prints the signed-in user and returns exit code
func runWhoami(ctx context.Context, a *app.App, w io.Writer) int {
	user, err := currentUser(ctx, a)
	if err != nil {
		return reportError(w, err)
	}
	expiresIn := a.Session.ExpiresIn(time.Now())

	if IsJSONOutput() {
		out := map[string]any{"user": user, "api_url": a.Config.APIURL}
		if expiresIn > 0 {
			out["expires_in_seconds"] = int(expiresIn.Seconds())
		}
		fmt.Fprintln(w, toJSON(out))
	} else {
		fmt.Fprintln(w, formatWhoamiHuman(a.Config.APIURL, user, expiresIn))
	}
	return exitOK
}

// formatWhoamiHuman formats the session summary for human readability
func formatWhoamiHuman(apiURL string, user *client.User, expiresIn time.Duration) string {
	expiry := "unknown"
	if expiresIn > 0 {
		expiry = "in " + expiresIn.Round(time.Minute).String()
	}
	return fmt.Sprintf(`User:     %s
Email:    %s
Backend:  %s
Expires:  %s`, user.DisplayName(), user.Email, apiURL, expiry)
}

// runProfileShow prints the full profile and returns exit code
func runProfileShow(ctx context.Context, a *app.App, w io.Writer) int {
	user, err := currentUser(ctx, a)
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		fmt.Fprintln(w, toJSON(user))
	} else {
		fmt.Fprintln(w, formatProfileHuman(user))
	}
	return exitOK
}

// runProfileUpdate applies the changed fields and returns exit code
func runProfileUpdate(ctx context.Context, a *app.App, w io.Writer, update *client.ProfileUpdate) int {
	if _, err := currentUser(ctx, a); err != nil {
		return reportError(w, err)
	}
	if *update == (client.ProfileUpdate{}) {
		return reportFailure(w, "nothing to update, pass at least one field flag")
	}
	if err := update.Validate(); err != nil {
		return reportFailure(w, client.FirstViolation(err))
	}

	res := a.Session.UpdateProfile(ctx, update)
	if !res.Success {
		if !a.Session.IsAuthenticated() {
			return reportError(w, errSessionExpired)
		}
		return reportFailure(w, res.Error)
	}

	user := a.Session.Snapshot().User
	if IsJSONOutput() {
		fmt.Fprintln(w, toJSON(map[string]any{"success": true, "user": user}))
	} else {
		fmt.Fprintln(w, "Profile updated successfully.")
		fmt.Fprintln(w, formatProfileHuman(user))
	}
	return exitOK
}

// formatProfileHuman lists the profile fields that are set
func formatProfileHuman(user *client.User) string {
	rows := [][2]string{
		{"Username", user.Username},
		{"Email", user.Email},
		{"Name", user.FullName()},
		{"Bio", user.Bio},
		{"Location", user.Location},
		{"Website", user.Website},
		{"Avatar", user.AvatarURL},
	}
	var sb strings.Builder
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		fmt.Fprintf(&sb, "%-10s%s\n", row[0]+":", row[1])
	}
	return strings.TrimRight(sb.String(), "\n")
}
