// ABOUTME: Output and error reporting shared by all commands
// ABOUTME: Maps failures to messages and exit codes, in human or JSON form

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Pinerealm/my-blogging-app/internal/client"
	"github.com/Pinerealm/my-blogging-app/internal/guard"
)

// errSessionExpired replaces the raw 401 text
var errSessionExpired = errors.New("session expired, please log in")

// toJSON formats v as indented JSON
func toJSON(v any) string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return string(data)
}

// errorMessage is the text shown for err
func errorMessage(err error) string {
	switch {
	case errors.Is(err, guard.ErrLoginRequired):
		return guard.ErrLoginRequired.Error()
	case client.IsUnauthorized(err):
		return errSessionExpired.Error()
	default:
		return err.Error()
	}
}

// exitCodeFor classifies err: local and backend rejections are failures,
// missing sessions and connectivity problems are errors
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, guard.ErrLoginRequired),
		errors.Is(err, errSessionExpired),
		client.IsUnauthorized(err),
		errors.Is(err, client.ErrTransport):
		return exitError
	default:
		return exitFailed
	}
}

// reportError prints err and returns the exit code for it
func reportError(w io.Writer, err error) int {
	msg := errorMessage(err)
	if IsJSONOutput() {
		fmt.Fprintln(w, toJSON(map[string]any{"success": false, "error": msg}))
	} else {
		fmt.Fprintf(w, "Error: %s\n", msg)
	}
	return exitCodeFor(err)
}

// reportFailure prints a failure message that did not come from an error value
func reportFailure(w io.Writer, msg string) int {
	if IsJSONOutput() {
		fmt.Fprintln(w, toJSON(map[string]any{"success": false, "error": msg}))
	} else {
		fmt.Fprintf(w, "Error: %s\n", msg)
	}
	return exitFailed
}
