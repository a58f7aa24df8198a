// ABOUTME: Interactive prompts for commands run from a terminal
// ABOUTME: Fills in whatever the flags left out using huh forms

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/Pinerealm/my-blogging-app/internal/client"
)

func notBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// promptCredentials asks for the missing email and password
func promptCredentials(creds *client.Credentials) error {
	var fields []huh.Field
	if creds.Email == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Placeholder("you@example.com").
			Value(&creds.Email).
			Validate(notBlank("Email")))
	}
	if creds.Password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&creds.Password).
			Validate(notBlank("Password")))
	}
	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...).Title("Sign in to BlogHub")).Run()
}

// promptRegistration asks for the missing account fields
func promptRegistration(req *client.RegisterRequest) error {
	var fields []huh.Field
	if req.Username == "" {
		fields = append(fields, huh.NewInput().Title("Username").Value(&req.Username).Validate(notBlank("Username")))
	}
	if req.Email == "" {
		fields = append(fields, huh.NewInput().Title("Email").Value(&req.Email).Validate(notBlank("Email")))
	}
	if req.Password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			Description("At least 8 characters with upper case, lower case and a number").
			EchoMode(huh.EchoModePassword).
			Value(&req.Password).
			Validate(func(s string) error {
				probe := client.RegisterRequest{Username: "probe", Email: "probe@example.com", Password: s}
				if err := probe.Validate(); err != nil {
					return fmt.Errorf("%s", client.FirstViolation(err))
				}
				return nil
			}))
	}
	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...).Title("Create your BlogHub account")).Run()
}

// confirm asks a yes/no question, defaulting to no
func confirm(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	return ok, err
}

// readSecret reads a single line (e.g. a password piped on stdin)
func readSecret(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
