// ABOUTME: Client-side form validation for auth and post payloads
// ABOUTME: Catches obvious mistakes before a round trip to the backend

package client

import (
	"errors"
	"regexp"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	hasUpper        = regexp.MustCompile(`[A-Z]`)
	hasLower        = regexp.MustCompile(`[a-z]`)
	hasDigit        = regexp.MustCompile(`[0-9]`)
)

// Validate checks the login form
func (c Credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Email, validation.Required.Error("Email is required"), is.Email.Error("Please enter a valid email address")),
		validation.Field(&c.Password, validation.Required.Error("Password is required")),
	)
}

// Validate checks the registration form
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error("Username is required"),
			validation.Length(3, 50).Error("Username must be between 3 and 50 characters"),
			validation.Match(usernamePattern).Error("Username can only contain letters, numbers, and underscores"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("Email is required"),
			is.Email.Error("Please enter a valid email address"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("Password is required"),
			validation.Length(8, 128).Error("Password must be at least 8 characters"),
			validation.Match(hasUpper).Error("Password must contain at least one uppercase letter"),
			validation.Match(hasLower).Error("Password must contain at least one lowercase letter"),
			validation.Match(hasDigit).Error("Password must contain at least one number"),
		),
	)
}

// Validate checks a new post
func (p PostInput) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title,
			validation.Required.Error("Title is required"),
			validation.Length(1, 200).Error("Title must be less than 200 characters"),
		),
		validation.Field(&p.Content, validation.Required.Error("Content is required")),
	)
}

// Validate checks a post edit; only supplied fields are checked
func (p PostUpdate) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title,
			validation.NilOrNotEmpty.Error("Title is required"),
			validation.Length(1, 200).Error("Title must be less than 200 characters"),
		),
		validation.Field(&p.Content, validation.NilOrNotEmpty.Error("Content is required")),
	)
}

// Validate checks profile URLs when supplied
func (p ProfileUpdate) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.AvatarURL, is.URL.Error("Avatar URL must be a valid URL")),
		validation.Field(&p.Website, is.URL.Error("Website must be a valid URL")),
		validation.Field(&p.Bio, validation.Length(0, 500).Error("Bio must be less than 500 characters")),
	)
}

// FirstViolation returns the message of the first failing field, in field-name
// order, or err's text when it is not a validation error
func FirstViolation(err error) string {
	if err == nil {
		return ""
	}
	var fields validation.Errors
	if !errors.As(err, &fields) || len(fields) == 0 {
		return err.Error()
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return fields[keys[0]].Error()
}

// FieldError returns the violation for one field of a validation error, or nil
func FieldError(err error, field string) error {
	var fields validation.Errors
	if !errors.As(err, &fields) {
		return nil
	}
	return fields[field]
}
