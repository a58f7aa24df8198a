// ABOUTME: Tests for client-side form validation
// ABOUTME: Covers registration password rules, login and post payloads

package client

import (
	"strings"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation"
)

func TestRegisterRequest_Valid(t *testing.T) {
	req := RegisterRequest{Username: "bob", Email: "b@x.com", Password: "Abcdef12"}
	if err := req.Validate(); err != nil {
		t.Errorf("expected valid registration, got %v", err)
	}
}

func TestRegisterRequest_PasswordRules(t *testing.T) {
	tests := []struct {
		password string
		want     string
	}{
		{"Ab1", "at least 8 characters"},
		{"abcdefg1", "uppercase"},
		{"ABCDEFG1", "lowercase"},
		{"Abcdefgh", "number"},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			req := RegisterRequest{Username: "bob", Email: "b@x.com", Password: tt.password}
			err := req.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			errs, ok := err.(validation.Errors)
			if !ok {
				t.Fatalf("expected validation.Errors, got %T", err)
			}
			if !strings.Contains(errs["password"].Error(), tt.want) {
				t.Errorf("expected password error containing %q, got %v", tt.want, errs["password"])
			}
		})
	}
}

func TestRegisterRequest_InvalidEmailAndUsername(t *testing.T) {
	req := RegisterRequest{Username: "b!", Email: "not-an-email", Password: "Abcdef12"}
	errs, ok := req.Validate().(validation.Errors)
	if !ok {
		t.Fatal("expected validation.Errors")
	}
	if _, found := errs["email"]; !found {
		t.Error("expected email error")
	}
	if _, found := errs["username"]; !found {
		t.Error("expected username error")
	}
}

func TestCredentials_Validate(t *testing.T) {
	if err := (Credentials{}).Validate(); err == nil {
		t.Error("expected error for empty credentials")
	}
	if err := (Credentials{Email: "a@b.com", Password: "x"}).Validate(); err != nil {
		t.Errorf("expected valid credentials, got %v", err)
	}
}

func TestPostInput_Validate(t *testing.T) {
	if err := (PostInput{Title: "Hello"}).Validate(); err == nil {
		t.Error("expected error for missing content")
	}
	if err := (PostInput{Title: strings.Repeat("x", 201), Content: "body"}).Validate(); err == nil {
		t.Error("expected error for long title")
	}
	if err := (PostInput{Title: "Hello", Content: "body"}).Validate(); err != nil {
		t.Errorf("expected valid post, got %v", err)
	}
}

func TestPostUpdate_Validate(t *testing.T) {
	empty := ""
	if err := (PostUpdate{Title: &empty}).Validate(); err == nil {
		t.Error("expected error for blank title")
	}
	if err := (PostUpdate{}).Validate(); err != nil {
		t.Errorf("expected nil fields to pass, got %v", err)
	}
}

func TestProfileUpdate_Validate(t *testing.T) {
	bad := "not a url"
	if err := (ProfileUpdate{Website: &bad}).Validate(); err == nil {
		t.Error("expected error for invalid website")
	}
	good := "https://example.com"
	if err := (ProfileUpdate{Website: &good}).Validate(); err != nil {
		t.Errorf("expected valid website, got %v", err)
	}
}

func TestFirstViolation(t *testing.T) {
	err := (RegisterRequest{Username: "bob", Password: "Abcdef12"}).Validate()
	if got := FirstViolation(err); got != "Email is required" {
		t.Errorf("expected email message first, got %q", got)
	}
	if got := FirstViolation(nil); got != "" {
		t.Errorf("expected empty for nil, got %q", got)
	}
	if got := FirstViolation(ErrTransport); got != ErrTransport.Error() {
		t.Errorf("expected plain error text, got %q", got)
	}
}

func TestFieldError(t *testing.T) {
	err := (RegisterRequest{Username: "b!", Email: "b@x.com", Password: "Abcdef12"}).Validate()
	if fe := FieldError(err, "username"); fe == nil || !strings.Contains(fe.Error(), "letters, numbers") {
		t.Errorf("expected username violation, got %v", fe)
	}
	if fe := FieldError(err, "email"); fe != nil {
		t.Errorf("expected no email violation, got %v", fe)
	}
	if fe := FieldError(nil, "email"); fe != nil {
		t.Errorf("expected nil for nil error, got %v", fe)
	}
}
