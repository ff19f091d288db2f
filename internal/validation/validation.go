// Package validation holds the form checks run before any authentication
// call is attempted: on the client screens before the auth service is
// invoked, and again by the backend on registration.
//
// Checks run in a fixed order and only the first failure is reported:
// empty fields, password length, password confirmation, email format.
package validation

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/dmitrijs2005/gophgate/internal/common"
	"github.com/go-playground/validator/v10"
)

// Rule names reported in ValidationError.Rule.
const (
	RuleRequired     = "required"
	RuleMinLength    = "minlen"
	RuleConfirmation = "eqfield"
	RuleIdentifier   = "identifier"
)

// Messages shown to the user for each rule.
const (
	MsgRequired     = "Please fill in all fields."
	MsgMinLength    = "Password must be at least 6 characters."
	MsgConfirmation = "Passwords do not match."
	MsgIdentifier   = "Please enter a valid email."
)

// IdentifierPattern is the accepted shape of an email: local-part@domain.tld.
var IdentifierPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// rule priority; lower reports first.
var priority = []struct {
	rule string
	msg  string
}{
	{RuleRequired, MsgRequired},
	{RuleMinLength, MsgMinLength},
	{RuleConfirmation, MsgConfirmation},
	{RuleIdentifier, MsgIdentifier},
}

// ValidationError describes the first failed check of a form.
type ValidationError struct {
	Field   string
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap lets callers match any validation failure with common.ErrorValidation.
func (e *ValidationError) Unwrap() error {
	return common.ErrorValidation
}

type SignInForm struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

type SignUpForm struct {
	Name         string `validate:"required"`
	Email        string `validate:"required,identifier"`
	Password     string `validate:"required,minlen=6"`
	Confirmation string `validate:"required,eqfield=Password"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation(RuleIdentifier, func(fl validator.FieldLevel) bool {
		return IsIdentifier(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation(RuleMinLength, func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return Length(fl.Field().String()) >= n
	}); err != nil {
		panic(err)
	}
	return v
}

// Length counts s in UTF-16 code units, so a character outside the Basic
// Multilingual Plane (most emoji) counts as two.
func Length(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// IsIdentifier reports whether s looks like an email address.
func IsIdentifier(s string) bool {
	return IdentifierPattern.MatchString(s)
}

// ValidateSignIn checks that both login fields are filled in. A whitespace-only
// email counts as empty; the password is checked as typed.
func ValidateSignIn(f SignInForm) error {
	f.Email = strings.TrimSpace(f.Email)
	return check(f)
}

// ValidateSignUp runs the registration checks. A whitespace-only name or email
// counts as empty. The email pattern is matched against the value as typed, so
// surrounding spaces are rejected; the password is checked as typed.
func ValidateSignUp(f SignUpForm) error {
	f.Name = strings.TrimSpace(f.Name)
	if strings.TrimSpace(f.Email) == "" {
		f.Email = ""
	}
	return check(f)
}

func check(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	failed := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		if _, seen := failed[fe.Tag()]; !seen {
			failed[fe.Tag()] = fe.Field()
		}
	}

	for _, p := range priority {
		if field, ok := failed[p.rule]; ok {
			return &ValidationError{Field: field, Rule: p.rule, Message: p.msg}
		}
	}

	fe := fieldErrs[0]
	return &ValidationError{Field: fe.Field(), Rule: fe.Tag(), Message: fe.Error()}
}
