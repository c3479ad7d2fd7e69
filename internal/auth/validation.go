package auth

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// SignupInput is the signup form as submitted.
type SignupInput struct {
	FullName        string `json:"fullName" validate:"required"`
	Email           string `json:"email" validate:"required,emailshape"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// LoginInput is the login form as submitted.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ValidationErrors maps a form field (by its JSON name) to a user-facing message.
// All failing fields are collected before a submission is rejected.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + ": " + v[f]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// emailShape requires a local part, an "@" and a dotted domain segment.
var emailShape = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// messages holds the text shown for each field and failing rule.
var messages = map[string]map[string]string{
	"fullName": {
		"required": "Full name is required",
	},
	"email": {
		"required":   "Email is required",
		"emailshape": "Email is invalid",
	},
	"password": {
		"required": "Password is required",
		"min":      "Password must be at least 8 characters",
	},
	"confirmPassword": {
		"required": "Please confirm your password",
		"eqfield":  "Passwords do not match",
	},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
		return emailShape.MatchString(fl.Field().String())
	})
	return v
}

// Normalize trims surrounding whitespace from the name and email.
// Passwords are taken verbatim.
func (in SignupInput) Normalize() SignupInput {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.TrimSpace(in.Email)
	return in
}

// ValidateSignup checks every signup rule and returns all failures at once.
// The input is normalized first. Returns nil when the form is acceptable.
func ValidateSignup(in SignupInput) error {
	return toValidationErrors(validate.Struct(in.Normalize()))
}

// ValidateLogin checks that both login fields are present.
func ValidateLogin(in LoginInput) error {
	in.Email = strings.TrimSpace(in.Email)
	return toValidationErrors(validate.Struct(in))
}

func toValidationErrors(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(ValidationErrors, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = messageFor(fe)
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	if byTag, ok := messages[fe.Field()]; ok {
		if msg, ok := byTag[fe.Tag()]; ok {
			return msg
		}
	}
	return "is invalid"
}
