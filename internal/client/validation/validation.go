// Package validation checks register and login input before anything is sent
// to the backend. Failures are reported per field so the form can show them
// inline.
package validation

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Field names as shown next to inputs.
const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldAgreeToTerms    = "agreeToTerms"
)

// RegisterForm is the sign-up input.
type RegisterForm struct {
	Email           string `form:"email" validate:"required,email"`
	Password        string `form:"password" validate:"required,min=6"`
	ConfirmPassword string `form:"confirmPassword" validate:"required,eqfield=Password"`
	AgreeToTerms    bool   `form:"agreeToTerms" validate:"eq=true"`
}

// LoginForm is the sign-in input.
type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// messages maps field and failed rule to the text shown to the user.
var messages = map[string]map[string]string{
	FieldEmail: {
		"required": "Email is required!",
		"email":    "Email Not Valid!",
	},
	FieldPassword: {
		"required": "Password is required!",
		"min":      "Password must be longer than 6 characters!",
	},
	FieldConfirmPassword: {
		"required": "You must confirm your password!",
		"eqfield":  "Password must match",
	},
	FieldAgreeToTerms: {
		"eq": "You must accept the terms and conditions!",
	},
}

// FieldErrors maps a field name to the message to show under it.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+fe[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var displayOrder = []string{FieldEmail, FieldPassword, FieldConfirmPassword, FieldAgreeToTerms}

// Fields lists the failed fields in the order the form shows them.
func (fe FieldErrors) Fields() []string {
	out := make([]string, 0, len(fe))
	for _, f := range displayOrder {
		if _, ok := fe[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			return f.Tag.Get("form")
		})
	})
	return validate
}

// ValidateRegister returns FieldErrors when any rule fails, nil otherwise.
func ValidateRegister(f RegisterForm) error {
	return check(f)
}

// ValidateLogin returns FieldErrors when any rule fails, nil otherwise.
func ValidateLogin(f LoginForm) error {
	return check(f)
}

func check(v any) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		msg, ok := messages[field][fe.Tag()]
		if !ok {
			msg = field + " is invalid"
		}
		out[field] = msg
	}
	return out
}
