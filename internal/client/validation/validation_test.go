package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegister() RegisterForm {
	return RegisterForm{
		Email:           "a@b.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		AgreeToTerms:    true,
	}
}

func TestValidateRegister_Valid(t *testing.T) {
	require.NoError(t, ValidateRegister(validRegister()))
}

func TestValidateRegister_SingleRuleFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RegisterForm)
		field  string
		msg    string
	}{
		{name: "invalid email", mutate: func(f *RegisterForm) { f.Email = "not-an-email" }, field: FieldEmail, msg: "Email Not Valid!"},
		{name: "missing email", mutate: func(f *RegisterForm) { f.Email = "" }, field: FieldEmail, msg: "Email is required!"},
		{name: "short password", mutate: func(f *RegisterForm) { f.Password, f.ConfirmPassword = "abc12", "abc12" }, field: FieldPassword, msg: "Password must be longer than 6 characters!"},
		{name: "mismatched confirmation", mutate: func(f *RegisterForm) { f.ConfirmPassword = "secret2" }, field: FieldConfirmPassword, msg: "Password must match"},
		{name: "missing confirmation", mutate: func(f *RegisterForm) { f.ConfirmPassword = "" }, field: FieldConfirmPassword, msg: "You must confirm your password!"},
		{name: "terms unchecked", mutate: func(f *RegisterForm) { f.AgreeToTerms = false }, field: FieldAgreeToTerms, msg: "You must accept the terms and conditions!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validRegister()
			tt.mutate(&f)

			err := ValidateRegister(f)
			var fe FieldErrors
			require.True(t, errors.As(err, &fe), "want FieldErrors, got %v", err)
			assert.Equal(t, FieldErrors{tt.field: tt.msg}, fe)
		})
	}
}

func TestValidateRegister_ExactlySixCharactersIsEnough(t *testing.T) {
	f := validRegister()
	f.Password, f.ConfirmPassword = "123456", "123456"
	require.NoError(t, ValidateRegister(f))
}

func TestValidateRegister_EmptyFormReportsEveryField(t *testing.T) {
	err := ValidateRegister(RegisterForm{})

	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, FieldErrors{
		FieldEmail:           "Email is required!",
		FieldPassword:        "Password is required!",
		FieldConfirmPassword: "You must confirm your password!",
		FieldAgreeToTerms:    "You must accept the terms and conditions!",
	}, fe)
}

func TestValidateLogin(t *testing.T) {
	require.NoError(t, ValidateLogin(LoginForm{Email: "a@b.com", Password: "x"}))

	err := ValidateLogin(LoginForm{Email: "nope"})
	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, FieldErrors{
		FieldEmail:    "Email Not Valid!",
		FieldPassword: "Password is required!",
	}, fe)
}

func TestFieldErrors_ErrorIsStable(t *testing.T) {
	fe := FieldErrors{FieldPassword: "p", FieldEmail: "e"}
	assert.Equal(t, "validation failed: email: e; password: p", fe.Error())
}

func TestFieldErrors_FieldsFollowFormOrder(t *testing.T) {
	fe := FieldErrors{FieldAgreeToTerms: "t", FieldPassword: "p", FieldEmail: "e"}
	assert.Equal(t, []string{FieldEmail, FieldPassword, FieldAgreeToTerms}, fe.Fields())
}
