package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/moviebook/internal/client/nav"
	"github.com/dmitrijs2005/moviebook/internal/client/validation"
	"github.com/dmitrijs2005/moviebook/internal/common"
)

// getSimpleText, getPassword and getConfirmation are indirections used to
// facilitate testing.
var (
	getSimpleText   = GetSimpleText
	getPassword     = GetPassword
	getConfirmation = GetConfirmation
)

// Register opens the register screen, asks for the sign-up form and submits
// it. Field errors are printed under the form.
func (a *App) Register(ctx context.Context) error {
	if a.router.Current() != nav.RouteRegister {
		a.router.Push(nav.RouteRegister)
	}

	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	confirm, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)
	agree, err := getConfirmation(a.reader, "I agree to the terms and conditions", a.out)
	if err != nil {
		return err
	}

	err = a.authService.Register(ctx, validation.RegisterForm{
		Email:           email,
		Password:        string(password),
		ConfirmPassword: string(confirm),
		AgreeToTerms:    agree,
	})
	a.printFieldErrors(err)
	return err
}

// Login asks for credentials and signs in. The landing screen is drawn on
// success.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	err = a.authService.Login(ctx, validation.LoginForm{Email: email, Password: string(password)})
	if a.printFieldErrors(err) || err != nil {
		return err
	}
	a.Render(ctx)
	return nil
}

// Logout ends the session through the navbar action and shows the login
// screen.
func (a *App) Logout(ctx context.Context) error {
	err := a.navbar.Logout(ctx)
	a.Render(ctx)
	return err
}

func (a *App) printFieldErrors(err error) bool {
	var fe validation.FieldErrors
	if !errors.As(err, &fe) {
		return false
	}
	for _, f := range fe.Fields() {
		fmt.Fprintf(a.out, "  %s: %s\n", f, fe[f])
	}
	return true
}
