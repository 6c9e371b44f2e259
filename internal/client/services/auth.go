// Package services contains the application services of the moviebook client.
// This file defines the authentication flows: register, login and logout.
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/moviebook/internal/client/api"
	"github.com/dmitrijs2005/moviebook/internal/client/models"
	"github.com/dmitrijs2005/moviebook/internal/client/nav"
	"github.com/dmitrijs2005/moviebook/internal/client/notify"
	"github.com/dmitrijs2005/moviebook/internal/client/session"
	"github.com/dmitrijs2005/moviebook/internal/client/validation"
	"github.com/dmitrijs2005/moviebook/internal/common"
	"github.com/dmitrijs2005/moviebook/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

const (
	pathRegister = "/auth/register"
	pathLogin    = "/auth/login"
	pathLogout   = "/auth/logout"
)

// DefaultRedirectDelay leaves the registration notification on screen long
// enough to be read before the login screen opens.
const DefaultRedirectDelay = 2000 * time.Millisecond

// AuthService defines the authentication flows of the client.
//
// Contract:
//   - Register: validate, create the account, then open the login screen
//     after the redirect delay.
//   - Login: validate, authenticate, store token and user, open the landing
//     screen for the user's role.
//   - Logout: best-effort server logout, then always clear the session and
//     open the login screen without a way back.
//   - Processing: reports a registration waiting for its redirect.
//   - Close: cancels a pending redirect.
//
// Validation failures come back as validation.FieldErrors and never reach the
// network. Every other failure has already been shown to the user through
// the notifier by the time it is returned.
type AuthService interface {
	Register(ctx context.Context, form validation.RegisterForm) error
	Login(ctx context.Context, form validation.LoginForm) error
	Logout(ctx context.Context) error
	Processing() bool
	Close()
}

type timer interface {
	Stop() bool
}

type registerRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResults struct {
	Token string              `json:"token"`
	User  *models.UserProfile `json:"user,omitempty"`
}

// authService is the concrete AuthService. It is the only holder of the
// session Writer.
type authService struct {
	caller        *api.Caller
	store         session.Writer
	notifier      notify.Notifier
	router        nav.Navigator
	logger        logging.Logger
	redirectDelay time.Duration

	// test seams
	after func(d time.Duration, f func()) timer
	now   func() time.Time

	mu         sync.Mutex
	processing bool
	redirect   timer
}

// NewAuthService wires the flows to their collaborators. A non-positive
// redirectDelay selects DefaultRedirectDelay.
func NewAuthService(
	caller *api.Caller,
	store session.Writer,
	notifier notify.Notifier,
	router nav.Navigator,
	logger logging.Logger,
	redirectDelay time.Duration,
) AuthService {
	if redirectDelay <= 0 {
		redirectDelay = DefaultRedirectDelay
	}
	return &authService{
		caller:        caller,
		store:         store,
		notifier:      notifier,
		router:        router,
		logger:        logger,
		redirectDelay: redirectDelay,
		after: func(d time.Duration, f func()) timer {
			return time.AfterFunc(d, f)
		},
		now: time.Now,
	}
}

// Register validates the form and creates the account. On success the login
// screen opens after the redirect delay; until then further submissions
// are refused with ErrBusy.
func (a *authService) Register(ctx context.Context, form validation.RegisterForm) error {
	if err := validation.ValidateRegister(form); err != nil {
		return err
	}

	if !a.begin() {
		return ErrBusy
	}

	env, err := a.caller.Call("").Post(ctx, pathRegister, registerRequest{
		Email:           form.Email,
		Password:        form.Password,
		ConfirmPassword: form.ConfirmPassword,
	})
	if err != nil {
		a.end()
		a.logger.Error(ctx, "register request failed", "error", err)
		a.notifier.Error(transportMessage(err))
		return err
	}
	if !env.Success {
		a.end()
		a.notifier.Error(orDefault(env.Message, msgRegisterFailed))
		return fmt.Errorf("%w: %s", ErrRejected, orDefault(env.Message, msgRegisterFailed))
	}

	a.logger.Info(ctx, "account registered", "email", form.Email)
	a.notifier.Success(orDefault(env.Message, msgRegisterSuccess))
	a.scheduleRedirect()
	return nil
}

// Login validates the form, authenticates and stores the session.
func (a *authService) Login(ctx context.Context, form validation.LoginForm) error {
	if err := validation.ValidateLogin(form); err != nil {
		return err
	}

	env, err := a.caller.Call("").Post(ctx, pathLogin, loginRequest{Email: form.Email, Password: form.Password})
	if err != nil {
		a.logger.Error(ctx, "login request failed", "error", err)
		a.notifier.Error(transportMessage(err))
		return err
	}
	if !env.Success {
		a.notifier.Error(orDefault(env.Message, msgLoginFailed))
		return fmt.Errorf("%w: %s", ErrRejected, orDefault(env.Message, msgLoginFailed))
	}

	res, err := api.Decode[loginResults](env)
	if err != nil || res.Token == "" {
		a.logger.Error(ctx, "login answer without usable token", "error", err)
		a.notifier.Error(msgLoginFailed)
		return fmt.Errorf("%w: no token in login results", ErrRejected)
	}
	if tokenExpired(res.Token, a.now()) {
		a.notifier.Error(msgLoginFailed)
		return common.ErrTokenExpired
	}

	user := res.User
	if user == nil {
		user = &models.UserProfile{Email: form.Email}
	}
	if err := a.store.Set(ctx, res.Token, user); err != nil {
		a.logger.Error(ctx, "session not saved", "error", err)
		a.notifier.Error(msgLoginFailed)
		return err
	}

	a.logger.Info(ctx, "logged in", "email", user.Email)
	a.notifier.Success(msgLoginSuccess)
	if user.IsAdmin() {
		a.router.Replace(nav.RouteDashboardAdmin)
	} else {
		a.router.Replace(nav.RouteProfile)
	}
	return nil
}

// Logout tells the backend when there is a token to revoke, then clears the
// session whatever the backend said.
func (a *authService) Logout(ctx context.Context) error {
	if token := a.store.Token(); token != "" {
		a.logoutEndpoint(ctx, token)
	}

	err := a.store.Clear(ctx)

	a.notifier.Dismiss()
	a.notifier.Success(msgLogoutSuccess)
	a.router.Replace(nav.RouteLogin)
	return err
}

func (a *authService) logoutEndpoint(ctx context.Context, token string) {
	env, err := a.caller.Call(token).Post(ctx, pathLogout, struct{}{})
	if err != nil {
		a.logger.Warn(ctx, "logout request failed", "error", err)
		a.notifier.Error(msgLogoutNetwork)
		return
	}
	if !env.Success {
		a.notifier.Error(orDefault(env.Message, msgLogoutFailed))
	}
}

func (a *authService) Processing() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.processing
}

func (a *authService) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.redirect != nil {
		a.redirect.Stop()
		a.redirect = nil
	}
	a.processing = false
}

func (a *authService) begin() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.processing {
		return false
	}
	a.processing = true
	return true
}

func (a *authService) end() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.processing = false
}

func (a *authService) scheduleRedirect() {
	a.mu.Lock()
	defer a.mu.Unlock()

	var t timer
	t = a.after(a.redirectDelay, func() {
		a.mu.Lock()
		if a.redirect != t {
			// cancelled by Close
			a.mu.Unlock()
			return
		}
		a.redirect = nil
		a.processing = false
		a.mu.Unlock()

		a.router.Push(nav.RouteLogin)
	})
	a.redirect = t
}

// tokenExpired reports whether token is a JWT whose exp claim already
// passed. Opaque tokens are never considered expired.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(now)
}
