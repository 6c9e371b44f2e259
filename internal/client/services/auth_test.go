package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- stub backend ----

type reply struct {
	status int
	body   string
}

type request struct {
	path string
	auth string
	body map[string]any
}

type stubBackend struct {
	mu       sync.Mutex
	replies  map[string]reply
	requests []request
	srv      *httptest.Server
}

func newStubBackend(t *testing.T, replies map[string]reply) *stubBackend {
	t.Helper()
	b := &stubBackend{replies: replies}
	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(raw, &body)

		b.mu.Lock()
		b.requests = append(b.requests, request{path: r.URL.Path, auth: r.Header.Get("Authorization"), body: body})
		rep, ok := b.replies[r.URL.Path]
		b.mu.Unlock()

		if !ok {
			rep = reply{status: http.StatusNotFound, body: `{"success":false,"message":"not found"}`}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(rep.status)
		_, _ = io.WriteString(w, rep.body)
	}))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *stubBackend) calls() []request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]request(nil), b.requests...)
}

// ---- fake timer ----

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	t.stopped = true
	return true
}

type fakeClock struct {
	timers []*fakeTimer
}

func (c *fakeClock) after(d time.Duration, f func()) timer {
	t := &fakeTimer{d: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// ---- fixture ----

type fixture struct {
	svc      *authService
	store    *session.Store
	notes    *notify.Recorder
	router   *nav.Router
	clock    *fakeClock
	backend  *stubBackend
	loggedIn func(token string, user *models.UserProfile)
}

func newFixture(t *testing.T, baseURL string) *fixture {
	t.Helper()
	ctx := context.Background()

	store, err := session.Open(ctx, session.DefaultDSN, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	notes := notify.NewRecorder()
	router := nav.NewRouter(nav.RouteRegister)
	clock := &fakeClock{}

	svc := NewAuthService(api.NewCaller(baseURL, nil), store, notes, router, logging.Discard(), 0).(*authService)
	svc.after = clock.after

	return &fixture{
		svc:    svc,
		store:  store,
		notes:  notes,
		router: router,
		clock:  clock,
		loggedIn: func(token string, user *models.UserProfile) {
			require.NoError(t, store.Set(ctx, token, user))
		},
	}
}

func withBackend(t *testing.T, replies map[string]reply) *fixture {
	t.Helper()
	b := newStubBackend(t, replies)
	f := newFixture(t, b.srv.URL)
	f.backend = b
	return f
}

func validRegisterForm() validation.RegisterForm {
	return validation.RegisterForm{
		Email:           "a@b.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		AgreeToTerms:    true,
	}
}

func deadURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return url
}

// ---- register ----

func TestRegister_InvalidInputNeverReachesNetwork(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*validation.RegisterForm)
		field  string
	}{
		{name: "invalid email", mutate: func(f *validation.RegisterForm) { f.Email = "nope" }, field: validation.FieldEmail},
		{name: "short password", mutate: func(f *validation.RegisterForm) { f.Password, f.ConfirmPassword = "12345", "12345" }, field: validation.FieldPassword},
		{name: "mismatched confirmation", mutate: func(f *validation.RegisterForm) { f.ConfirmPassword = "other12" }, field: validation.FieldConfirmPassword},
		{name: "terms unchecked", mutate: func(f *validation.RegisterForm) { f.AgreeToTerms = false }, field: validation.FieldAgreeToTerms},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := withBackend(t, map[string]reply{pathRegister: {200, `{"success":true}`}})
			form := validRegisterForm()
			tt.mutate(&form)

			err := fx.svc.Register(context.Background(), form)

			var fe validation.FieldErrors
			require.ErrorAs(t, err, &fe)
			assert.Contains(t, fe, tt.field)
			assert.Len(t, fe, 1)
			assert.Empty(t, fx.backend.calls())
			assert.Empty(t, fx.notes.All())
			assert.False(t, fx.svc.Processing())
		})
	}
}

func TestRegister_SuccessRedirectsToLoginAfterDelay(t *testing.T) {
	fx := withBackend(t, map[string]reply{pathRegister: {200, `{"success":true,"message":"Registered"}`}})

	require.NoError(t, fx.svc.Register(context.Background(), validRegisterForm()))

	calls := fx.backend.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, pathRegister, calls[0].path)
	assert.Empty(t, calls[0].auth)
	assert.Equal(t, map[string]any{"email": "a@b.com", "password": "secret1", "confirmPassword": "secret1"}, calls[0].body)

	assert.Equal(t, []string{"Registered"}, fx.notes.Messages(notify.KindSuccess))

	require.Len(t, fx.clock.timers, 1)
	assert.Equal(t, 2000*time.Millisecond, fx.clock.timers[0].d)
	assert.Equal(t, nav.RouteRegister, fx.router.Current(), "no navigation before the delay")
	assert.True(t, fx.svc.Processing())

	fx.clock.timers[0].f()

	assert.Equal(t, nav.RouteLogin, fx.router.Current())
	assert.False(t, fx.svc.Processing())
}

func TestRegister_SecondSubmitWhileRedirectPendingIsRefused(t *testing.T) {
	fx := withBackend(t, map[string]reply{pathRegister: {200, `{"success":true,"message":"Registered"}`}})
	ctx := context.Background()

	require.NoError(t, fx.svc.Register(ctx, validRegisterForm()))
	require.ErrorIs(t, fx.svc.Register(ctx, validRegisterForm()), ErrBusy)
	assert.Len(t, fx.backend.calls(), 1)
}

func TestRegister_CloseCancelsPendingRedirect(t *testing.T) {
	fx := withBackend(t, map[string]reply{pathRegister: {200, `{"success":true}`}})

	require.NoError(t, fx.svc.Register(context.Background(), validRegisterForm()))
	fx.svc.Close()

	require.Len(t, fx.clock.timers, 1)
	assert.True(t, fx.clock.timers[0].stopped)
	fx.clock.timers[0].f()
	assert.Equal(t, nav.RouteRegister, fx.router.Current())
	assert.False(t, fx.svc.Processing())
}

func TestRegister_ApplicationFailure(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "server message", body: `{"success":false,"message":"Email already registered"}`, want: "Email already registered"},
		{name: "generic fallback", body: `{"success":false}`, want: "Registration failed!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := withBackend(t, map[string]reply{pathRegister: {200, tt.body}})

			err := fx.svc.Register(context.Background(), validRegisterForm())

			require.ErrorIs(t, err, ErrRejected)
			assert.Equal(t, []string{tt.want}, fx.notes.Messages(notify.KindError))
			assert.Empty(t, fx.clock.timers)
			assert.False(t, fx.svc.Processing(), "a failed submission must allow another try")
		})
	}
}

func TestRegister_TransportFailureClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   string
	}{
		{name: "bad request", status: 400, want: "Bad Request: boom"},
		{name: "server error", status: 500, want: "Internal Server Error: boom"},
		{name: "other status", status: 409, want: "Error: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := withBackend(t, map[string]reply{pathRegister: {tt.status, `{"success":false,"message":"boom"}`}})

			err := fx.svc.Register(context.Background(), validRegisterForm())

			var te *api.TransportError
			require.ErrorAs(t, err, &te)
			assert.Equal(t, []string{tt.want}, fx.notes.Messages(notify.KindError))
		})
	}

	t.Run("no response", func(t *testing.T) {
		fx := newFixture(t, deadURL(t))

		err := fx.svc.Register(context.Background(), validRegisterForm())

		require.ErrorIs(t, err, api.ErrNoResponse)
		assert.Equal(t, []string{"No response from server. Please try again later."}, fx.notes.Messages(notify.KindError))
	})
}

// ---- login ----

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "a@b.com",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func TestLogin_StoresSessionAndLandsOnProfile(t *testing.T) {
	fx := withBackend(t, map[string]reply{
		pathLogin: {200, `{"success":true,"results":{"token":"opaque-token","user":{"fullname":"Jane Doe","email":"a@b.com"}}}`},
	})

	require.NoError(t, fx.svc.Login(context.Background(), validation.LoginForm{Email: "a@b.com", Password: "secret1"}))

	snap := fx.store.Snapshot()
	assert.Equal(t, "opaque-token", snap.Token)
	assert.Equal(t, &models.UserProfile{Fullname: "Jane Doe", Email: "a@b.com"}, snap.User)
	assert.Equal(t, nav.RouteProfile, fx.router.Current())
	assert.Equal(t, []string{"Login Success!"}, fx.notes.Messages(notify.KindSuccess))
}

func TestLogin_AdminLandsOnDashboard(t *testing.T) {
	tok := signedToken(t, time.Now().Add(time.Hour))
	fx := withBackend(t, map[string]reply{
		pathLogin: {200, `{"success":true,"results":{"token":"` + tok + `","user":{"email":"admin@b.com","role":"admin"}}}`},
	})

	require.NoError(t, fx.svc.Login(context.Background(), validation.LoginForm{Email: "admin@b.com", Password: "secret1"}))
	assert.Equal(t, nav.RouteDashboardAdmin, fx.router.Current())
}

func TestLogin_MissingUserFallsBackToFormEmail(t *testing.T) {
	fx := withBackend(t, map[string]reply{pathLogin: {200, `{"success":true,"results":{"token":"t"}}`}})

	require.NoError(t, fx.svc.Login(context.Background(), validation.LoginForm{Email: "bob@x.com", Password: "pw"}))
	assert.Equal(t, &models.UserProfile{Email: "bob@x.com"}, fx.store.User())
}

func TestLogin_Failures(t *testing.T) {
	expired := signedToken(t, time.Now().Add(-time.Minute))

	tests := []struct {
		name    string
		rep     reply
		wantErr error
		wantMsg string
	}{
		{name: "rejected with message", rep: reply{200, `{"success":false,"message":"Wrong email or password"}`}, wantErr: ErrRejected, wantMsg: "Wrong email or password"},
		{name: "rejected without message", rep: reply{200, `{"success":false}`}, wantErr: ErrRejected, wantMsg: "Login failed!"},
		{name: "no token", rep: reply{200, `{"success":true,"results":{}}`}, wantErr: ErrRejected, wantMsg: "Login failed!"},
		{name: "expired token", rep: reply{200, `{"success":true,"results":{"token":"` + expired + `"}}`}, wantErr: common.ErrTokenExpired, wantMsg: "Login failed!"},
		{name: "unauthorized status", rep: reply{401, `{"success":false,"message":"Wrong email or password"}`}, wantMsg: "Error: Wrong email or password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := withBackend(t, map[string]reply{pathLogin: tt.rep})

			err := fx.svc.Login(context.Background(), validation.LoginForm{Email: "a@b.com", Password: "pw"})

			require.Error(t, err)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
			assert.Equal(t, []string{tt.wantMsg}, fx.notes.Messages(notify.KindError))
			assert.False(t, fx.store.Snapshot().Authenticated())
			assert.Equal(t, nav.RouteRegister, fx.router.Current())
		})
	}
}

func TestLogin_InvalidInputNeverReachesNetwork(t *testing.T) {
	fx := withBackend(t, map[string]reply{})

	err := fx.svc.Login(context.Background(), validation.LoginForm{Email: "bad"})

	var fe validation.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Empty(t, fx.backend.calls())
}

// ---- logout ----

func TestLogout_Success(t *testing.T) {
	fx := withBackend(t, map[string]reply{pathLogout: {200, `{"success":true}`}})
	fx.loggedIn("tok", &models.UserProfile{Email: "a@b.com"})
	fx.router.Push(nav.RouteDashboardAdmin)

	require.NoError(t, fx.svc.Logout(context.Background()))

	calls := fx.backend.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, pathLogout, calls[0].path)
	assert.Equal(t, "Bearer tok", calls[0].auth)
	assert.Equal(t, map[string]any{}, calls[0].body)

	assert.Equal(t, session.Snapshot{}, fx.store.Snapshot())
	assert.Equal(t, []string{nav.RouteRegister, nav.RouteLogin}, fx.router.History(), "dashboard entry must be replaced")
	assert.Empty(t, filterErrors(fx.notes.All()))
	active := fx.notes.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "Logout Success!", active[0].Message)
}

func TestLogout_ServerFailureStillClearsSession(t *testing.T) {
	tests := []struct {
		name    string
		baseURL func(t *testing.T) string
		rep     *reply
		wantErr string
	}{
		{name: "application failure", rep: &reply{200, `{"success":false,"message":"Session unknown"}`}, wantErr: "Session unknown"},
		{name: "application failure without message", rep: &reply{200, `{"success":false}`}, wantErr: "Logout failed!"},
		{name: "status error", rep: &reply{500, `{"success":false,"message":"down"}`}, wantErr: "Logout failed due to network error"},
		{name: "no response", baseURL: deadURL, wantErr: "Logout failed due to network error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fx *fixture
			if tt.rep != nil {
				fx = withBackend(t, map[string]reply{pathLogout: *tt.rep})
			} else {
				fx = newFixture(t, tt.baseURL(t))
			}
			fx.loggedIn("tok", &models.UserProfile{Email: "a@b.com"})

			require.NoError(t, fx.svc.Logout(context.Background()))

			assert.Empty(t, fx.store.Token())
			assert.Nil(t, fx.store.User())
			assert.Equal(t, []string{tt.wantErr}, fx.notes.Messages(notify.KindError))
			assert.Equal(t, []string{"Logout Success!"}, fx.notes.Messages(notify.KindSuccess))
			assert.Equal(t, nav.RouteLogin, fx.router.Current())
		})
	}
}

func TestLogout_WithoutTokenSkipsNetwork(t *testing.T) {
	fx := withBackend(t, map[string]reply{pathLogout: {200, `{"success":true}`}})

	require.NoError(t, fx.svc.Logout(context.Background()))

	assert.Empty(t, fx.backend.calls())
	assert.Equal(t, nav.RouteLogin, fx.router.Current())
}

// ---- helpers ----

func filterErrors(all []notify.Notification) []notify.Notification {
	out := []notify.Notification{}
	for _, n := range all {
		if n.Kind == notify.KindError {
			out = append(out, n)
		}
	}
	return out
}

func TestTransportMessage_NonTransportError(t *testing.T) {
	assert.Equal(t, msgNoResponse, transportMessage(errors.New("weird")))
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()
	assert.False(t, tokenExpired("opaque", now))
	assert.False(t, tokenExpired(signedToken(t, now.Add(time.Minute)), now))
	assert.True(t, tokenExpired(signedToken(t, now.Add(-time.Minute)), now))
}
