package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/moviebook/internal/client/models"
	"github.com/dmitrijs2005/moviebook/internal/client/validation"
	"github.com/dmitrijs2005/moviebook/internal/common"
	"github.com/dmitrijs2005/moviebook/internal/devserver/auth"
)

const maxBodyBytes = 1 << 20

type ctxKey string

const claimsKey ctxKey = "claims"

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Results any    `json:"results,omitempty"`
}

type registerRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Fullname        string `json:"fullname"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResults struct {
	Token string              `json:"token"`
	User  *models.UserProfile `json:"user"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", common.ContentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeFailure(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: false, Message: msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	return dec.Decode(dst)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// the terms checkbox never leaves the client
	err := validation.ValidateRegister(validation.RegisterForm{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		AgreeToTerms:    true,
	})
	var fe validation.FieldErrors
	if errors.As(err, &fe) {
		writeFailure(w, http.StatusBadRequest, fe[fe.Fields()[0]])
		return
	}

	u, err := s.store.CreateUser(req.Email, req.Fullname, "", req.Password)
	switch {
	case errors.Is(err, common.ErrorAlreadyExists):
		writeFailure(w, http.StatusConflict, "Email already registered")
		return
	case err != nil:
		s.logger.Error(r.Context(), "create user", "error", err)
		writeFailure(w, http.StatusInternalServerError, "Could not create account")
		return
	}

	s.logger.Info(r.Context(), "user registered", "user_id", u.ID)
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Register success"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, err := s.store.Authenticate(req.Email, req.Password)
	switch {
	case errors.Is(err, common.ErrorInvalidCredentials):
		writeFailure(w, http.StatusUnauthorized, "Wrong email or password")
		return
	case err != nil:
		s.logger.Error(r.Context(), "authenticate", "error", err)
		writeFailure(w, http.StatusInternalServerError, "Login failed")
		return
	}

	token, _, err := auth.GenerateToken(u.ID, u.Email, u.Role, s.secret, s.config.TokenTTL)
	if err != nil {
		s.logger.Error(r.Context(), "sign token", "error", err)
		writeFailure(w, http.StatusInternalServerError, "Login failed")
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Login success",
		Results: loginResults{Token: token, User: u.Profile()},
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	s.store.Revoke(claims.ID, claims.ExpiresAt.Time)
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Logout success"})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Order history",
		Results: s.store.History(claims.Subject),
	})
}

// requireToken rejects requests without a valid, unrevoked bearer token and
// puts the token claims in the request context.
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthorizationHeaderName)
		token, ok := strings.CutPrefix(header, common.BearerScheme)
		if !ok || token == "" {
			writeFailure(w, http.StatusUnauthorized, "Missing token")
			return
		}

		claims, err := auth.ParseToken(token, s.secret)
		if err != nil {
			s.logger.Debug(r.Context(), "token rejected", "error", err)
			writeFailure(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		if s.store.Revoked(claims.ID) {
			writeFailure(w, http.StatusUnauthorized, "Token revoked")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	})
}

func claimsFrom(ctx context.Context) *auth.Claims {
	c, _ := ctx.Value(claimsKey).(*auth.Claims)
	return c
}
