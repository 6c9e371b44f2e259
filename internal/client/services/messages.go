package services

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/moviebook/internal/client/api"
)

const (
	msgRegisterFailed  = "Registration failed!"
	msgRegisterSuccess = "Registration successful!"
	msgLoginFailed     = "Login failed!"
	msgLoginSuccess    = "Login Success!"
	msgLogoutFailed    = "Logout failed!"
	msgLogoutNetwork   = "Logout failed due to network error"
	msgLogoutSuccess   = "Logout Success!"
	msgNoResponse      = "No response from server. Please try again later."
)

// transportMessage turns a transport failure into the text shown to the user.
func transportMessage(err error) string {
	var te *api.TransportError
	if !errors.As(err, &te) || !te.HasResponse() {
		return msgNoResponse
	}
	switch te.Status {
	case http.StatusBadRequest:
		return "Bad Request: " + te.Message
	case http.StatusInternalServerError:
		return "Internal Server Error: " + te.Message
	default:
		return "Error: " + te.Message
	}
}

func orDefault(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}
