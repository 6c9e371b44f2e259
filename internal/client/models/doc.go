// Package models defines the client-side data models of the moviebook client:
// the signed-in user profile and the booking history rows served by the API.
package models
