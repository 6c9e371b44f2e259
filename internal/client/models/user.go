package models

import (
	"strings"
	"unicode/utf8"
)

// PlaceholderInitials is shown when neither a full name nor a usable email
// is known.
const PlaceholderInitials = "NA"

// RoleAdmin marks accounts that land on the admin dashboard after login.
const RoleAdmin = "admin"

// UserProfile is the current user as kept in the session store.
// Initials and display name are derived, never stored.
type UserProfile struct {
	Fullname string `json:"fullname,omitempty"`
	Email    string `json:"email"`
	Role     string `json:"role,omitempty"`
}

// Initials returns the first two characters of the full name, or of the
// email local part when there is no full name, upper-cased.
func (u *UserProfile) Initials() string {
	if u == nil {
		return PlaceholderInitials
	}
	if u.Fullname != "" {
		return strings.ToUpper(firstRunes(u.Fullname, 2))
	}
	if local := u.emailLocalPart(); local != "" {
		return strings.ToUpper(firstRunes(local, 2))
	}
	return PlaceholderInitials
}

// DisplayName returns the full name, falling back to the email local part.
func (u *UserProfile) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Fullname != "" {
		return u.Fullname
	}
	return u.emailLocalPart()
}

func (u *UserProfile) IsAdmin() bool {
	return u != nil && strings.EqualFold(u.Role, RoleAdmin)
}

func (u *UserProfile) emailLocalPart() string {
	local, _, _ := strings.Cut(u.Email, "@")
	return local
}

func firstRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
