// Package shell holds the guarded page chrome: the profile layout that only
// renders for a signed-in user, and the admin navigation bar.
package shell

import (
	"github.com/dmitrijs2005/moviebook/internal/client/models"
	"github.com/dmitrijs2005/moviebook/internal/client/session"
	"github.com/dmitrijs2005/moviebook/internal/common"
)

// State is one of Loading, Authenticated or Unauthenticated.
type State interface {
	isState()
}

// Loading is the state before the first session check.
type Loading struct{}

// Authenticated carries the signed-in user.
type Authenticated struct {
	User *models.UserProfile
}

// Unauthenticated carries the reason no user can be shown.
type Unauthenticated struct {
	Err error
}

func (Loading) isState()         {}
func (Authenticated) isState()   {}
func (Unauthenticated) isState() {}

// Derive maps a session snapshot to a shell state. It never yields Loading.
func Derive(s session.Snapshot) State {
	switch {
	case s.Token == "":
		return Unauthenticated{Err: common.ErrorNotAuthenticated}
	case s.User == nil:
		return Unauthenticated{Err: common.ErrorUserNotFound}
	default:
		return Authenticated{User: s.User}
	}
}
