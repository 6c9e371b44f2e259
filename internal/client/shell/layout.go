package shell

import (
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/moviebook/internal/common"
)

// View is anything the layout can host below the profile card.
type View interface {
	Render(w io.Writer)
}

// Loyalty card values. The backend does not serve them yet.
const (
	loyaltyTier   = "Moviegoers"
	loyaltyPoints = "320 Points"
)

const (
	msgLoadingUser  = "Loading user data..."
	msgUserNotFound = "User not found"
	msgNotSignedIn  = "You are not logged in. Please log in to continue."
)

// ProfileLayout renders the profile card for the guarded user and then the
// hosted page.
type ProfileLayout struct {
	guard *Guard
	child View
}

func NewProfileLayout(guard *Guard, child View) *ProfileLayout {
	return &ProfileLayout{guard: guard, child: child}
}

func (l *ProfileLayout) Render(w io.Writer) {
	switch st := l.guard.State().(type) {
	case Loading:
		fmt.Fprintln(w, msgLoadingUser)
	case Unauthenticated:
		if errors.Is(st.Err, common.ErrorUserNotFound) {
			fmt.Fprintln(w, msgUserNotFound)
			return
		}
		fmt.Fprintln(w, msgNotSignedIn)
	case Authenticated:
		fmt.Fprintf(w, "[%s] %s\n", st.User.Initials(), st.User.DisplayName())
		fmt.Fprintf(w, "  %s\n", loyaltyTier)
		fmt.Fprintf(w, "  Loyalty Points: %s (%s)\n", loyaltyPoints, loyaltyTier)
		fmt.Fprintln(w)
		if l.child != nil {
			l.child.Render(w)
		}
	default:
		panic(fmt.Sprintf("shell: unknown state %T", st))
	}
}
