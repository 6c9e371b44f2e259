// Package notify shows short-lived user notifications (the client's
// equivalent of toasts).
package notify

import (
	"fmt"
	"io"
	"sync"
	"time"
)

type Kind int

const (
	KindSuccess Kind = iota
	KindError
)

func (k Kind) String() string {
	if k == KindError {
		return "error"
	}
	return "success"
}

type Notification struct {
	Kind    Kind
	Message string
	At      time.Time
}

// Notifier is what flows use to report outcomes. Dismiss drops every
// notification still on screen.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Dismiss()
}

// Terminal prints notifications to w, one line each.
type Terminal struct {
	mu sync.Mutex
	w  io.Writer
}

func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

func (t *Terminal) Success(msg string) { t.print("✔", msg) }
func (t *Terminal) Error(msg string)   { t.print("✖", msg) }

// Dismiss is a no-op: printed lines cannot be taken back.
func (t *Terminal) Dismiss() {}

func (t *Terminal) print(mark, msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, "%s %s\n", mark, msg)
}

// Recorder keeps notifications in memory. Tests use it to assert on what
// the user would have seen.
type Recorder struct {
	mu         sync.Mutex
	all        []Notification
	active     []Notification
	dismissals int
	now        func() time.Time
}

func NewRecorder() *Recorder {
	return &Recorder{now: time.Now}
}

func (r *Recorder) Success(msg string) { r.add(KindSuccess, msg) }
func (r *Recorder) Error(msg string)   { r.add(KindError, msg) }

func (r *Recorder) Dismiss() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = nil
	r.dismissals++
}

// All returns every notification ever shown, in order.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.all...)
}

// Active returns notifications shown since the last Dismiss.
func (r *Recorder) Active() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.active...)
}

func (r *Recorder) Dismissals() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dismissals
}

// Messages returns the texts of every notification of kind k.
func (r *Recorder) Messages(k Kind) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, n := range r.all {
		if n.Kind == k {
			out = append(out, n.Message)
		}
	}
	return out
}

func (r *Recorder) add(k Kind, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := Notification{Kind: k, Message: msg, At: r.now()}
	r.all = append(r.all, n)
	r.active = append(r.active, n)
}
