// Package history implements the order history page: it fetches the booked
// tickets of the signed-in user and lets each row be expanded to its ticket
// details.
package history

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/moviebook/internal/client/api"
	"github.com/dmitrijs2005/moviebook/internal/client/models"
	"github.com/dmitrijs2005/moviebook/internal/client/session"
	"github.com/dmitrijs2005/moviebook/internal/logging"
)

const pathHistory = "/transactions/history"

type Status int

const (
	StatusLoading Status = iota
	StatusEmpty
	StatusPopulated
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusEmpty:
		return "empty"
	case StatusPopulated:
		return "populated"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

var (
	ErrNoSuchRow = errors.New("no such row")
	// ErrRejected marks a history answer with success:false.
	ErrRejected = errors.New("history rejected by server")
)

// Row is one history entry plus its local expanded flag.
type Row struct {
	Entry    models.HistoryEntry
	Expanded bool
}

// Page owns the fetch lifecycle of the order history. Only the latest fetch
// of a mounted page may change what it shows.
type Page struct {
	caller *api.Caller
	store  session.Reader
	logger logging.Logger

	mu        sync.Mutex
	mounted   bool
	gen       uint64
	cancel    context.CancelFunc
	settled   chan struct{}
	token     string
	status    Status
	rows      []Row
	degraded  error
	unsub     func()
	watchDone chan struct{}
}

func NewPage(caller *api.Caller, store session.Reader, logger logging.Logger) *Page {
	return &Page{caller: caller, store: store, logger: logger}
}

// Mount starts a fetch with the current token and refetches whenever the
// token changes. Rows always start collapsed.
func (p *Page) Mount() {
	p.mu.Lock()
	if p.mounted {
		p.mu.Unlock()
		return
	}
	p.mounted = true
	p.status = StatusLoading
	p.rows = nil
	p.degraded = nil
	ch, unsub := p.store.Subscribe()
	done := make(chan struct{})
	p.unsub, p.watchDone = unsub, done
	p.token = p.store.Token()
	p.startLocked(p.token)
	p.mu.Unlock()

	go func() {
		defer close(done)
		for snap := range ch {
			p.mu.Lock()
			if p.mounted && snap.Token != p.token {
				p.token = snap.Token
				p.startLocked(snap.Token)
			}
			p.mu.Unlock()
		}
	}()
}

// Unmount cancels the fetch in flight. Whatever it returns afterwards is
// dropped.
func (p *Page) Unmount() {
	p.mu.Lock()
	if !p.mounted {
		p.mu.Unlock()
		return
	}
	p.mounted = false
	p.gen++
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.status = StatusLoading
	p.rows = nil
	unsub, done := p.unsub, p.watchDone
	p.unsub, p.watchDone = nil, nil
	p.mu.Unlock()

	unsub()
	<-done
}

// WaitSettled blocks until the latest fetch has been applied, the page is
// unmounted, or ctx is done.
func (p *Page) WaitSettled(ctx context.Context) error {
	for {
		p.mu.Lock()
		ch, mounted := p.settled, p.mounted
		p.mu.Unlock()

		if !mounted || ch == nil {
			return nil
		}
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}

		p.mu.Lock()
		current := p.settled == ch
		p.mu.Unlock()
		if current {
			return nil
		}
	}
}

func (p *Page) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

func (p *Page) Rows() []Row {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Row(nil), p.rows...)
}

// Degraded returns the failure behind an Empty page, or nil when the page
// shows what the backend returned.
func (p *Page) Degraded() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.degraded
}

// Toggle flips the expanded flag of row i and returns the new value.
func (p *Page) Toggle(i int) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i < 0 || i >= len(p.rows) {
		return false, fmt.Errorf("%w: %d", ErrNoSuchRow, i+1)
	}
	p.rows[i].Expanded = !p.rows[i].Expanded
	return p.rows[i].Expanded, nil
}

// startLocked supersedes any fetch in flight. Without a token there is
// nothing to ask for and the page settles as Empty at once. p.mu must be held.
func (p *Page) startLocked(token string) {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.gen++
	if token == "" {
		settled := make(chan struct{})
		close(settled)
		p.settled = settled
		p.status = StatusEmpty
		p.rows = nil
		p.degraded = nil
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	settled := make(chan struct{})
	p.cancel, p.settled = cancel, settled
	p.status = StatusLoading

	go p.fetch(ctx, p.gen, token, settled)
}

func (p *Page) fetch(ctx context.Context, gen uint64, token string, settled chan struct{}) {
	defer close(settled)

	entries, err := p.load(ctx, token)
	if err != nil {
		entries = nil
		if !errors.Is(err, context.Canceled) {
			p.logger.Error(ctx, "failed to fetch history", "error", err)
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.mounted || gen != p.gen {
		return
	}
	p.cancel = nil
	p.degraded = err

	p.rows = make([]Row, 0, len(entries))
	for _, e := range entries {
		p.rows = append(p.rows, Row{Entry: e})
	}
	if len(p.rows) == 0 {
		p.status = StatusEmpty
	} else {
		p.status = StatusPopulated
	}
}

func (p *Page) load(ctx context.Context, token string) ([]models.HistoryEntry, error) {
	env, err := p.caller.Call(token).Get(ctx, pathHistory)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		if env.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrRejected, env.Message)
		}
		return nil, ErrRejected
	}
	return api.Decode[[]models.HistoryEntry](env)
}
