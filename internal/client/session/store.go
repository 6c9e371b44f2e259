package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/moviebook/internal/client/models"
	"github.com/dmitrijs2005/moviebook/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/moviebook/internal/common"
	"github.com/dmitrijs2005/moviebook/internal/dbx"
	"github.com/dmitrijs2005/moviebook/internal/logging"
)

// Snapshot is an immutable view of the session at one point in time.
// User is only meaningful when Token is non-empty.
type Snapshot struct {
	Token string
	User  *models.UserProfile
}

func (s Snapshot) Authenticated() bool { return s.Token != "" }

// Reader is the read-only role handed to views.
type Reader interface {
	Snapshot() Snapshot
	Token() string
	User() *models.UserProfile
	// Subscribe delivers the latest snapshot after every change. Slow
	// subscribers only ever see the most recent value. The returned func
	// unsubscribes and closes the channel.
	Subscribe() (<-chan Snapshot, func())
}

// Writer is the role handed to the login and logout flows.
type Writer interface {
	Reader
	Set(ctx context.Context, token string, user *models.UserProfile) error
	Clear(ctx context.Context) error
}

type Store struct {
	db     *sql.DB
	logger logging.Logger

	mu     sync.RWMutex
	cur    Snapshot
	subs   map[uint64]chan Snapshot
	nextID uint64
}

var _ Writer = (*Store)(nil)

// Open opens (and migrates) the session database at dsn and returns a store
// loaded from it.
func Open(ctx context.Context, dsn string, logger logging.Logger) (*Store, error) {
	db, err := OpenDatabase(ctx, dsn)
	if err != nil {
		return nil, err
	}
	s, err := NewStore(ctx, db, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewStore builds a store over an already migrated database and loads
// whatever session it holds.
func NewStore(ctx context.Context, db *sql.DB, logger logging.Logger) (*Store, error) {
	s := &Store{db: db, logger: logger, subs: make(map[uint64]chan Snapshot)}
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load(ctx context.Context) error {
	rows, err := metadata.NewSQLiteRepository(s.db).List(ctx)
	if err != nil {
		return err
	}

	token, ok := rows[metadata.KeyToken]
	if !ok {
		return nil
	}
	snap := Snapshot{Token: string(token)}
	if raw, ok := rows[metadata.KeyUser]; ok {
		var u models.UserProfile
		if err := json.Unmarshal(raw, &u); err != nil {
			return fmt.Errorf("decode stored user: %w", err)
		}
		snap.User = &u
	}

	s.mu.Lock()
	s.cur = snap
	s.mu.Unlock()
	return nil
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySnapshot(s.cur)
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.Token
}

func (s *Store) User() *models.UserProfile {
	return s.Snapshot().User
}

// Set replaces token and user in one transaction. On failure the previous
// session stays in place.
func (s *Store) Set(ctx context.Context, token string, user *models.UserProfile) error {
	if token == "" {
		return common.ErrorEmptyToken
	}

	var rawUser []byte
	if user != nil {
		b, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("encode user: %w", err)
		}
		rawUser = b
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, metadata.KeyToken, []byte(token)); err != nil {
			return err
		}
		if rawUser == nil {
			return repo.Delete(ctx, metadata.KeyUser)
		}
		return repo.Set(ctx, metadata.KeyUser, rawUser)
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.replace(Snapshot{Token: token, User: user})
	return nil
}

// Clear drops token and user together. The in-memory session is cleared even
// when the database write fails, so a logout can never leave a live session
// behind; the error is still returned.
func (s *Store) Clear(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Clear(ctx)
	})

	s.replace(Snapshot{})

	if err != nil {
		s.logger.Error(ctx, "session database not cleared", "error", err)
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(ch)
		})
	}
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) replace(next Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cur = copySnapshot(next)
	for _, ch := range s.subs {
		// keep only the newest value for slow readers
		select {
		case <-ch:
		default:
		}
		ch <- copySnapshot(s.cur)
	}
}

func copySnapshot(s Snapshot) Snapshot {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}
