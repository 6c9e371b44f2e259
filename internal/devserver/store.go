package devserver

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/moviebook/internal/client/models"
	"github.com/dmitrijs2005/moviebook/internal/common"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User is an account of the development backend.
type User struct {
	ID           string
	Email        string
	Fullname     string
	Role         string
	PasswordHash []byte
}

func (u *User) Profile() *models.UserProfile {
	return &models.UserProfile{Fullname: u.Fullname, Email: u.Email, Role: u.Role}
}

// Store keeps accounts, order history and revoked token ids in memory.
type Store struct {
	mu      sync.RWMutex
	byEmail map[string]*User
	history map[string][]models.HistoryEntry
	revoked map[string]time.Time
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{
		byEmail: make(map[string]*User),
		history: make(map[string][]models.HistoryEntry),
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser hashes password with bcrypt and stores a new account.
// An email already in use yields common.ErrorAlreadyExists.
func (s *Store) CreateUser(email, fullname, role, password string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &User{
		ID:           uuid.NewString(),
		Email:        normalizeEmail(email),
		Fullname:     fullname,
		Role:         role,
		PasswordHash: hash,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[u.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	s.byEmail[u.Email] = u
	return u, nil
}

// Authenticate returns the account for email when password matches.
func (s *Store) Authenticate(email, password string) (*User, error) {
	s.mu.RLock()
	u, ok := s.byEmail[normalizeEmail(email)]
	s.mu.RUnlock()
	if !ok {
		return nil, common.ErrorInvalidCredentials
	}

	err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return nil, common.ErrorInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Store) AddHistory(userID string, entries ...models.HistoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history[userID] = append(s.history[userID], entries...)
}

// History returns the orders of userID, never nil.
func (s *Store) History(userID string) []models.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.HistoryEntry{}, s.history[userID]...)
}

// Revoke marks token id jti as logged out until exp. Entries past their
// expiry are pruned on the way.
func (s *Store) Revoke(jti string, exp time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for id, until := range s.revoked {
		if until.Before(now) {
			delete(s.revoked, id)
		}
	}
	s.revoked[jti] = exp
}

func (s *Store) Revoked(jti string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.revoked[jti]
	return ok
}
