// Package session holds the authenticated identity: the access token, the
// role and the user id decoded from it. One Session is constructed at
// startup and passed by reference into every component that needs it.
package session

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"
)

type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
)

var ErrMalformedToken = errors.New("malformed access token")

// Claims is the subset of the JWT payload the client reads. The backend
// puts the role either in "role" or as the first element of "roles".
type Claims struct {
	Sub   string          `json:"sub"`
	Role  string          `json:"role"`
	Roles []string        `json:"roles"`
	UID   json.RawMessage `json:"uid"`
	Exp   int64           `json:"exp"`
}

// DecodeClaims extracts the payload segment without verifying the
// signature. Verification is the backend's job; the client only needs the
// role, the user id and the expiry.
func DecodeClaims(token string) (Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Claims{}, ErrMalformedToken
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return Claims{}, ErrMalformedToken
	}
	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return Claims{}, ErrMalformedToken
	}
	return claims, nil
}

func (c Claims) ResolvedRole() Role {
	if c.Role != "" {
		return Role(c.Role)
	}
	if len(c.Roles) > 0 {
		return Role(c.Roles[0])
	}
	return ""
}

// UserID tolerates both a numeric and a string-encoded uid claim.
func (c Claims) UserID() int64 {
	if len(c.UID) == 0 {
		return 0
	}
	var n int64
	if json.Unmarshal(c.UID, &n) == nil {
		return n
	}
	var s string
	if json.Unmarshal(c.UID, &s) == nil {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
	}
	return 0
}

// Expired reports whether the exp claim has passed. A token without exp
// never expires client-side.
func (c Claims) Expired(now time.Time) bool {
	if c.Exp == 0 {
		return false
	}
	return now.Unix() >= c.Exp
}

// Session is the auth session provider.
type Session struct {
	store *Store

	mu     sync.RWMutex
	ready  bool
	token  string
	role   Role
	userID int64
}

func New(store *Store) *Session {
	return &Session{store: store}
}

// Restore loads the persisted token, discarding it when expired or
// undecodable. After Restore the session is ready regardless of outcome.
func (s *Session) Restore() error {
	token, err := s.store.Load()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = true
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}
	claims, decodeErr := DecodeClaims(token)
	if decodeErr != nil || claims.Expired(time.Now()) {
		s.token = ""
		s.role = ""
		s.userID = 0
		return nil
	}
	s.token = token
	s.role = claims.ResolvedRole()
	s.userID = claims.UserID()
	return nil
}

// SignIn persists the token and adopts its identity.
func (s *Session) SignIn(token string) error {
	claims, err := DecodeClaims(token)
	if err != nil {
		return err
	}
	if err := s.store.Save(token); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = true
	s.token = token
	s.role = claims.ResolvedRole()
	s.userID = claims.UserID()
	return nil
}

// SignOut clears the stored credential and the in-memory identity.
func (s *Session) SignOut() error {
	err := s.store.Clear()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.role = ""
	s.userID = 0
	return err
}

func (s *Session) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Role() Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

func (s *Session) UserID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

func (s *Session) IsManager() bool {
	return s.Role() == RoleManager
}
