package adminclient

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// refreshTimeout bounds a shared refresh exchange. The exchange does not
// inherit any single caller's deadline.
const refreshTimeout = 15 * time.Second

// Option configures a Session.
type Option func(*Session)

// OnSessionExpired registers fn to run after a rejected refresh has cleared
// the session.
func OnSessionExpired(fn func()) Option {
	return func(s *Session) { s.onExpired = fn }
}

// Session is an admin login held in a Storage. It is safe for concurrent use.
type Session struct {
	client *Client
	store  Storage

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	admin        *Admin
	// generation changes on every login, logout and expiry. A refresh that
	// completes under a different generation is discarded.
	generation uint64

	refreshes singleflight.Group
	onExpired func()
}

// NewSession restores any session persisted in store. A restored session is
// only tentatively authenticated: the next request settles it.
func NewSession(client *Client, store Storage, opts ...Option) (*Session, error) {
	s := &Session{client: client, store: store}
	for _, opt := range opts {
		opt(s)
	}

	access, err := store.Get(KeyAccessToken)
	if err != nil {
		return nil, err
	}
	refresh, err := store.Get(KeyRefreshToken)
	if err != nil {
		return nil, err
	}
	rawAdmin, err := store.Get(KeyAdmin)
	if err != nil {
		return nil, err
	}

	if access == "" || refresh == "" {
		return s, nil
	}
	var admin *Admin
	if rawAdmin != "" {
		admin = &Admin{}
		if err := json.Unmarshal([]byte(rawAdmin), admin); err != nil {
			// A half-written session is worth nothing; start over.
			return s, store.Delete(sessionKeys...)
		}
	}
	s.accessToken, s.refreshToken, s.admin = access, refresh, admin
	return s, nil
}

// IsAuthenticated reports whether the session holds an access token.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken != ""
}

// CurrentAdmin returns a copy of the logged-in admin's profile, or nil.
func (s *Session) CurrentAdmin() *Admin {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.admin == nil {
		return nil
	}
	a := *s.admin
	return &a
}

// Login authenticates and persists the new session.
func (s *Session) Login(ctx context.Context, email, password string) (*Admin, error) {
	res, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	rawAdmin, err := json.Marshal(res.Admin)
	if err != nil {
		return nil, err
	}
	admin := res.Admin

	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	if err := s.persist(res.Tokens, string(rawAdmin)); err != nil {
		return nil, err
	}
	s.accessToken, s.refreshToken, s.admin = res.Tokens.AccessToken, res.Tokens.RefreshToken, &admin
	return &admin, nil
}

// Logout forgets the session locally. Tokens are stateless so the server is
// not contacted.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.accessToken, s.refreshToken, s.admin = "", "", nil
	return s.store.Delete(sessionKeys...)
}

// Refresh exchanges the refresh token for a new pair. Concurrent callers
// share one exchange. A rejected refresh clears the session, runs the
// OnSessionExpired hook and returns ErrSessionExpired. A logout while the
// exchange is in flight wins: the new pair is discarded and
// ErrNotAuthenticated is returned.
func (s *Session) Refresh(ctx context.Context) error {
	return s.refreshFrom(ctx, "")
}

// refreshFrom refreshes unless the access token has moved on from rejected,
// which means another caller already refreshed on its behalf. The exchange
// runs detached from ctx so one caller giving up does not fail the others;
// ctx only bounds how long this caller waits.
func (s *Session) refreshFrom(ctx context.Context, rejected string) error {
	flightCtx := context.WithoutCancel(ctx)
	ch := s.refreshes.DoChan("refresh", func() (any, error) {
		if rejected != "" {
			s.mu.RLock()
			current := s.accessToken
			s.mu.RUnlock()
			if current != rejected {
				return nil, nil
			}
		}
		fctx, cancel := context.WithTimeout(flightCtx, refreshTimeout)
		defer cancel()
		return nil, s.refresh(fctx)
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) refresh(ctx context.Context) error {
	s.mu.RLock()
	refreshToken, gen := s.refreshToken, s.generation
	s.mu.RUnlock()
	if refreshToken == "" {
		return ErrNotAuthenticated
	}

	tokens, err := s.client.Refresh(ctx, refreshToken)
	if err != nil {
		if isRejection(err) {
			if !s.expire(gen) {
				return s.superseded()
			}
			return ErrSessionExpired
		}
		return fmt.Errorf("refresh: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen || s.refreshToken != refreshToken {
		return s.supersededLocked()
	}
	if err := s.persist(tokens, ""); err != nil {
		return err
	}
	s.accessToken, s.refreshToken = tokens.AccessToken, tokens.RefreshToken
	return nil
}

// superseded reports the outcome of a refresh whose session was replaced
// while the exchange was in flight: nil if a newer login holds the session,
// ErrNotAuthenticated if it was logged out.
func (s *Session) superseded() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.supersededLocked()
}

func (s *Session) supersededLocked() error {
	if s.accessToken == "" {
		return ErrNotAuthenticated
	}
	return nil
}

// Do performs an authenticated request and decodes the response data into
// out. A 401 triggers at most one refresh and one retry.
func (s *Session) Do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	s.mu.RLock()
	token := s.accessToken
	s.mu.RUnlock()
	if token == "" {
		return ErrNotAuthenticated
	}

	err := s.client.send(ctx, method, path, token, payload, out)
	if !IsUnauthorized(err) {
		return err
	}

	if err := s.refreshFrom(ctx, token); err != nil {
		return err
	}
	s.mu.RLock()
	current := s.accessToken
	s.mu.RUnlock()
	if current == "" {
		return ErrSessionExpired
	}

	return s.client.send(ctx, method, path, current, payload, out)
}

// persist writes the pair, and the admin profile when given. Caller holds mu.
func (s *Session) persist(tokens Tokens, rawAdmin string) error {
	if err := s.store.Set(KeyAccessToken, tokens.AccessToken); err != nil {
		return err
	}
	if err := s.store.Set(KeyRefreshToken, tokens.RefreshToken); err != nil {
		return err
	}
	if rawAdmin != "" {
		return s.store.Set(KeyAdmin, rawAdmin)
	}
	return nil
}

// expire clears the session if it is still generation gen and reports
// whether it did.
func (s *Session) expire(gen uint64) bool {
	s.mu.Lock()
	if s.generation != gen {
		s.mu.Unlock()
		return false
	}
	s.generation++
	s.accessToken, s.refreshToken, s.admin = "", "", nil
	// The in-memory session is gone even if storage refuses the delete.
	_ = s.store.Delete(sessionKeys...)
	s.mu.Unlock()

	if s.onExpired != nil {
		s.onExpired()
	}
	return true
}
