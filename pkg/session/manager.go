package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shuldan/underc0de-admin/pkg/contracts"
)

const loginRoute = "/login"

// Manager owns the signed-in session: the bearer token and the user record
// kept in the credential store, mirrored in memory.
type Manager struct {
	store     contracts.KeyValueStore
	navigator contracts.Navigator
	logger    contracts.Logger
	now       func() time.Time

	mu    sync.RWMutex
	token string
	user  *User
}

var (
	_ contracts.TokenSource        = (*Manager)(nil)
	_ contracts.SessionInvalidator = (*Manager)(nil)
)

func NewManager(store contracts.KeyValueStore, navigator contracts.Navigator, logger contracts.Logger) *Manager {
	return &Manager{store: store, navigator: navigator, logger: logger, now: time.Now}
}

func (m *Manager) Login(ctx context.Context, token string, user User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	// Memory is updated first so the echo of our own write is not taken for
	// another login.
	m.mu.Lock()
	m.token, m.user = token, &user
	m.mu.Unlock()

	if err := m.store.Set(ctx, contracts.SessionTokenKey, token); err != nil {
		m.drop()
		return err
	}
	if err := m.store.Set(ctx, contracts.SessionUserKey, string(data)); err != nil {
		m.drop()
		return err
	}

	m.logger.Info("session started", "user_id", user.ID, "role", user.Role)
	return nil
}

// Restore loads a persisted session. Both keys must be present; a user record
// that does not parse or a token past its exp claim clears the store.
func (m *Manager) Restore(ctx context.Context) (bool, error) {
	token, hasToken, err := m.store.Get(ctx, contracts.SessionTokenKey)
	if err != nil {
		return false, err
	}
	raw, hasUser, err := m.store.Get(ctx, contracts.SessionUserKey)
	if err != nil {
		return false, err
	}
	if !hasToken || !hasUser || token == "" || raw == "" {
		return false, nil
	}

	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		m.logger.Warn("discarding stored session", "error", ErrCorruptUser.WithCause(err))
		return false, m.clear(ctx)
	}
	if m.expired(token) {
		m.logger.Info("stored token expired", "user_id", user.ID)
		return false, m.clear(ctx)
	}

	m.mu.Lock()
	m.token, m.user = token, &user
	m.mu.Unlock()
	return true, nil
}

// expired only judges tokens that parse as JWTs carrying an exp claim.
// Opaque tokens are left to the API.
func (m *Manager) expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(m.now())
}

// Logout clears the session and sends the user to the login screen.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.clear(ctx); err != nil {
		return err
	}
	return m.navigate(ctx, "")
}

// Invalidate clears the session after the API rejected the token.
func (m *Manager) Invalidate(ctx context.Context) error {
	return m.clear(ctx)
}

func (m *Manager) clear(ctx context.Context) error {
	m.drop()
	return m.store.Delete(ctx, contracts.SessionTokenKey, contracts.SessionUserKey)
}

func (m *Manager) drop() {
	m.mu.Lock()
	m.token, m.user = "", nil
	m.mu.Unlock()
}

// Token reads the store rather than memory, so a login made by another
// process is used right away.
func (m *Manager) Token(ctx context.Context) (string, error) {
	token, _, err := m.store.Get(ctx, contracts.SessionTokenKey)
	return token, err
}

func (m *Manager) User() (User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.user == nil {
		return User{}, false
	}
	return *m.user, true
}

func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil && m.token != ""
}

func (m *Manager) UpdateUser(ctx context.Context, patch UserPatch) (User, error) {
	m.mu.Lock()
	if m.user == nil {
		m.mu.Unlock()
		return User{}, ErrNotAuthenticated
	}
	next := m.user.apply(patch)
	m.user = &next
	m.mu.Unlock()

	data, err := json.Marshal(next)
	if err != nil {
		return User{}, err
	}
	return next, m.store.Set(ctx, contracts.SessionUserKey, string(data))
}

func (m *Manager) HasPermission(role string) bool {
	user, ok := m.User()
	return ok && user.Can(role)
}

// Listen applies changes written by other sessions sharing the store until
// ctx is done. A different user signing in ends this session; a removed
// token drops it silently.
func (m *Manager) Listen(ctx context.Context) error {
	changes, err := m.store.Watch(ctx)
	if err != nil {
		return err
	}

	for change := range changes {
		m.apply(ctx, change)
	}
	return nil
}

func (m *Manager) apply(ctx context.Context, change contracts.KeyValueChange) {
	switch change.Key {
	case contracts.SessionUserKey:
		if change.Deleted || change.Value == "" {
			return
		}
		var incoming User
		if err := json.Unmarshal([]byte(change.Value), &incoming); err != nil {
			m.logger.Warn("ignoring user change", "error", ErrCorruptUser.WithCause(err))
			return
		}

		m.mu.Lock()
		replaced := m.user != nil && m.user.ID != incoming.ID
		if replaced {
			m.token, m.user = "", nil
		}
		m.mu.Unlock()

		if replaced {
			m.logger.Info("session replaced by another login", "user_id", incoming.ID)
			reason := fmt.Sprintf("Sesión cerrada: %s se ha logueado en otra pestaña.", incoming.Name)
			if err := m.navigate(ctx, reason); err != nil {
				m.logger.Error("navigation failed", "error", err)
			}
		}
	case contracts.SessionTokenKey:
		if change.Deleted || change.Value == "" {
			m.drop()
		}
	}
}

func (m *Manager) navigate(ctx context.Context, reason string) error {
	if m.navigator == nil {
		return nil
	}
	return m.navigator.Navigate(ctx, loginRoute, reason)
}
