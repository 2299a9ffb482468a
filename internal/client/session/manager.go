// Package session owns the client's authentication state: it performs
// login, logout and token refresh against the backend, persists credentials
// into the chosen storage scope, and keeps the access token fresh with a
// background timer. All other client code reads tokens and the current user
// through the Manager, never from storage directly.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/olivecrm/olivecrm/internal/client/models"
	"github.com/olivecrm/olivecrm/internal/client/storage"
	"github.com/olivecrm/olivecrm/internal/logging"
)

var (
	// ErrNoRefreshToken is returned by Refresh when no refresh token is held.
	ErrNoRefreshToken = errors.New("no refresh token")
	// ErrSessionReplaced is returned when an in-flight refresh completes
	// after the session it belonged to was logged out or replaced.
	ErrSessionReplaced = errors.New("session replaced")
	// ErrNotAuthenticated is returned by operations that need a live session.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// refreshLeeway is how long before expiry the background refresh fires.
const refreshLeeway = 60 * time.Second

// AuthAPI is the slice of the backend the Manager talks to. It must go over
// a plain transport: the gatekeeper never intercepts auth endpoints.
type AuthAPI interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	Logout(ctx context.Context, refresh string) error
	Refresh(ctx context.Context, refresh string) (*models.TokenRefreshResponse, error)
}

// State is a snapshot of the session, published to subscribers on every
// change.
type State struct {
	Authenticated bool
	User          *models.User
	AccessToken   string
	RefreshToken  string
	Loading       bool
	Err           error
}

// Manager drives the session lifecycle.
type Manager struct {
	api     AuthAPI
	durable storage.Store
	session storage.Store
	log     logging.Logger

	mu    sync.Mutex
	state State
	// scope is the store holding the current credentials: durable when the
	// user asked to be remembered, session otherwise.
	scope storage.Store
	// epoch increments on every login/logout; async refresh results carrying
	// a stale epoch are discarded instead of resurrecting dead credentials.
	epoch uint64
	timer *time.Timer

	subMu sync.Mutex
	subs  map[int]func(State)
	subID int

	// now is replaceable in tests.
	now func() time.Time
}

func NewManager(api AuthAPI, durable, session storage.Store, log logging.Logger) *Manager {
	return &Manager{
		api:     api,
		durable: durable,
		session: session,
		log:     log,
		scope:   session,
		subs:    make(map[int]func(State)),
		now:     time.Now,
	}
}

// Subscribe registers fn to be called with every state change. It is called
// immediately with the current state. The returned function unsubscribes.
func (m *Manager) Subscribe(fn func(State)) func() {
	m.subMu.Lock()
	id := m.subID
	m.subID++
	m.subs[id] = fn
	m.subMu.Unlock()

	fn(m.State())

	return func() {
		m.subMu.Lock()
		delete(m.subs, id)
		m.subMu.Unlock()
	}
}

// State returns a snapshot of the current session state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Token returns the current access token, empty when logged out. When the
// in-memory state is empty, for example before Hydrate has run, it falls
// back to the stored token so the transport can still authenticate.
func (m *Manager) Token() string {
	m.mu.Lock()
	tok := m.state.AccessToken
	m.mu.Unlock()
	if tok != "" {
		return tok
	}

	ctx := context.Background()
	for _, s := range []storage.Store{m.durable, m.session} {
		if v, err := s.Get(ctx, storage.KeyAccessToken); err == nil && len(v) > 0 {
			return string(v)
		}
	}
	return ""
}

// CurrentUser returns the logged-in user, or nil.
func (m *Manager) CurrentUser() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.User
}

// IsAuthenticated reports whether a session is active.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Authenticated
}

// Login authenticates against the backend and persists the credentials into
// the scope selected by req.RememberMe. Credentials in the other scope are
// cleared so only one copy ever exists.
func (m *Manager) Login(ctx context.Context, req models.LoginRequest) (*models.User, error) {
	m.setLoading(true)

	resp, err := m.api.Login(ctx, req)
	if err != nil {
		m.mu.Lock()
		m.state.Loading = false
		m.state.Err = err
		st := m.state
		m.mu.Unlock()
		m.broadcast(st)
		return nil, err
	}

	scope, other := m.session, m.durable
	if req.RememberMe {
		scope, other = m.durable, m.session
	}

	if err := persistCredentials(ctx, scope, resp.Access, resp.Refresh, &resp.User); err != nil {
		m.log.Warn(ctx, "failed to persist credentials", "error", err)
	}
	clearCredentials(ctx, other)

	m.mu.Lock()
	m.epoch++
	m.scope = scope
	m.state = State{
		Authenticated: true,
		User:          &resp.User,
		AccessToken:   resp.Access,
		RefreshToken:  resp.Refresh,
	}
	st := m.state
	m.armTimerLocked(resp.Access)
	m.mu.Unlock()

	m.log.Info(ctx, "logged in", "username", resp.User.Username, "remember", req.RememberMe)
	m.broadcast(st)
	return &resp.User, nil
}

// Logout notifies the backend (best effort, once) and clears credentials
// from both scopes. The theme preference is left untouched.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	refresh := m.state.RefreshToken
	m.epoch++
	m.stopTimerLocked()
	m.state = State{}
	m.scope = m.session
	st := m.state
	m.mu.Unlock()

	if refresh != "" {
		if err := m.api.Logout(ctx, refresh); err != nil {
			m.log.Warn(ctx, "logout request failed", "error", err)
		}
	}

	clearCredentials(ctx, m.durable)
	clearCredentials(ctx, m.session)

	m.log.Info(ctx, "logged out")
	m.broadcast(st)
}

// Refresh exchanges the held refresh token for a new access token. On
// success the new tokens replace the old ones in the active scope. On
// failure the session is torn down locally: both scopes are cleared and an
// unauthenticated state is published.
func (m *Manager) Refresh(ctx context.Context) (string, error) {
	m.mu.Lock()
	refresh := m.state.RefreshToken
	epoch := m.epoch
	m.mu.Unlock()

	if refresh == "" {
		st := m.clearSession(ctx, ErrNoRefreshToken)
		m.log.Warn(ctx, "no refresh token held, session cleared")
		m.broadcast(st)
		return "", ErrNoRefreshToken
	}

	resp, err := m.api.Refresh(ctx, refresh)

	m.mu.Lock()
	if m.epoch != epoch {
		m.mu.Unlock()
		return "", ErrSessionReplaced
	}
	if err != nil {
		m.mu.Unlock()
		st := m.clearSession(ctx, err)
		m.log.Warn(ctx, "token refresh failed, session cleared", "error", err)
		m.broadcast(st)
		return "", err
	}

	m.state.AccessToken = resp.Access
	if resp.Refresh != "" {
		m.state.RefreshToken = resp.Refresh
	}
	st := m.state
	scope := m.scope
	m.armTimerLocked(resp.Access)
	m.mu.Unlock()

	if err := scope.Set(ctx, storage.KeyAccessToken, []byte(resp.Access)); err != nil {
		m.log.Warn(ctx, "failed to persist access token", "error", err)
	}
	if resp.Refresh != "" {
		if err := scope.Set(ctx, storage.KeyRefreshToken, []byte(resp.Refresh)); err != nil {
			m.log.Warn(ctx, "failed to persist refresh token", "error", err)
		}
	}

	m.broadcast(st)
	return resp.Access, nil
}

// Hydrate restores a previous session from storage, preferring the durable
// scope. An expired access token is refreshed immediately when a refresh
// token is present; records that cannot be restored (expired with no refresh
// token, or missing the user) are wiped from both scopes.
func (m *Manager) Hydrate(ctx context.Context) error {
	scope := m.durable
	access, refresh, user, err := readCredentials(ctx, scope)
	if err != nil {
		return err
	}
	if access == "" && refresh == "" {
		scope = m.session
		access, refresh, user, err = readCredentials(ctx, scope)
		if err != nil {
			return err
		}
	}
	if access == "" && refresh == "" {
		return nil
	}

	// A record with no user, or an expired token with nothing to refresh it
	// with, is not a restorable session. Wipe it so later requests do not
	// keep sending a dead token.
	valid := access != "" && !IsExpired(access, m.now())
	if user == nil || (!valid && refresh == "") {
		st := m.clearSession(ctx, nil)
		m.log.Warn(ctx, "discarding unusable stored session")
		m.broadcast(st)
		return nil
	}

	m.mu.Lock()
	m.epoch++
	m.scope = scope
	m.state = State{
		Authenticated: valid,
		User:          user,
		AccessToken:   access,
		RefreshToken:  refresh,
	}
	st := m.state
	if st.Authenticated {
		m.armTimerLocked(access)
	}
	m.mu.Unlock()
	m.broadcast(st)

	if !st.Authenticated {
		if _, err := m.Refresh(ctx); err != nil {
			return err
		}
		m.mu.Lock()
		m.state.Authenticated = true
		m.state.User = user
		st = m.state
		m.mu.Unlock()
		m.broadcast(st)
	}
	return nil
}

// Theme returns the stored UI theme, empty when unset.
func (m *Manager) Theme(ctx context.Context) string {
	v, err := m.durable.Get(ctx, storage.KeyTheme)
	if err != nil {
		m.log.Warn(ctx, "failed to read theme", "error", err)
		return ""
	}
	return string(v)
}

// SetTheme stores the UI theme in the durable scope; it survives logout.
func (m *Manager) SetTheme(ctx context.Context, theme string) error {
	return m.durable.Set(ctx, storage.KeyTheme, []byte(theme))
}

// HasRole reports whether the current user has the given role.
func (m *Manager) HasRole(role models.UserRole) bool {
	return m.CurrentUser().HasRole(role)
}

// HasPermission reports whether the current user carries the permission.
func (m *Manager) HasPermission(permission string) bool {
	return m.CurrentUser().HasPermission(permission)
}

// SetUser replaces the cached user record, e.g. after a profile update.
func (m *Manager) SetUser(ctx context.Context, user *models.User) {
	m.mu.Lock()
	if !m.state.Authenticated {
		m.mu.Unlock()
		return
	}
	m.state.User = user
	st := m.state
	scope := m.scope
	m.mu.Unlock()

	if data, err := json.Marshal(user); err == nil {
		if err := scope.Set(ctx, storage.KeyCurrentUser, data); err != nil {
			m.log.Warn(ctx, "failed to persist user", "error", err)
		}
	}
	m.broadcast(st)
}

// Close stops the background refresh timer.
func (m *Manager) Close() {
	m.mu.Lock()
	m.stopTimerLocked()
	m.mu.Unlock()
}

// armTimerLocked schedules a silent refresh refreshLeeway before the access
// token expires. Tokens already inside the leeway window are not scheduled;
// the gatekeeper's 401 path covers them. Caller holds m.mu.
func (m *Manager) armTimerLocked(access string) {
	m.stopTimerLocked()
	exp := ExpiresAt(access)
	if exp.IsZero() {
		return
	}
	delay := exp.Sub(m.now()) - refreshLeeway
	if delay <= 0 {
		return
	}
	epoch := m.epoch
	m.timer = time.AfterFunc(delay, func() {
		m.refreshTick(epoch)
	})
}

// clearSession tears the session down locally: the refresh timer is stopped,
// the state is reset carrying only err, and credentials are wiped from both
// scopes. It returns the state the caller should broadcast.
func (m *Manager) clearSession(ctx context.Context, err error) State {
	m.mu.Lock()
	m.stopTimerLocked()
	m.epoch++
	m.state = State{Err: err}
	st := m.state
	m.scope = m.session
	m.mu.Unlock()

	clearCredentials(ctx, m.durable)
	clearCredentials(ctx, m.session)
	return st
}

func (m *Manager) stopTimerLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

func (m *Manager) refreshTick(epoch uint64) {
	m.mu.Lock()
	stale := m.epoch != epoch
	m.mu.Unlock()
	if stale {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if _, err := m.Refresh(ctx); err != nil && !errors.Is(err, ErrSessionReplaced) {
		m.log.Warn(ctx, "scheduled token refresh failed", "error", err)
	}
}

func (m *Manager) setLoading(loading bool) {
	m.mu.Lock()
	m.state.Loading = loading
	m.state.Err = nil
	st := m.state
	m.mu.Unlock()
	m.broadcast(st)
}

func (m *Manager) broadcast(st State) {
	m.subMu.Lock()
	fns := make([]func(State), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.subMu.Unlock()
	for _, fn := range fns {
		fn(st)
	}
}

func persistCredentials(ctx context.Context, s storage.Store, access, refresh string, user *models.User) error {
	if err := s.Set(ctx, storage.KeyAccessToken, []byte(access)); err != nil {
		return err
	}
	if err := s.Set(ctx, storage.KeyRefreshToken, []byte(refresh)); err != nil {
		return err
	}
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.Set(ctx, storage.KeyCurrentUser, data)
}

func clearCredentials(ctx context.Context, s storage.Store) {
	for _, key := range storage.CredentialKeys {
		_ = s.Delete(ctx, key)
	}
}

func readCredentials(ctx context.Context, s storage.Store) (access, refresh string, user *models.User, err error) {
	a, err := s.Get(ctx, storage.KeyAccessToken)
	if err != nil {
		return "", "", nil, err
	}
	r, err := s.Get(ctx, storage.KeyRefreshToken)
	if err != nil {
		return "", "", nil, err
	}
	u, err := s.Get(ctx, storage.KeyCurrentUser)
	if err != nil {
		return "", "", nil, err
	}
	if len(u) > 0 {
		user = &models.User{}
		if err := json.Unmarshal(u, user); err != nil {
			user = nil
		}
	}
	return string(a), string(r), user, nil
}
