// Package session tracks the signed-in account on the client side. A
// manager starts in the loading state, resolves to authenticated or
// anonymous once the stored session has been checked, and fans state
// changes out to subscribers so views can react without polling.
package session

import (
	"context"
	"sync"
)

// State is the lifecycle position of the session.
type State int

const (
	StateLoading State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// Account is the signed-in identity as the client sees it.
type Account struct {
	UserID uint64
	Email  string
}

// AuthAPI is the server surface the manager drives. Implemented over the
// /v1/auth endpoints; faked in tests.
type AuthAPI interface {
	SignUp(ctx context.Context, email, password string) (Account, error)
	SignIn(ctx context.Context, email, password string) (Account, error)
	SignOut(ctx context.Context) error
	// Restore reports the stored session, if any.
	Restore(ctx context.Context) (Account, bool, error)
	// AdminFlag fetches the database-backed admin flag for a user.
	AdminFlag(ctx context.Context, userID uint64) (bool, error)
}

type adminStatus int

const (
	adminPending adminStatus = iota
	adminNo
	adminYes
)

// Manager holds the current session state. Safe for concurrent use.
type Manager struct {
	api AuthAPI

	mu      sync.Mutex
	state   State
	account Account
	admin   adminStatus
	subs    map[int]chan State
	next    int
}

// NewManager returns a manager in the loading state. Call Start to resolve
// the stored session.
func NewManager(api AuthAPI) *Manager {
	return &Manager{api: api, state: StateLoading, subs: make(map[int]chan State)}
}

// Start resolves the stored session and settles into authenticated or
// anonymous. A restore error settles into anonymous rather than leaving the
// client stuck in loading.
func (m *Manager) Start(ctx context.Context) {
	acct, ok, err := m.api.Restore(ctx)
	if err != nil || !ok {
		m.transition(StateAnonymous, Account{})
		return
	}
	m.transition(StateAuthenticated, acct)
	m.refreshAdmin(ctx, acct.UserID)
}

// SignUp registers a new account and signs it in. The API error is returned
// unchanged so callers can show the server's message.
func (m *Manager) SignUp(ctx context.Context, email, password string) error {
	acct, err := m.api.SignUp(ctx, email, password)
	if err != nil {
		return err
	}
	m.transition(StateAuthenticated, acct)
	m.refreshAdmin(ctx, acct.UserID)
	return nil
}

// SignIn authenticates with existing credentials. On failure the current
// state is untouched and the API error is returned unchanged.
func (m *Manager) SignIn(ctx context.Context, email, password string) error {
	acct, err := m.api.SignIn(ctx, email, password)
	if err != nil {
		return err
	}
	m.transition(StateAuthenticated, acct)
	m.refreshAdmin(ctx, acct.UserID)
	return nil
}

// SignOut ends the session. The local state goes anonymous even if the
// server call fails, since the client has discarded its tokens either way.
func (m *Manager) SignOut(ctx context.Context) error {
	err := m.api.SignOut(ctx)
	m.transition(StateAnonymous, Account{})
	return err
}

// State returns the current lifecycle position.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Account returns the signed-in identity. ok is false unless authenticated.
func (m *Manager) Account() (Account, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.account, m.state == StateAuthenticated
}

// IsAdmin reports whether the signed-in user holds the admin flag. While
// the flag is still being fetched it reads as false, so admin affordances
// never flash for users who turn out not to be authorized.
func (m *Manager) IsAdmin() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == StateAuthenticated && m.admin == adminYes
}

// Subscribe registers an observer for state transitions. The returned
// cancel is idempotent and closes the channel.
func (m *Manager) Subscribe() (<-chan State, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.next
	m.next++
	ch := make(chan State, 4)
	m.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			delete(m.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

func (m *Manager) transition(s State, acct Account) {
	m.mu.Lock()
	m.state = s
	m.account = acct
	m.admin = adminPending
	for _, ch := range m.subs {
		select {
		case ch <- s:
		default:
		}
	}
	m.mu.Unlock()
}

func (m *Manager) refreshAdmin(ctx context.Context, userID uint64) {
	isAdmin, err := m.api.AdminFlag(ctx, userID)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateAuthenticated || m.account.UserID != userID {
		return // signed out or switched accounts while fetching
	}
	if err != nil {
		m.admin = adminPending
		return
	}
	if isAdmin {
		m.admin = adminYes
	} else {
		m.admin = adminNo
	}
}
