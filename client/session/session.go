// Package session holds the client-side session: the Discord bearer token
// and the logged-in users profile, including the guild snapshot taken at
// login time.
//
// Storage sits behind the Store interface so browser local storage, a signed
// cookie jar or a server-side session table are drop-in substitutions
// without touching view logic.
package session

import (
	"sync"

	"github.com/musik-cafe/dashboard/types"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	TokenKey        = "discord_token"
	UserKey         = "discord_user"
	RefreshTokenKey = "discord_refresh_token"
)

// LoginPath is where guarded views send the user when no token is present
const LoginPath = "/login"

// Store is a key-value storage area a session lives in
type Store interface {
	Get(key string) (string, bool)
	Set(key string, value string)
	Delete(key string)
	Clear()
}

type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

func (m *MemoryStore) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryStore) Set(key string, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
}

func (m *MemoryStore) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
}

func (m *MemoryStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values = map[string]string{}
}

// Manager binds the durable store (browser local storage) and the per-tab
// session store
type Manager struct {
	Local   Store
	Session Store
}

func New(local Store, session Store) *Manager {
	return &Manager{Local: local, Session: session}
}

// Login persists a successful oauth2 exchange
func (m *Manager) Login(login *types.UserLogin) error {
	userBytes, err := json.Marshal(login.User)

	if err != nil {
		return err
	}

	m.Local.Set(TokenKey, login.Token)
	m.Local.Set(UserKey, string(userBytes))

	return nil
}

func (m *Manager) Token() (string, bool) {
	return m.Local.Get(TokenKey)
}

// User returns the stored profile. The guild list inside it is the snapshot
// taken at login, never refreshed
func (m *Manager) User() (*types.UserProfile, error) {
	raw, ok := m.Local.Get(UserKey)

	if !ok {
		return nil, nil
	}

	var user types.UserProfile

	err := json.Unmarshal([]byte(raw), &user)

	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Guard is the presence-only check every guarded view runs on mount. It
// never verifies the token against Discord
func (m *Manager) Guard() (string, bool) {
	if _, ok := m.Local.Get(TokenKey); !ok {
		return LoginPath, false
	}

	return "", true
}

// Logout removes the session keys and wipes the per-tab store. Unrelated
// keys in the durable store are left alone
func (m *Manager) Logout() {
	m.Local.Delete(TokenKey)
	m.Local.Delete(UserKey)
	m.Local.Delete(RefreshTokenKey)
	m.Session.Clear()
}
