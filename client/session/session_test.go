package session

import (
	"testing"

	"github.com/musik-cafe/dashboard/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager() *Manager {
	return New(NewMemoryStore(), NewMemoryStore())
}

func TestLoginStoresTokenAndUser(t *testing.T) {
	m := newManager()

	err := m.Login(&types.UserLogin{
		Success: true,
		Token:   "tok-123",
		User: &types.UserProfile{
			ID:       "42",
			Username: "cafeadmin",
			Guilds:   []types.Guild{{ID: "1", Name: "Owned", Owner: true}},
		},
	})

	require.NoError(t, err)

	token, ok := m.Token()
	require.True(t, ok)
	assert.Equal(t, "tok-123", token)

	user, err := m.User()
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "cafeadmin", user.Username)
	require.Len(t, user.Guilds, 1)
	assert.Equal(t, "Owned", user.Guilds[0].Name)
}

func TestGuardIsPresenceOnly(t *testing.T) {
	m := newManager()

	redirect, ok := m.Guard()
	assert.False(t, ok)
	assert.Equal(t, LoginPath, redirect)

	// any non-empty token passes; validity is never checked
	m.Local.Set(TokenKey, "long-expired-token")

	redirect, ok = m.Guard()
	assert.True(t, ok)
	assert.Empty(t, redirect)
}

func TestLogoutClearsExactlyTheSessionKeys(t *testing.T) {
	m := newManager()

	m.Local.Set(TokenKey, "tok")
	m.Local.Set(UserKey, `{"id":"42"}`)
	m.Local.Set(RefreshTokenKey, "refresh")
	m.Local.Set("bunpanel_token", "unrelated")
	m.Session.Set("scratch", "value")

	m.Logout()

	_, ok := m.Local.Get(TokenKey)
	assert.False(t, ok)
	_, ok = m.Local.Get(UserKey)
	assert.False(t, ok)
	_, ok = m.Local.Get(RefreshTokenKey)
	assert.False(t, ok)

	// unrelated durable keys survive; the per-tab store is wiped wholesale
	v, ok := m.Local.Get("bunpanel_token")
	assert.True(t, ok)
	assert.Equal(t, "unrelated", v)

	_, ok = m.Session.Get("scratch")
	assert.False(t, ok)

	// and any guarded view now redirects
	redirect, ok := m.Guard()
	assert.False(t, ok)
	assert.Equal(t, LoginPath, redirect)
}

func TestUserAbsent(t *testing.T) {
	m := newManager()

	user, err := m.User()
	require.NoError(t, err)
	assert.Nil(t, user)
}
