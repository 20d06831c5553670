package discordapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/musik-cafe/dashboard/config"
	"github.com/musik-cafe/dashboard/state"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupState(apiURL string) {
	state.Logger = zap.NewNop()
	state.Config = &config.Config{
		DiscordAuth: config.DiscordAuth{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			RedirectURI:  "https://www.musik-cafe.site/auth/callback",
			APIUrl:       apiURL,
		},
	}
}

func discordMock(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())

		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "client-id", r.PostForm.Get("client_id"))
		assert.Equal(t, "client-secret", r.PostForm.Get("client_secret"))

		if r.PostForm.Get("code") != "abc" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error": "invalid_grant"}`))
			return
		}

		_, _ = w.Write([]byte(`{"access_token": "tok-123", "token_type": "Bearer"}`))
	})

	mux.HandleFunc("/users/@me", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"id": "42", "username": "cafeadmin", "avatar": "", "email": "admin@musik-cafe.site"}`))
	})

	mux.HandleFunc("/users/@me/guilds", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[
			{"id": "1", "name": "Owned", "icon": "", "owner": true, "permissions": "0"},
			{"id": "2", "name": "Admin", "icon": "", "owner": false, "permissions": "8"},
			{"id": "3", "name": "Member", "icon": "", "owner": false, "permissions": "104324673"}
		]`))
	})

	return httptest.NewServer(mux)
}

func TestExchangeFiltersAdminGuilds(t *testing.T) {
	srv := discordMock(t)
	defer srv.Close()

	setupState(srv.URL)

	login, err := Exchange(context.Background(), "abc")

	require.NoError(t, err)
	assert.True(t, login.Success)
	assert.Equal(t, "tok-123", login.Token)
	assert.Equal(t, "42", login.User.ID)
	assert.Equal(t, "cafeadmin", login.User.Username)

	require.Len(t, login.User.Guilds, 2)
	assert.Equal(t, "1", login.User.Guilds[0].ID)
	assert.True(t, login.User.Guilds[0].Owner)
	assert.Equal(t, "2", login.User.Guilds[1].ID)
}

func TestExchangeBadCode(t *testing.T) {
	srv := discordMock(t)
	defer srv.Close()

	setupState(srv.URL)

	_, err := Exchange(context.Background(), "wrong")

	require.Error(t, err)
	assert.Equal(t, UpstreamError{Message: "Failed to get token from Discord"}, err)
}

func TestAdminGuilds(t *testing.T) {
	guilds := []*discordgo.UserGuild{
		{ID: "1", Name: "Owner no perms", Owner: true, Permissions: 0},
		{ID: "2", Name: "Admin bit", Owner: false, Permissions: discordgo.PermissionAdministrator},
		{ID: "3", Name: "Admin among others", Owner: false, Permissions: discordgo.PermissionAdministrator | discordgo.PermissionManageServer},
		{ID: "4", Name: "Plain member", Owner: false, Permissions: discordgo.PermissionSendMessages},
	}

	filtered := AdminGuilds(guilds)

	require.Len(t, filtered, 3)
	assert.Equal(t, "1", filtered[0].ID)
	assert.Equal(t, "2", filtered[1].ID)
	assert.Equal(t, "3", filtered[2].ID)
}

func TestIconURL(t *testing.T) {
	assert.Equal(t, "", IconURL("", "static", "animated", "64"))
	assert.Equal(t, "static?size=64", IconURL("abc", "static", "animated", "64"))
	assert.Equal(t, "animated?size=64", IconURL("a_abc", "static", "animated", "64"))
	assert.Equal(t, "static", IconURL("abc", "static", "animated", ""))
}
