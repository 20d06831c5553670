package update_server_config

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/musik-cafe/dashboard/api"
	"github.com/musik-cafe/dashboard/botapi"
	"github.com/musik-cafe/dashboard/state"

	"github.com/go-chi/chi/v5"
	"github.com/infinitybotlist/eureka/uapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupState(t *testing.T, upstream http.HandlerFunc) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	state.Logger = zap.NewNop()
	state.BotClient = botapi.New(srv.URL, state.Logger)
	api.Setup()

	return srv
}

func request(t *testing.T, serverID string, body string) *http.Request {
	t.Helper()

	req := httptest.NewRequest("POST", "/api/config/"+serverID, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("server_id", serverID)

	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestRejectsBadPrefixBeforeUpstream(t *testing.T) {
	upstreamCalls := 0

	setupState(t, func(w http.ResponseWriter, r *http.Request) {
		upstreamCalls++
	})

	for _, body := range []string{
		`{"defaultVolume": 0.5, "defaultPrefix": ""}`,
		`{"defaultVolume": 0.5, "defaultPrefix": "toolong"}`,
		`{"defaultVolume": 0.5, "defaultPrefix": "éééééé"}`,
	} {
		resp := Route(uapi.RouteData{Context: context.Background()}, request(t, "123", body))

		assert.Equal(t, http.StatusBadRequest, resp.Status)
	}

	assert.Equal(t, 0, upstreamCalls)
}

func TestAcceptsMultibytePrefix(t *testing.T) {
	var got map[string]any

	setupState(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_, _ = w.Write([]byte(`{"default_volume": 50, "default_prefix": "ééééé", "dj_roles": [], "music_channels": [], "voice_channels": []}`))
	})

	// five characters, ten bytes
	resp := Route(uapi.RouteData{Context: context.Background()}, request(t, "123", `{"defaultVolume": 0.5, "defaultPrefix": "ééééé"}`))

	assert.Equal(t, 0, resp.Status)
	assert.Equal(t, "ééééé", got["default_prefix"])
}

func TestForwardsSnakeCaseWithEmptyListDefaults(t *testing.T) {
	var got map[string]any

	setupState(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/config/123", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_, _ = w.Write([]byte(`{"default_volume": 50, "default_prefix": "!", "dj_roles": [], "music_channels": [], "voice_channels": []}`))
	})

	resp := Route(uapi.RouteData{Context: context.Background()}, request(t, "123", `{"defaultVolume": 0.5, "defaultPrefix": "!"}`))

	assert.Equal(t, 0, resp.Status) // 0 means uapi's default 200

	assert.Equal(t, float64(50), got["default_volume"])
	assert.Equal(t, "!", got["default_prefix"])
	assert.Equal(t, []any{}, got["dj_roles"])
	assert.Equal(t, []any{}, got["music_channels"])
	assert.Equal(t, []any{}, got["voice_channels"])
}

func TestUpstreamFailureSurfacesStatus(t *testing.T) {
	setupState(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	resp := Route(uapi.RouteData{Context: context.Background()}, request(t, "123", `{"defaultVolume": 0.5, "defaultPrefix": "."}`))

	assert.Equal(t, http.StatusBadGateway, resp.Status)
}
