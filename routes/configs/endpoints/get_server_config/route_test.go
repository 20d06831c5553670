package get_server_config

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/musik-cafe/dashboard/api"
	"github.com/musik-cafe/dashboard/botapi"
	"github.com/musik-cafe/dashboard/state"
	"github.com/musik-cafe/dashboard/types"

	"github.com/go-chi/chi/v5"
	"github.com/infinitybotlist/eureka/uapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupState(t *testing.T, upstream http.HandlerFunc) {
	t.Helper()

	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	state.Logger = zap.NewNop()
	state.BotClient = botapi.New(srv.URL, state.Logger)
	api.Setup()
}

func request(t *testing.T, serverID string) *http.Request {
	t.Helper()

	req := httptest.NewRequest("GET", "/api/config/"+serverID, nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("server_id", serverID)

	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestUpstream404YieldsDefaults(t *testing.T) {
	setupState(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	resp := Route(uapi.RouteData{Context: context.Background()}, request(t, "123"))

	require.IsType(t, types.ServerConfigResponse{}, resp.Json)

	body := resp.Json.(types.ServerConfigResponse)
	assert.True(t, body.Success)
	assert.Equal(t, botapi.DefaultConfig(), body.Config)
}

func TestUpstreamConfigPassthrough(t *testing.T) {
	setupState(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/config/123", r.URL.Path)
		_, _ = w.Write([]byte(`{"default_volume": 80, "default_prefix": "!", "dj_roles": ["r1"], "music_channels": [], "voice_channels": []}`))
	})

	resp := Route(uapi.RouteData{Context: context.Background()}, request(t, "123"))

	body := resp.Json.(types.ServerConfigResponse)
	assert.True(t, body.Success)
	assert.Equal(t, 0.8, body.Config.DefaultVolume)
	assert.Equal(t, "!", body.Config.DefaultPrefix)
	assert.Equal(t, []string{"r1"}, body.Config.DJRoles)
}

func TestUpstreamNon404Surfaces(t *testing.T) {
	setupState(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	resp := Route(uapi.RouteData{Context: context.Background()}, request(t, "123"))

	assert.Equal(t, http.StatusServiceUnavailable, resp.Status)
}
