package get_server_data

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

	req := httptest.NewRequest("GET", "/api/server/"+serverID, nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("server_id", serverID)

	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestCatalogPassthrough(t *testing.T) {
	setupState(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/server/123", r.URL.Path)
		_, _ = w.Write([]byte(`{"channels": [{"id": "c1", "name": "music", "type": "text"}], "roles": [{"id": "r1", "name": "DJ"}]}`))
	})

	resp := Route(uapi.RouteData{Context: context.Background()}, request(t, "123"))

	body := resp.Json.(*types.ServerData)
	assert.True(t, body.Success)
	assert.Equal(t, []types.GuildChannel{{ID: "c1", Name: "music", Type: "text"}}, body.Channels)
	assert.Equal(t, []types.GuildRole{{ID: "r1", Name: "DJ"}}, body.Roles)
}

func TestAbsentListsDefaultEmpty(t *testing.T) {
	setupState(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	resp := Route(uapi.RouteData{Context: context.Background()}, request(t, "123"))

	body := resp.Json.(*types.ServerData)
	assert.Equal(t, []types.GuildChannel{}, body.Channels)
	assert.Equal(t, []types.GuildRole{}, body.Roles)
}

func TestUpstreamErrorSurfaces(t *testing.T) {
	setupState(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	resp := Route(uapi.RouteData{Context: context.Background()}, request(t, "123"))

	assert.Equal(t, http.StatusBadGateway, resp.Status)
}
