package configs

import (
	"github.com/musik-cafe/dashboard/routes/configs/endpoints/get_server_config"
	"github.com/musik-cafe/dashboard/routes/configs/endpoints/update_server_config"

	"github.com/go-chi/chi/v5"
	"github.com/infinitybotlist/eureka/uapi"
)

const tagName = "Configs"

type Router struct{}

func (b Router) Tag() (string, string) {
	return tagName, "These API endpoints are related to per-guild bot configuration"
}

func (b Router) Routes(r *chi.Mux) {
	uapi.Route{
		Pattern: "/api/config/{server_id}",
		OpId:    "get_server_config",
		Method:  uapi.GET,
		Docs:    get_server_config.Docs,
		Handler: get_server_config.Route,
	}.Route(r)

	uapi.Route{
		Pattern: "/api/config/{server_id}",
		OpId:    "update_server_config",
		Method:  uapi.POST,
		Docs:    update_server_config.Docs,
		Handler: update_server_config.Route,
	}.Route(r)
}
