package servers

import (
	"github.com/musik-cafe/dashboard/routes/servers/endpoints/create_server_role"
	"github.com/musik-cafe/dashboard/routes/servers/endpoints/get_server_data"

	"github.com/go-chi/chi/v5"
	"github.com/infinitybotlist/eureka/uapi"
)

const tagName = "Servers"

type Router struct{}

func (b Router) Tag() (string, string) {
	return tagName, "These API endpoints are related to guild channel/role catalogs"
}

func (b Router) Routes(r *chi.Mux) {
	uapi.Route{
		Pattern: "/api/server/{server_id}",
		OpId:    "get_server_data",
		Method:  uapi.GET,
		Docs:    get_server_data.Docs,
		Handler: get_server_data.Route,
	}.Route(r)

	uapi.Route{
		Pattern: "/api/create-role/{server_id}",
		OpId:    "create_server_role",
		Method:  uapi.POST,
		Docs:    create_server_role.Docs,
		Handler: create_server_role.Route,
	}.Route(r)
}
