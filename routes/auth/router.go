package auth

import (
	"github.com/musik-cafe/dashboard/routes/auth/endpoints/create_discord_login"

	"github.com/go-chi/chi/v5"
	"github.com/infinitybotlist/eureka/uapi"
)

const tagName = "Auth"

type Router struct{}

func (b Router) Tag() (string, string) {
	return tagName, "These API endpoints are related to authentication"
}

func (b Router) Routes(r *chi.Mux) {
	uapi.Route{
		Pattern: "/api/auth/discord",
		OpId:    "create_discord_login",
		Method:  uapi.GET,
		Docs:    create_discord_login.Docs,
		Handler: create_discord_login.Route,
	}.Route(r)
}
