package create_server_role

import (
	"errors"
	"net/http"
	"strings"

	"github.com/musik-cafe/dashboard/botapi"
	"github.com/musik-cafe/dashboard/state"
	"github.com/musik-cafe/dashboard/types"

	"github.com/go-chi/chi/v5"
	docs "github.com/infinitybotlist/eureka/doclib"
	"github.com/infinitybotlist/eureka/uapi"
	"go.uber.org/zap"
)

func Docs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Create Server Role",
		Description: "Creates a role on a guild through the bot. The name is trimmed and must be non-empty.",
		Req:         types.CreateRoleRequest{},
		Resp:        types.CreateRoleResponse{},
		Params: []docs.Parameter{
			{
				Name:        "server_id",
				Description: "The ID of the guild",
				In:          "path",
				Required:    true,
				Schema:      docs.IdSchema,
			},
		},
	}
}

func Route(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	serverId := chi.URLParam(r, "server_id")

	if serverId == "" {
		return uapi.HttpResponse{
			Json:   types.ApiError{Message: "Invalid server ID"},
			Status: http.StatusBadRequest,
		}
	}

	var createData types.CreateRoleRequest

	hresp, ok := uapi.MarshalReq(r, &createData)

	if !ok {
		return hresp
	}

	name := strings.TrimSpace(createData.Name)

	if name == "" {
		return uapi.HttpResponse{
			Json:   types.ApiError{Message: "Invalid role name"},
			Status: http.StatusBadRequest,
		}
	}

	role, err := state.BotClient.CreateRole(d.Context, serverId, name)

	if err != nil {
		var serr botapi.StatusError

		if errors.As(err, &serr) {
			return uapi.HttpResponse{
				Json:   types.ApiError{Message: "Failed to create role on bot"},
				Status: serr.Status,
			}
		}

		state.Logger.Error("Failed to create role on bot api", zap.Error(err), zap.String("serverId", serverId))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	return uapi.HttpResponse{
		Json: types.CreateRoleResponse{
			Success: true,
			Role:    role,
		},
	}
}
