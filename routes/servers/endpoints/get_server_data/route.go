package get_server_data

import (
	"errors"
	"net/http"

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
		Summary:     "Get Server Data",
		Description: "Returns the live channel and role catalog of a guild. Fetched fresh on every call, never cached.",
		Resp:        types.ServerData{},
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

	data, err := state.BotClient.GetServerData(d.Context, serverId)

	if err != nil {
		var serr botapi.StatusError

		if errors.As(err, &serr) {
			return uapi.HttpResponse{
				Json:   types.ApiError{Message: "Failed to fetch server data from bot"},
				Status: serr.Status,
			}
		}

		state.Logger.Error("Failed to fetch server data from bot api", zap.Error(err), zap.String("serverId", serverId))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	return uapi.HttpResponse{
		Json: data,
	}
}
