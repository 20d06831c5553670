package update_server_config

import (
	"errors"
	"net/http"
	"unicode/utf8"

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
		Summary:     "Update Server Config",
		Description: "Replaces the bot configuration of a guild. The prefix must be 1-5 characters; list fields that are omitted are saved as empty.",
		Req:         types.ServerConfig{},
		Resp:        types.ServerConfigResponse{},
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

	var config types.ServerConfig

	hresp, ok := uapi.MarshalReq(r, &config)

	if !ok {
		return hresp
	}

	// Validate before anything goes upstream. Counted in runes, a multibyte
	// prefix like "♪♪" is valid
	if n := utf8.RuneCountInString(config.DefaultPrefix); n < 1 || n > 5 {
		return uapi.HttpResponse{
			Json:   types.ApiError{Message: "Prefix must be 1-5 characters"},
			Status: http.StatusBadRequest,
		}
	}

	if config.DJRoles == nil {
		config.DJRoles = []string{}
	}

	if config.MusicChannels == nil {
		config.MusicChannels = []string{}
	}

	if config.VoiceChannels == nil {
		config.VoiceChannels = []string{}
	}

	saved, err := state.BotClient.SaveConfig(d.Context, serverId, &config)

	if err != nil {
		var serr botapi.StatusError

		if errors.As(err, &serr) {
			return uapi.HttpResponse{
				Json:   types.ApiError{Message: "Failed to save config to bot"},
				Status: serr.Status,
			}
		}

		state.Logger.Error("Failed to save config to bot api", zap.Error(err), zap.String("serverId", serverId))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	return uapi.HttpResponse{
		Json: types.ServerConfigResponse{
			Success: true,
			Config:  saved,
		},
	}
}
