package create_discord_login

import (
	"errors"
	"net/http"
	"time"

	"github.com/musik-cafe/dashboard/discordapi"
	"github.com/musik-cafe/dashboard/state"
	"github.com/musik-cafe/dashboard/types"

	docs "github.com/infinitybotlist/eureka/doclib"
	"github.com/infinitybotlist/eureka/ratelimit"
	"github.com/infinitybotlist/eureka/uapi"
	"github.com/redis/rueidis"
	"go.uber.org/zap"
)

func Docs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Create Discord Login",
		Description: "Exchanges an oauth2 ``code`` for a Discord bearer token and returns it along with the callers profile and admin-accessible guilds. The token is not stored server-side.",
		Resp:        types.UserLogin{},
		Params: []docs.Parameter{
			{
				Name:        "code",
				Description: "The oauth2 authorization code returned by Discord",
				In:          "query",
				Required:    true,
				Schema:      docs.IdSchema,
			},
		},
	}
}

func Route(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	limit, err := ratelimit.Ratelimit{
		Expiry:      5 * time.Minute,
		MaxRequests: 15,
		Bucket:      "oauth2_login",
	}.Limit(d.Context, r)

	if err != nil {
		state.Logger.Error("Error while ratelimiting", zap.Error(err), zap.String("bucket", "oauth2_login"))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	if limit.Exceeded {
		return uapi.HttpResponse{
			Json: types.ApiError{
				Message: "You are being ratelimited. Please try again in " + limit.TimeToReset.String(),
			},
			Headers: limit.Headers(),
			Status:  http.StatusTooManyRequests,
		}
	}

	code := r.URL.Query().Get("code")

	if code == "" {
		return uapi.HttpResponse{
			Json:    types.ApiError{Message: "No code provided"},
			Status:  http.StatusBadRequest,
			Headers: limit.Headers(),
		}
	}

	codeused, _ := state.Rueidis.Do(d.Context, state.Rueidis.B().Exists().Key("codecache:"+code).Build()).ToInt64()

	if codeused == 1 {
		return uapi.HttpResponse{
			Json: types.ApiError{
				Message: "Code has been clearly used before and is as such invalid",
			},
			Status:  http.StatusBadRequest,
			Headers: limit.Headers(),
		}
	}

	err = state.Rueidis.Do(d.Context, state.Rueidis.B().Set().Key("codecache:"+code).Value("0").Ex(5*time.Minute).Build()).Error()

	if err != nil && !errors.Is(err, rueidis.Nil) {
		state.Logger.Error("Failed to set code cache", zap.Error(err))
		return uapi.HttpResponse{
			Json:    types.ApiError{Message: "Failed to set code cache"},
			Status:  http.StatusInternalServerError,
			Headers: limit.Headers(),
		}
	}

	login, err := discordapi.Exchange(d.Context, code)

	if err != nil {
		var uerr discordapi.UpstreamError

		if errors.As(err, &uerr) {
			return uapi.HttpResponse{
				Json:    types.ApiError{Message: uerr.Message},
				Status:  http.StatusBadRequest,
				Headers: limit.Headers(),
			}
		}

		state.Logger.Error("Error during oauth2 exchange", zap.Error(err))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	return uapi.HttpResponse{
		Json:    login,
		Headers: limit.Headers(),
	}
}
