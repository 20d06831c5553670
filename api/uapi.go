// Binds onto eureka uapi
package api

import (
	"net/http"

	"github.com/musik-cafe/dashboard/constants"
	"github.com/musik-cafe/dashboard/state"
	"github.com/musik-cafe/dashboard/types"

	"github.com/infinitybotlist/eureka/uapi"
)

type DefaultResponder struct{}

func (d DefaultResponder) New(err string, ctx map[string]string) any {
	return types.ApiError{
		Message: err,
		Context: ctx,
	}
}

// Authorizes a request.
//
// The dashboard itself holds no sessions: the Discord bearer token returned
// by the exchange lives with the caller, so no route declares an auth type
// and any route that does is rejected outright.
func Authorize(r uapi.Route, req *http.Request) (uapi.AuthData, uapi.HttpResponse, bool) {
	if len(r.Auth) > 0 && !r.AuthOptional {
		return uapi.AuthData{}, uapi.DefaultResponse(http.StatusUnauthorized), false
	}

	return uapi.AuthData{}, uapi.HttpResponse{}, true
}

func Setup() {
	uapi.SetupState(uapi.UAPIState{
		Logger:      state.Logger,
		Authorize:   Authorize,
		AuthTypeMap: map[string]string{},
		Context:     state.Context,
		Constants: &uapi.UAPIConstants{
			ResourceNotFound:    constants.ResourceNotFound,
			BadRequest:          constants.BadRequest,
			Forbidden:           constants.Forbidden,
			Unauthorized:        constants.Unauthorized,
			InternalServerError: constants.InternalServerError,
			MethodNotAllowed:    constants.MethodNotAllowed,
			BodyRequired:        constants.BodyRequired,
		},
		DefaultResponder: DefaultResponder{},
	})
}
