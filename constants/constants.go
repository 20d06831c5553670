package constants

const (
	ResourceNotFound    = `{"message":"This resource could not be found!","context":{}}`
	BadRequest          = `{"message":"This request is invalid!","context":{}}`
	Forbidden           = `{"message":"You are not allowed to perform this action!","context":{}}`
	Unauthorized        = `{"message":"You are not authorized to perform this action!","context":{}}`
	InternalServerError = `{"message":"Internal server error","context":{}}`
	MethodNotAllowed    = `{"message":"Method not allowed","context":{}}`
	BodyRequired        = `{"message":"A body is required for this endpoint","context":{}}`
	EndpointNotFound    = `{"message":"This endpoint could not be found!","context":{}}`
)
