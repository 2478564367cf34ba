package response

import "backend/pkg/apperror"

// Response represents a standard API response format for the session-auth
// surface. Code carries the machine-readable error kind; Error carries the
// human message.
type Response struct {
	Status     string      `json:"status"`      // "success" or "error"
	StatusCode int         `json:"status_code"` // HTTP status code
	Data       interface{} `json:"data,omitempty"`
	Code       string      `json:"code,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// Success returns a standard success response wrapping the data
func Success(statusCode int, data interface{}) Response {
	return Response{
		Status:     "success",
		StatusCode: statusCode,
		Data:       data,
	}
}

// Error returns a standard error response wrapping the error kind and message
func Error(statusCode int, code, err string) Response {
	return Response{
		Status:     "error",
		StatusCode: statusCode,
		Code:       code,
		Error:      err,
	}
}

// FromError maps an application error to its HTTP status and envelope.
func FromError(err error) (int, Response) {
	kind := apperror.KindOf(err)
	status := apperror.HTTPStatus(kind)
	return status, Error(status, string(kind), apperror.MessageOf(err))
}
