package dto

import "net/http"

// General error codes
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,

	"NOT_FOUND":      http.StatusNotFound,
	"ALREADY_EXISTS": http.StatusConflict,

	"INVALID_INPUT":    http.StatusBadRequest,
	"INVALID_RATE":     http.StatusBadRequest,
	"INVALID_QUANTITY": http.StatusBadRequest,

	"INVALID_STATE":      http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK": http.StatusUnprocessableEntity,

	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"PARTIAL_FAILURE":      http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code, falling
// back to 500 for codes it does not know
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
