package route

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecomama/marketplace/internal/core/domain"
)

// SuccessResponse wraps a handler's return value.
type SuccessResponse struct {
	Data any `json:"data"`
}

// ErrorResponse is the envelope rendered for every failure.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

const internalMessage = "Internal server error"

// StatusFor maps an error kind to its HTTP status. Unknown kinds are 500.
func StatusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Envelope returns the status and error body for err. Internal failures
// never expose their message.
func Envelope(err error) (int, ErrorResponse) {
	kind := domain.KindOf(err)
	if kind == 0 {
		return http.StatusInternalServerError, ErrorResponse{Error: internalMessage, Code: kind.String()}
	}
	return StatusFor(kind), ErrorResponse{Error: err.Error(), Code: kind.String()}
}

func writeSuccess(c echo.Context, method string, data any) error {
	status := http.StatusOK
	if method == http.MethodPost {
		status = http.StatusCreated
	}
	return c.JSON(status, SuccessResponse{Data: data})
}
