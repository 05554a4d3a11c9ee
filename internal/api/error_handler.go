package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ecomama/marketplace/internal/api/route"
	"github.com/ecomama/marketplace/internal/core/domain"
)

// NewHTTPErrorHandler renders errors that escape plain echo handlers and the
// router itself in the same envelope the route factory uses. Unexpected
// errors are logged and answered with a generic message.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err)
		if code >= http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("unhandled error")
		}
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error) (int, route.ErrorResponse) {
	// Echo's own errors (unknown route, method not allowed, bind failures).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			_, resp := route.Envelope(errors.New(http.StatusText(he.Code)))
			return he.Code, resp
		}
		return he.Code, route.ErrorResponse{Error: fmt.Sprintf("%v", he.Message), Code: codeForStatus(he.Code)}
	}
	return route.Envelope(err)
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusUnsupportedMediaType:
		return domain.KindValidation.String()
	case http.StatusUnauthorized:
		return domain.KindUnauthorized.String()
	case http.StatusForbidden:
		return domain.KindForbidden.String()
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return domain.KindNotFound.String()
	default:
		return domain.Kind(0).String()
	}
}
