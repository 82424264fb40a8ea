package http

import (
	"errors"
	"net/http"

	"fooddelivery/internal/generated/servers"
	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// writeError maps a use case error to its HTTP status. Anything that is not
// a known domain error is logged and answered with a generic 500 so that
// internal and upstream details never reach the client.
func (s *Server) writeError(c echo.Context, err error) error {
	var transition *errs.IllegalTransitionError
	switch {
	case errors.As(err, &transition):
		allowed := make([]servers.OrderStatus, 0, len(transition.Allowed))
		for _, a := range transition.Allowed {
			allowed = append(allowed, servers.OrderStatus(a))
		}
		return c.JSON(http.StatusConflict, servers.Error{
			Code:        http.StatusConflict,
			Message:     transition.Error(),
			AllowedNext: &allowed,
		})
	case errs.IsValidation(err):
		return errorJSON(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrObjectNotFound):
		return errorJSON(c, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrUnauthenticated):
		return errorJSON(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, errs.ErrAccessDenied):
		return errorJSON(c, http.StatusForbidden, err.Error())
	case errors.Is(err, errs.ErrUpstreamFailure):
		s.logger.ErrorContext(c.Request().Context(), "Upstream failure",
			"method", c.Request().Method, "path", c.Path(), "error", err)
		return errorJSON(c, http.StatusInternalServerError, "upstream service failed")
	default:
		s.logger.ErrorContext(c.Request().Context(), "Request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
		return errorJSON(c, http.StatusInternalServerError, "internal server error")
	}
}

func errorJSON(c echo.Context, code int, message string) error {
	return c.JSON(code, servers.Error{Code: code, Message: message})
}

func badRequest(c echo.Context, message string) error {
	return errorJSON(c, http.StatusBadRequest, message)
}

// HTTPErrorHandler renders errors returned by middleware and parameter
// binding, which never reach writeError, in the API's error shape.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = errorJSON(c, code, message)
}
