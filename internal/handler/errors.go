package handler

import (
	"errors"
	"fmt"
	"net/http"

	"digital-storefront/internal/dto"
	"digital-storefront/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// ErrorHandler maps service errors onto HTTP statuses.
func ErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, resp := toErrorResponse(err)
		if status >= http.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("request failed")
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, resp)
		}
		if err != nil {
			log.Error().Err(err).Msg("write error response")
		}
	}
}

func toErrorResponse(err error) (int, dto.ErrorResponse) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, dto.ErrorResponse{Message: fmt.Sprint(he.Message)}
	}

	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, dto.ErrorResponse{Message: "invalid input", Errors: verr.Fields}
	case errors.Is(err, service.ErrWebhookVerification):
		return http.StatusBadRequest, dto.ErrorResponse{Message: "invalid webhook"}
	case errors.Is(err, service.ErrMissingCorrelation):
		return http.StatusBadRequest, dto.ErrorResponse{Message: "Bad Request"}
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, dto.ErrorResponse{Message: "not found"}
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict, dto.ErrorResponse{Message: err.Error()}
	default:
		return http.StatusInternalServerError, dto.ErrorResponse{Message: http.StatusText(http.StatusInternalServerError)}
	}
}
