// Package http is the inbound REST adapter of the orders service.
package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"orders/docs"
	"orders/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.opentelemetry.io/otel"
)

const tracerName = "orders/internal/adapters/in/http"

// NewRouter wires the server into an echo instance together with request ids,
// panic recovery, tracing, access logs and the API docs under /api-docs.
func NewRouter(server *Server, logger *slog.Logger) (*echo.Echo, error) {
	if err := docs.Register(); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(logger)

	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(Tracing(otel.Tracer(tracerName)))
	e.Use(RequestLogger(logger))

	servers.RegisterHandlers(e, server)
	e.GET("/api-docs/*", echoSwagger.WrapHandler)

	return e, nil
}

// errorHandler renders echo errors (unknown routes, bad parameters, panics) in
// the same shape as use case errors.
func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := http.StatusText(code)

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			code = httpErr.Code
			message = fmt.Sprint(httpErr.Message)
		} else {
			logger.ErrorContext(c.Request().Context(), "unhandled error",
				slog.String("path", c.Path()),
				slog.String("error", err.Error()))
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, servers.Error{Code: code, Message: message})
		}
		if err != nil {
			logger.ErrorContext(c.Request().Context(), "failed to write error response", slog.String("error", err.Error()))
		}
	}
}
