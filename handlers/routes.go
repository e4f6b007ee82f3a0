package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers of the admin API.
type ServerInterface interface {
	// Services with at least one live instance, ordered by name.
	// (GET /v1/services)
	GetServices(ctx echo.Context) error
	// Metadata of one service.
	// (GET /v1/services/{name})
	FindService(ctx echo.Context, name string) error
	// Live instances of one service, ordered by instance id.
	// (GET /v1/services/{name}/presence)
	GetServicePresence(ctx echo.Context, name string) error
	// Live instances of every service.
	// (GET /v1/nodes)
	GetServiceNodes(ctx echo.Context) error
	// Creates a UMF envelope from this instance and publishes it.
	// (POST /v1/messages)
	SendMessage(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// GetServices converts echo context to params.
func (w *ServerInterfaceWrapper) GetServices(ctx echo.Context) error {
	return w.Handler.GetServices(ctx)
}

// FindService converts echo context to params.
func (w *ServerInterfaceWrapper) FindService(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "name" -------------
	var name string

	err = runtime.BindStyledParameterWithOptions("simple", "name", ctx.Param("name"), &name, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter name: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.FindService(ctx, name)
	return err
}

// GetServicePresence converts echo context to params.
func (w *ServerInterfaceWrapper) GetServicePresence(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "name" -------------
	var name string

	err = runtime.BindStyledParameterWithOptions("simple", "name", ctx.Param("name"), &name, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter name: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.GetServicePresence(ctx, name)
	return err
}

// GetServiceNodes converts echo context to params.
func (w *ServerInterfaceWrapper) GetServiceNodes(ctx echo.Context) error {
	return w.Handler.GetServiceNodes(ctx)
}

// SendMessage converts echo context to params.
func (w *ServerInterfaceWrapper) SendMessage(ctx echo.Context) error {
	return w.Handler.SendMessage(ctx)
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface, m ...echo.MiddlewareFunc) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET("/v1/services", wrapper.GetServices, m...)
	router.GET("/v1/services/:name", wrapper.FindService, m...)
	router.GET("/v1/services/:name/presence", wrapper.GetServicePresence, m...)
	router.GET("/v1/nodes", wrapper.GetServiceNodes, m...)
	router.POST("/v1/messages", wrapper.SendMessage, m...)
}
