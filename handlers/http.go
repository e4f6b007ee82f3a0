// Package handlers contains the http admin API of a fabric instance.
package handlers

import (
	"fmt"
	"net/http"

	"myfabric/helpers"
	"myfabric/interfaces"
	"myfabric/service"

	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
)

// HTTPServer implements ServerInterface over a fabric.
type HTTPServer struct {
	fabric interfaces.Fabric
	logger log.Logger
}

var _ ServerInterface = (*HTTPServer)(nil)

// NewHTTPServer creates a new HTTPServer. Panics on nil fabric or logger.
func NewHTTPServer(fabric interfaces.Fabric, logger log.Logger) *HTTPServer {
	const component = "handlers.NewHTTPServer"
	logger = log.WithPrefix(helpers.Required(logger, component, "logger"), "component", "HTTPServer")
	return &HTTPServer{
		fabric: helpers.Required(fabric, component, "fabric"),
		logger: logger,
	}
}

// GetServices (GET /v1/services) lists services with a live instance.
func (h *HTTPServer) GetServices(ectx echo.Context) error {
	ctx := ectx.Request().Context()
	entries, err := h.fabric.GetServices(ctx)
	if err != nil {
		return fmt.Errorf("getServices failed to list services, err: %w", err)
	}

	return ectx.JSON(http.StatusOK, toServicesResponse(entries))
}

// FindService (GET /v1/services/{name}) returns 404 when the service has no live instance.
func (h *HTTPServer) FindService(ectx echo.Context, name string) error {
	ctx := ectx.Request().Context()
	entry, err := h.fabric.FindService(ctx, name)
	if err != nil {
		return fmt.Errorf("findService failed (service='%s'), err: %w", name, err)
	}

	return ectx.JSON(http.StatusOK, toServiceInfo(entry))
}

// GetServicePresence (GET /v1/services/{name}/presence) returns the live instances of a service.
func (h *HTTPServer) GetServicePresence(ectx echo.Context, name string) error {
	ctx := ectx.Request().Context()
	records, err := h.fabric.GetServicePresence(ctx, name)
	if err != nil {
		return fmt.Errorf("getServicePresence failed (service='%s'), err: %w", name, err)
	}

	return ectx.JSON(http.StatusOK, toPresenceResponse(records))
}

// GetServiceNodes (GET /v1/nodes) returns the live instances of all services.
func (h *HTTPServer) GetServiceNodes(ectx echo.Context) error {
	ctx := ectx.Request().Context()
	records, err := h.fabric.GetServiceNodes(ctx)
	if err != nil {
		return fmt.Errorf("getServiceNodes failed, err: %w", err)
	}

	return ectx.JSON(http.StatusOK, toPresenceResponse(records))
}

// SendMessage (POST /v1/messages) creates an envelope from this instance and publishes it.
// Returns 202 on publish, 400 on a bad body or address, 409 when a direct recipient is not listening.
func (h *HTTPServer) SendMessage(ectx echo.Context) error {
	var req SendMessageRequest
	if err := ectx.Bind(&req); err != nil {
		return service.NewBadParameterError("invalid request body", err)
	}

	fields, err := fromSendMessageRequest(req)
	if err != nil {
		return fmt.Errorf("sendMessage failed to convert request, err: %w", err)
	}

	ctx := ectx.Request().Context()
	env := h.fabric.CreateMessage(fields)
	result, err := h.fabric.SendMessage(ctx, env)
	if err != nil {
		return fmt.Errorf("sendMessage failed to publish (to='%s'), err: %w", req.To, err)
	}

	return ectx.JSON(http.StatusAccepted, toSendMessageResponse(result))
}
