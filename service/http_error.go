package service

import (
	"errors"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// RegisterErrorHandler installs the MyError aware error handler on e.
func RegisterErrorHandler(e *echo.Echo, logger log.Logger) {
	e.HTTPErrorHandler = NewHTTPErrorHandler(NewErrorCodeToStatusCodeMaps(), logger).Handler
}

// NewErrorCodeToStatusCodeMaps creates an error code to http status mapping.
func NewErrorCodeToStatusCodeMaps() map[string]int {
	var errorCodeToStatusCodeMaps = make(map[string]int)
	errorCodeToStatusCodeMaps[ErrBadParameter] = http.StatusBadRequest
	errorCodeToStatusCodeMaps[ErrEntityNotFound] = http.StatusNotFound
	errorCodeToStatusCodeMaps[ErrInvalidAddress] = http.StatusBadRequest
	errorCodeToStatusCodeMaps[ErrRegistration] = http.StatusBadRequest
	errorCodeToStatusCodeMaps[ErrUnreachableInstance] = http.StatusConflict
	errorCodeToStatusCodeMaps[ErrConfiguration] = http.StatusInternalServerError
	errorCodeToStatusCodeMaps[ErrInternalServerError] = http.StatusInternalServerError

	return errorCodeToStatusCodeMaps
}

// HTTPErrorHandler is an error handler.
type HTTPErrorHandler struct {
	errorCodeToHTTPStatusCodeMap map[string]int
	logger                       log.Logger
}

// NewHTTPErrorHandler creates a new instance of the HTTPErrorHandler.
func NewHTTPErrorHandler(errorCodeToStatusCodeMaps map[string]int, logger log.Logger) *HTTPErrorHandler {
	return &HTTPErrorHandler{
		errorCodeToHTTPStatusCodeMap: errorCodeToStatusCodeMaps,
		logger:                       logger,
	}
}

func (h *HTTPErrorHandler) getStatusCode(errorCode string) int {
	status, ok := h.errorCodeToHTTPStatusCodeMap[errorCode]
	if ok {
		return status
	}

	return http.StatusInternalServerError
}

// Handler handles error returned by echo Handlers. MyError codes are mapped through the code table;
// echo errors keep their status, with OpenAPI request validation failures reported as bad_parameter.
func (h *HTTPErrorHandler) Handler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var statusCode int
	var myErr *MyError
	he, isEchoErr := err.(*echo.HTTPError)
	if isEchoErr {
		myErr, statusCode = fromEchoError(he, err)
	} else {
		myErr = ToMyError(err)
		if myErr == nil {
			myErr = NewMyError(ErrInternalServerError, "an internal server error has occurred", err)
		}
		statusCode = h.getStatusCode(myErr.Code)
	}

	logger := level.Warn(h.logger)
	if statusCode >= http.StatusInternalServerError {
		logger = level.Error(h.logger)
	}
	logger.Log(
		"msg", "HTTP request error",
		"method", c.Request().Method,
		"path", c.Path(),
		"status", statusCode,
		"err", err,
	)

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(statusCode)
		return
	}
	_ = c.JSON(statusCode, ErrResponse{Error: myErr})
}

// fromEchoError converts an echo error (routing, binding or request validation) into a MyError.
func fromEchoError(he *echo.HTTPError, err error) (*MyError, int) {
	if herr, ok := he.Internal.(*echo.HTTPError); ok {
		he = herr
	}

	code := ErrInternalServerError
	var requestError *openapi3filter.RequestError
	switch {
	case errors.As(he.Internal, &requestError):
		code = ErrBadParameter
	case he.Code == http.StatusNotFound:
		code = ErrEntityNotFound
	case he.Code >= http.StatusBadRequest && he.Code < http.StatusInternalServerError:
		code = ErrBadParameter
	}

	m, ok := he.Message.(string)
	if !ok {
		m = http.StatusText(he.Code)
	}
	return NewMyError(code, m, err), he.Code
}

// ErrResponse from server.
type ErrResponse struct {
	Error *MyError `json:"error,omitempty"`
}
