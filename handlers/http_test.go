package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"myfabric/api"
	"myfabric/domain"
	"myfabric/interfaces/mock"
	"myfabric/service"

	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerHandlers(t *testing.T, e *echo.Echo, server ServerInterface) {
	t.Helper()
	validator, err := NewRequestValidator(api.Document)
	require.NoError(t, err)
	RegisterHandlers(e, server, validator)
	service.RegisterErrorHandler(e, log.NewNopLogger())
}

func serve(t *testing.T, fabric *mock.FabricMock, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	registerHandlers(t, e, NewHTTPServer(fabric, log.NewNopLogger()))

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeErrCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var errBody struct {
		Error *struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&errBody))
	require.NotNil(t, errBody.Error)
	assert.NotEmpty(t, errBody.Error.Message)
	return errBody.Error.Code
}

func TestHTTPServer_GetServices(t *testing.T) {
	registeredOn := time.Date(2026, 2, 19, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		fabric         *mock.FabricMock
		expectedStatus int
		expectedNames  []string
		expectedCode   string
	}{
		{
			name: "ok",
			fabric: &mock.FabricMock{
				GetServicesFunc: func(ctx context.Context) ([]domain.ServiceEntry, error) {
					return []domain.ServiceEntry{
						{ServiceName: "billing", ServiceType: "api", Version: "1.0.0", RegisteredOn: registeredOn},
						{ServiceName: "calculator", ServiceType: "api", Version: "1.2.0", RegisteredOn: registeredOn},
					}, nil
				},
			},
			expectedStatus: http.StatusOK,
			expectedNames:  []string{"billing", "calculator"},
		},
		{
			name: "ok empty",
			fabric: &mock.FabricMock{
				GetServicesFunc: func(ctx context.Context) ([]domain.ServiceEntry, error) {
					return nil, nil
				},
			},
			expectedStatus: http.StatusOK,
			expectedNames:  []string{},
		},
		{
			name: "500 store error",
			fabric: &mock.FabricMock{
				GetServicesFunc: func(ctx context.Context) ([]domain.ServiceEntry, error) {
					return nil, service.NewInternalServerError("Redis error", assert.AnError)
				},
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   service.ErrInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, tt.fabric, http.MethodGet, "/v1/services", "")

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeErrCode(t, rec))
				return
			}

			var resp ServicesResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			names := make([]string, 0, len(resp.Services))
			for _, s := range resp.Services {
				names = append(names, s.ServiceName)
			}
			assert.Equal(t, tt.expectedNames, names)
		})
	}
}

func TestHTTPServer_FindService(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		fabric         *mock.FabricMock
		expectedStatus int
		expectedCode   string
	}{
		{
			name:   "ok",
			target: "/v1/services/calculator",
			fabric: &mock.FabricMock{
				FindServiceFunc: func(ctx context.Context, name string) (domain.ServiceEntry, error) {
					assert.Equal(t, "calculator", name)
					return domain.ServiceEntry{ServiceName: name, ServiceType: "api", Version: "1.2.0"}, nil
				},
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "404 not found",
			target: "/v1/services/ghost",
			fabric: &mock.FabricMock{
				FindServiceFunc: func(ctx context.Context, name string) (domain.ServiceEntry, error) {
					return domain.ServiceEntry{}, service.NewServiceNotFoundError(name)
				},
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   service.ErrEntityNotFound,
		},
		{
			name:           "400 name violates pattern",
			target:         "/v1/services/calc@host",
			fabric:         &mock.FabricMock{},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   service.ErrBadParameter,
		},
		{
			name:   "500 store error",
			target: "/v1/services/calculator",
			fabric: &mock.FabricMock{
				FindServiceFunc: func(ctx context.Context, name string) (domain.ServiceEntry, error) {
					return domain.ServiceEntry{}, service.NewInternalServerError("Redis error", assert.AnError)
				},
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   service.ErrInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, tt.fabric, http.MethodGet, tt.target, "")

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeErrCode(t, rec))
				return
			}

			var info ServiceInfo
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&info))
			assert.Equal(t, "calculator", info.ServiceName)
			assert.Equal(t, "1.2.0", info.Version)
			assert.Nil(t, info.RegisteredOn)
		})
	}
}

func TestHTTPServer_FindService_InvalidNameNotForwarded(t *testing.T) {
	fabric := &mock.FabricMock{}

	rec := serve(t, fabric, http.MethodGet, "/v1/services/calc@host", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, fabric.FindServiceCalls())
}

func TestHTTPServer_GetServicePresence(t *testing.T) {
	updatedOn := time.Date(2026, 2, 19, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		fabric         *mock.FabricMock
		expectedStatus int
		expectedLen    int
		expectedCode   string
	}{
		{
			name: "ok",
			fabric: &mock.FabricMock{
				GetServicePresenceFunc: func(ctx context.Context, name string) ([]domain.PresenceRecord, error) {
					assert.Equal(t, "calculator", name)
					return []domain.PresenceRecord{
						{InstanceID: "a1", ServiceName: name, Host: "10.0.0.5", Port: 8080, ProcessID: 4242, UpdatedOn: updatedOn},
						{InstanceID: "b2", ServiceName: name, Host: "10.0.0.6", Port: 8080, ProcessID: 4343, UpdatedOn: updatedOn},
					}, nil
				},
			},
			expectedStatus: http.StatusOK,
			expectedLen:    2,
		},
		{
			name: "ok no live instance",
			fabric: &mock.FabricMock{
				GetServicePresenceFunc: func(ctx context.Context, name string) ([]domain.PresenceRecord, error) {
					return []domain.PresenceRecord{}, nil
				},
			},
			expectedStatus: http.StatusOK,
			expectedLen:    0,
		},
		{
			name: "404 never registered",
			fabric: &mock.FabricMock{
				GetServicePresenceFunc: func(ctx context.Context, name string) ([]domain.PresenceRecord, error) {
					return nil, service.NewServiceNotFoundError(name)
				},
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   service.ErrEntityNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, tt.fabric, http.MethodGet, "/v1/services/calculator/presence", "")

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeErrCode(t, rec))
				return
			}

			var resp PresenceResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			require.NotNil(t, resp.Instances)
			assert.Len(t, resp.Instances, tt.expectedLen)
		})
	}
}

func TestHTTPServer_GetServiceNodes(t *testing.T) {
	updatedOn := time.Date(2026, 2, 19, 12, 0, 0, 0, time.UTC)
	fabric := &mock.FabricMock{
		GetServiceNodesFunc: func(ctx context.Context) ([]domain.PresenceRecord, error) {
			return []domain.PresenceRecord{
				{InstanceID: "a1", ServiceName: "billing", Host: "10.0.0.7", Port: 9000, UpdatedOn: updatedOn, MemoryRSS: 1024},
				{InstanceID: "b2", ServiceName: "calculator", Host: "10.0.0.5", Port: 8080, UpdatedOn: updatedOn},
			}, nil
		},
	}

	rec := serve(t, fabric, http.MethodGet, "/v1/nodes", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp PresenceResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Instances, 2)
	assert.Equal(t, "a1", resp.Instances[0].InstanceId)
	assert.Equal(t, uint64(1024), resp.Instances[0].MemoryRss)
	assert.True(t, updatedOn.Equal(resp.Instances[1].UpdatedOn))
}

func TestHTTPServer_SendMessage(t *testing.T) {
	created := func(fields domain.Envelope) domain.Envelope {
		fields.MID = "mid-1"
		fields.Version = domain.UMFVersion
		fields.From = "self@gateway"
		return fields
	}

	tests := []struct {
		name           string
		body           string
		fabric         *mock.FabricMock
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "202 direct",
			body: `{"to":"a1b2@calculator","type":"add","priority":1,"headers":{"trace":"t-1"},"body":{"x":1,"y":2}}`,
			fabric: &mock.FabricMock{
				CreateMessageFunc: created,
				SendMessageFunc: func(ctx context.Context, env domain.Envelope) (domain.SendResult, error) {
					assert.Equal(t, "mid-1", env.MID)
					assert.Equal(t, "a1b2@calculator", env.To)
					assert.Equal(t, "add", env.Type)
					assert.Equal(t, 1, env.Priority)
					assert.Equal(t, map[string]string{"trace": "t-1"}, env.Headers)
					assert.JSONEq(t, `{"x":1,"y":2}`, string(env.Body))
					return domain.SendResult{MID: env.MID, Channel: "registry:instance:a1b2:channel", Direct: true, Receivers: 1}, nil
				},
			},
			expectedStatus: http.StatusAccepted,
		},
		{
			name: "202 service wide without receivers",
			body: `{"to":"calculator"}`,
			fabric: &mock.FabricMock{
				CreateMessageFunc: created,
				SendMessageFunc: func(ctx context.Context, env domain.Envelope) (domain.SendResult, error) {
					return domain.SendResult{MID: env.MID, Channel: "registry:service:calculator:channel"}, nil
				},
			},
			expectedStatus: http.StatusAccepted,
		},
		{
			name:           "400 invalid JSON",
			body:           `{invalid`,
			fabric:         &mock.FabricMock{},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   service.ErrBadParameter,
		},
		{
			name:           "400 missing to",
			body:           `{"type":"add"}`,
			fabric:         &mock.FabricMock{},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   service.ErrBadParameter,
		},
		{
			name:           "400 negative timeout",
			body:           `{"to":"calculator","timeout":-1}`,
			fabric:         &mock.FabricMock{},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   service.ErrBadParameter,
		},
		{
			name: "400 invalid address",
			body: `{"to":"@calculator"}`,
			fabric: &mock.FabricMock{
				CreateMessageFunc: created,
				SendMessageFunc: func(ctx context.Context, env domain.Envelope) (domain.SendResult, error) {
					return domain.SendResult{}, service.NewInvalidAddressError("invalid to address '@calculator'", nil)
				},
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   service.ErrInvalidAddress,
		},
		{
			name: "409 unreachable instance",
			body: `{"to":"gone@calculator"}`,
			fabric: &mock.FabricMock{
				CreateMessageFunc: created,
				SendMessageFunc: func(ctx context.Context, env domain.Envelope) (domain.SendResult, error) {
					return domain.SendResult{MID: env.MID, Direct: true}, service.NewUnreachableInstanceError("instance gone has no active subscriber", nil)
				},
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   service.ErrUnreachableInstance,
		},
		{
			name: "500 publish error",
			body: `{"to":"calculator"}`,
			fabric: &mock.FabricMock{
				CreateMessageFunc: created,
				SendMessageFunc: func(ctx context.Context, env domain.Envelope) (domain.SendResult, error) {
					return domain.SendResult{}, service.NewInternalServerError("Redis error", assert.AnError)
				},
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   service.ErrInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, tt.fabric, http.MethodPost, "/v1/messages", tt.body)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeErrCode(t, rec))
				return
			}

			var resp SendMessageResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, "mid-1", resp.Mid)
			assert.NotEmpty(t, resp.Channel)
			assert.Len(t, tt.fabric.SendMessageCalls(), 1)
		})
	}
}

func TestHTTPServer_SendMessage_WithoutValidator(t *testing.T) {
	fabric := &mock.FabricMock{}
	e := echo.New()
	RegisterHandlers(e, NewHTTPServer(fabric, log.NewNopLogger()))
	service.RegisterErrorHandler(e, log.NewNopLogger())

	req := httptest.NewRequest(http.MethodPost, "/v1/messages", strings.NewReader(`{"to":"","priority":-3}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, service.ErrBadParameter, decodeErrCode(t, rec))
	assert.Empty(t, fabric.CreateMessageCalls())
}

func TestHTTPServer_UnknownRoute(t *testing.T) {
	rec := serve(t, &mock.FabricMock{}, http.MethodGet, "/v1/unknown", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, service.ErrEntityNotFound, decodeErrCode(t, rec))
}

func TestServerInterfaceWrapper_PathParam(t *testing.T) {
	tests := []struct {
		name         string
		param        string
		expectedName string
		expectedCode int
	}{
		{name: "plain", param: "calculator", expectedName: "calculator"},
		{name: "escaped", param: "billing%2Dv2", expectedName: "billing-v2"},
		{name: "bad escape", param: "%zz", expectedCode: http.StatusBadRequest},
		{name: "empty", param: "", expectedCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fabric := &mock.FabricMock{
				FindServiceFunc: func(ctx context.Context, name string) (domain.ServiceEntry, error) {
					return domain.ServiceEntry{ServiceName: name}, nil
				},
			}
			e := echo.New()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
			c.SetParamNames("name")
			c.SetParamValues(tt.param)
			w := &ServerInterfaceWrapper{Handler: NewHTTPServer(fabric, log.NewNopLogger())}

			err := w.FindService(c)
			if tt.expectedCode != 0 {
				var he *echo.HTTPError
				require.ErrorAs(t, err, &he)
				assert.Equal(t, tt.expectedCode, he.Code)
				assert.Empty(t, fabric.FindServiceCalls())
				return
			}
			require.NoError(t, err)
			calls := fabric.FindServiceCalls()
			require.Len(t, calls, 1)
			assert.Equal(t, tt.expectedName, calls[0].Name)
		})
	}
}
