package ingest_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifydispatch/pkg/dispatch"
	"github.com/dmitrymomot/notifydispatch/pkg/httpserver"
	"github.com/dmitrymomot/notifydispatch/pkg/ingest"
)

type MockEventHandler struct {
	mock.Mock
}

func (m *MockEventHandler) Handle(ctx context.Context, ev dispatch.Event) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

const validEvent = `{"name":"POST_ADD_USER","properties":{"tenantDomain":"acme.com","templateType":"AccountConfirmation","retries":3}}`

func postEvent(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_PostEvent(t *testing.T) {
	t.Parallel()

	h := &MockEventHandler{}
	h.On("Handle", mock.Anything, mock.MatchedBy(func(ev dispatch.Event) bool {
		return ev.Name == "POST_ADD_USER" &&
			ev.Property("tenantDomain") == "acme.com" &&
			ev.Properties["retries"] == float64(3)
	})).Return(nil).Once()

	rec := postEvent(t, ingest.NewRouter(h), validEvent)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.JSONEq(t, `{"data":{"status":"accepted"}}`, rec.Body.String())
	h.AssertExpectations(t)
}

func TestRouter_PostEvent_BadRequest(t *testing.T) {
	t.Parallel()

	h := &MockEventHandler{}
	router := ingest.NewRouter(h, ingest.WithMaxBodyBytes(64))

	tests := []struct {
		name string
		body string
		code int
	}{
		{"malformed json", `{"name":`, http.StatusBadRequest},
		{"missing name", `{"properties":{}}`, http.StatusBadRequest},
		{"blank name", `{"name":"  "}`, http.StatusBadRequest},
		{"too large", `{"name":"` + strings.Repeat("x", 128) + `"}`, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := postEvent(t, router, tt.body)
			assert.Equal(t, tt.code, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestRouter_PostEvent_HandlerErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		code int
		body string
	}{
		{"organization", errors.Join(dispatch.ErrOrganizationResolution, errors.New("no org")), http.StatusUnprocessableEntity, "organization_unresolved"},
		{"assembly", errors.Join(dispatch.ErrAssembly, errors.New("bad template")), http.StatusUnprocessableEntity, "assembly_failed"},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout, "timeout"},
		{"transport", errors.New("redis down"), http.StatusBadGateway, "dispatch_failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := &MockEventHandler{}
			h.On("Handle", mock.Anything, mock.Anything).Return(tt.err).Once()

			rec := postEvent(t, ingest.NewRouter(h), validEvent)
			assert.Equal(t, tt.code, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.body)
			h.AssertExpectations(t)
		})
	}
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()

	failing := httpserver.Check{Name: "redis", Probe: func(context.Context) error { return errors.New("down") }}
	router := ingest.NewRouter(&MockEventHandler{}, ingest.WithReadinessChecks(failing))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()

	h := &MockEventHandler{}
	h.On("Handle", mock.Anything, mock.Anything).Return(nil)

	reg := prometheus.NewRegistry()
	router := ingest.NewRouter(h, ingest.WithMetrics(reg))

	require.Equal(t, http.StatusAccepted, postEvent(t, router, validEvent).Code)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `notify_http_requests_total{method="POST",path="/events",status="202"} 1`)
}

func TestRouter_NoMetricsByDefault(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	ingest.NewRouter(&MockEventHandler{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
