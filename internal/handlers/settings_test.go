package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gameplan-service/internal/middleware"
	"gameplan-service/internal/mocks"
	"gameplan-service/internal/models"
	"gameplan-service/internal/telemetry"
)

func setupSettingsRouter(repo *mocks.SettingsRepositoryMock, emitter *telemetry.AuditEmitter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewSettingsHandler(repo, emitter)
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Identity())
	r.GET("/settings", handler.Get)
	r.PUT("/settings", handler.Put)
	return r
}

func TestGetSettingsAddsStatusColor(t *testing.T) {
	repo := new(mocks.SettingsRepositoryMock)
	router := setupSettingsRouter(repo, nil)

	repo.On("GetSettings", mock.Anything, "coach").Return(models.DefaultSettings("coach"), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/settings", nil)
	req.Header.Set("X-User-ID", "coach")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status_color":"green"`)
	assert.Contains(t, rec.Body.String(), `"notifications_enabled":true`)
}

func TestSettingsRequireCaller(t *testing.T) {
	repo := new(mocks.SettingsRepositoryMock)
	router := setupSettingsRouter(repo, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/settings", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "GetSettings", mock.Anything, mock.Anything)
}

func TestPutSettingsSavesAndAudits(t *testing.T) {
	repo := new(mocks.SettingsRepositoryMock)
	pub := new(mocks.PublisherMock)
	router := setupSettingsRouter(repo, telemetry.NewAuditEmitter(pub, "audit.gameplan", "gameplan-service", "test"))

	want := models.Settings{UserID: "coach", DisplayName: "Coach K", Status: models.StatusAway, NotificationsEnabled: false}
	repo.On("SaveSettings", mock.Anything, want).Return(want, nil).Once()
	pub.On("Publish", mock.Anything, "audit.gameplan", mock.AnythingOfType("telemetry.AuditEnvelope")).Return(nil).Once()

	req := httptest.NewRequest(http.MethodPut, "/settings", bytes.NewBufferString(`{"display_name":"Coach K","status":"away","notifications_enabled":false}`))
	req.Header.Set("X-User-ID", "coach")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status_color":"orange"`)
	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestPutSettingsRejectsUnknownStatus(t *testing.T) {
	repo := new(mocks.SettingsRepositoryMock)
	router := setupSettingsRouter(repo, nil)

	req := httptest.NewRequest(http.MethodPut, "/settings", bytes.NewBufferString(`{"status":"busy"}`))
	req.Header.Set("X-User-ID", "coach")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "SaveSettings", mock.Anything, mock.Anything)
}

type pingerStub struct{ err error }

func (p pingerStub) PingContext(context.Context) error { return p.err }

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ok", Health(pingerStub{}))
	r.GET("/down", Health(pingerStub{err: assert.AnError}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/down", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestDebugAuditRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	pub := new(mocks.PublisherMock)
	r := gin.New()
	RegisterDebugRoutes(r, telemetry.NewAuditEmitter(pub, "audit.gameplan", "gameplan-service", "test"), true)

	pub.On("Publish", mock.Anything, "audit.gameplan", mock.Anything).Return(nil).Once()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/audit-test", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	pub.AssertExpectations(t)

	disabled := gin.New()
	RegisterDebugRoutes(disabled, nil, false)
	rec = httptest.NewRecorder()
	disabled.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/audit-test", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
