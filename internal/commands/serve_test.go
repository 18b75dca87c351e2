package commands

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"gameplan-service/internal/config"
	"gameplan-service/internal/handlers"
	"gameplan-service/internal/mocks"
	"gameplan-service/internal/models"
	"gameplan-service/internal/venues"
	"gameplan-service/internal/ws"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

func testRoutes(t *testing.T, chatRepo *mocks.ChatRepositoryMock) routes {
	t.Helper()
	catalog, err := venues.Load("")
	require.NoError(t, err)

	messageRepo := new(mocks.MessageRepositoryMock)
	hub := ws.NewHub()
	feeds := ws.NewFeeds(hub, chatRepo, messageRepo, time.UTC)

	return routes{
		service:       "gameplan-test",
		db:            okPinger{},
		chats:         handlers.NewChatHandler(chatRepo, messageRepo, feeds, nil, time.UTC),
		calendar:      handlers.NewCalendarHandler(new(mocks.EventRepositoryMock), nil, time.UTC, 30, "GamePlan"),
		announcements: handlers.NewAnnouncementHandler(new(mocks.AnnouncementRepositoryMock), nil, time.UTC),
		venues:        handlers.NewVenueHandler(catalog, time.UTC),
		settings:      handlers.NewSettingsHandler(new(mocks.SettingsRepositoryMock), nil),
		subscriptions: ws.NewSubscriptionHandler(hub, feeds, chatRepo),
	}
}

func TestRouterServesCoreEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	chatRepo := new(mocks.ChatRepositoryMock)
	router := newRouter(testRoutes(t, chatRepo))

	chatRepo.On("ListChats", mock.Anything).Return([]models.Chat{}, nil).Once()

	for _, path := range []string{"/healthz", "/venues", "/venues/2/plan", "/chats", "/metrics"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
	chatRepo.AssertExpectations(t)
}

func TestRouterDebugRoutesOffByDefault(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := newRouter(testRoutes(t, new(mocks.ChatRepositoryMock)))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/audit-test", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterEchoesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := newRouter(testRoutes(t, new(mocks.ChatRepositoryMock)))

	req := httptest.NewRequest(http.MethodGet, "/venues/1", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func freePort(t *testing.T) string {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := strconv.Itoa(lis.Addr().(*net.TCPAddr).Port)
	require.NoError(t, lis.Close())
	return port
}

func serveConfig(grpcPort string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:            "0",
			GRPCPort:        grpcPort,
			ShutdownTimeout: time.Second,
		},
		Database: config.DatabaseConfig{DSN: "postgres://gameplan@127.0.0.1:1/gameplan?sslmode=disable&connect_timeout=1"},
		Tracing:  config.TracingConfig{ServiceName: "gameplan-test"},
	}
}

func TestServeFailsWhenGRPCPortTaken(t *testing.T) {
	taken, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer taken.Close()
	port := strconv.Itoa(taken.Addr().(*net.TCPAddr).Port)

	err = serve(context.Background(), serveConfig(port))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen grpc")
}

func TestServeReleasesResourcesOnStartupFailure(t *testing.T) {
	port := freePort(t)

	err := serve(context.Background(), serveConfig(port))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect db")

	_, span := otel.Tracer("serve-test").Start(context.Background(), "after-shutdown")
	assert.False(t, span.IsRecording(), "tracer provider must be shut down")
	span.End()

	lis, err := net.Listen("tcp", ":"+port)
	require.NoError(t, err, "grpc listener must be closed")
	require.NoError(t, lis.Close())
}
