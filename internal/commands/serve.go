package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"gameplan-service/internal/config"
	"gameplan-service/internal/db"
	"gameplan-service/internal/grpcserver"
	"gameplan-service/internal/handlers"
	"gameplan-service/internal/jobs"
	"gameplan-service/internal/logging"
	"gameplan-service/internal/middleware"
	"gameplan-service/internal/observability"
	"gameplan-service/internal/rabbitmq"
	"gameplan-service/internal/repositories"
	"gameplan-service/internal/telemetry"
	"gameplan-service/internal/tracing"
	"gameplan-service/internal/venues"
	"gameplan-service/internal/ws"
)

func addServe(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP, websocket and gRPC health servers.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logging.New(cfg.Log)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}

	topLevel.AddCommand(cmd)
}

// routes collects everything the HTTP router dispatches to.
type routes struct {
	service       string
	debug         bool
	db            handlers.Pinger
	emitter       *telemetry.AuditEmitter
	chats         *handlers.ChatHandler
	calendar      *handlers.CalendarHandler
	announcements *handlers.AnnouncementHandler
	venues        *handlers.VenueHandler
	settings      *handlers.SettingsHandler
	subscriptions *ws.SubscriptionHandler
}

func newRouter(r routes) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		otelgin.Middleware(r.service),
		middleware.RequestID(),
		middleware.Identity(),
		observability.HTTPMetricsMiddleware(),
	)

	router.GET("/healthz", handlers.Health(r.db))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handlers.RegisterDebugRoutes(router, r.emitter, r.debug)

	router.GET("/chats", r.chats.ListChats)
	router.POST("/chats", r.chats.CreateChat)
	router.POST("/chats/batch-delete", r.chats.BatchDeleteChats)
	router.DELETE("/chats/:chat_id", r.chats.DeleteChat)
	router.GET("/chats/:chat_id/messages", r.chats.GetMessages)
	router.POST("/chats/:chat_id/messages", r.chats.PostMessage)

	router.GET("/ws/chats", r.subscriptions.HandleChats)
	router.GET("/ws/chats/:chat_id", r.subscriptions.HandleMessages)

	router.GET("/calendar/agenda", r.calendar.Agenda)
	router.POST("/calendar/events", r.calendar.CreateEvent)
	router.DELETE("/calendar/events/:event_id", r.calendar.DeleteEvent)
	router.GET("/calendar.ics", r.calendar.ICS)

	router.GET("/announcements", r.announcements.List)
	router.POST("/announcements", r.announcements.Create)
	router.POST("/announcements/batch-delete", r.announcements.BatchDelete)
	router.DELETE("/announcements/:announcement_id", r.announcements.Delete)

	router.GET("/venues", r.venues.List)
	router.GET("/venues/nearby", r.venues.Nearby)
	router.GET("/venues/:venue_id", r.venues.Get)
	router.GET("/venues/:venue_id/plan", r.venues.Plan)

	router.GET("/settings", r.settings.Get)
	router.PUT("/settings", r.settings.Put)

	return router
}

func newRoutes(cfg *config.Config, database *sqlx.DB, catalog *venues.Catalog, emitter *telemetry.AuditEmitter) routes {
	loc := cfg.Calendar.Location

	chatRepo := repositories.NewChatRepo(database)
	messageRepo := repositories.NewMessageRepo(database)
	hub := ws.NewHub()
	feeds := ws.NewFeeds(hub, chatRepo, messageRepo, loc)

	return routes{
		service:       cfg.Tracing.ServiceName,
		debug:         cfg.Server.DebugRoutes,
		db:            database,
		emitter:       emitter,
		chats:         handlers.NewChatHandler(chatRepo, messageRepo, feeds, emitter, loc),
		calendar:      handlers.NewCalendarHandler(repositories.NewEventRepo(database), emitter, loc, cfg.Calendar.HorizonDays, cfg.Calendar.FeedName),
		announcements: handlers.NewAnnouncementHandler(repositories.NewAnnouncementRepo(database), emitter, loc),
		venues:        handlers.NewVenueHandler(catalog, loc),
		settings:      handlers.NewSettingsHandler(repositories.NewSettingsRepo(database), emitter),
		subscriptions: ws.NewSubscriptionHandler(hub, feeds, chatRepo),
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	grpcLis, err := net.Listen("tcp", ":"+cfg.Server.GRPCPort)
	if err != nil {
		return fmt.Errorf("listen grpc: %w", err)
	}
	defer grpcLis.Close()

	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			slog.Error("tracing shutdown", "err", err)
		}
	}()

	database, err := db.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer database.Close()

	catalog, err := venues.Load(cfg.Venues.CatalogPath)
	if err != nil {
		return err
	}

	publisher := rabbitmq.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
	defer publisher.Close()
	observability.SetPublisher(publisher)
	slog.Info("event publisher ready", "mode", rabbitmq.PublisherMode(publisher), "noop_reason", rabbitmq.PublisherNoopReason(publisher))
	emitter := telemetry.NewAuditEmitter(publisher, cfg.Audit.RoutingKey, cfg.Audit.Service, cfg.Audit.Environment)

	scheduler, err := jobs.Start(cfg.Retention, repositories.NewAnnouncementRepo(database))
	if err != nil {
		return err
	}
	defer func() { <-scheduler.Stop().Done() }()

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	httpServer := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      newRouter(newRoutes(cfg, database, catalog, emitter)),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	grpcServer := grpcserver.New()

	errCh := make(chan error, 2)
	go func() {
		slog.Info("http server listening", "addr", httpServer.Addr, "venues", len(catalog.All()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http serve: %w", err)
		}
	}()
	go func() {
		if err := grpcServer.Serve(grpcLis); err != nil {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		slog.Info("signal received, shutting down")
	case runErr = <-errCh:
		slog.Error("server stopped", "err", runErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown", "err", err)
	}
	grpcServer.GracefulStop()
	return runErr
}

