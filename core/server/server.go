package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"

	"event-api/core/cache"
	"event-api/core/config"
	"event-api/core/constants"
	"event-api/core/database"
	"event-api/core/logger"
	"event-api/core/middleware"
	"event-api/core/queue"
	"event-api/core/utils"
	_ "event-api/docs"
	"event-api/modules/auth"
	authRepository "event-api/modules/auth/repository"
	"event-api/modules/event"
	eventRepository "event-api/modules/event/repository"
	"event-api/modules/notification"
	notificationService "event-api/modules/notification/service"
	"event-api/modules/participant"
	participantRepository "event-api/modules/participant/repository"
	permissionService "event-api/modules/permission/service"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Dependencies are the shared resources the HTTP modules are built from.
type Dependencies struct {
	DB       database.IDatabase
	Cache    cache.Cache
	Notifier notificationService.Notifier
}

func NewEcho(cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: utils.GenerateID}))
	e.Use(middleware.RequestLogger())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.App.AllowedOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	return e
}

// Mount wires every module onto e under /api, plus the health check and the API docs.
func Mount(e *echo.Echo, deps Dependencies) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authRepo := authRepository.NewAuthRepository(deps.DB)
	eventRepo := eventRepository.NewEventRepository(deps.DB)
	participantRepo := participantRepository.NewParticipantRepository(deps.DB)

	permissions := permissionService.NewPermissionService(eventRepo, participantRepo)
	authService := auth.GetService(deps.DB, deps.Cache, permissions)
	mw := middleware.NewMiddleware(authService, deps.Cache)

	api := e.Group("/api")
	auth.Init(api, mw, authService)
	event.Init(api, mw, eventRepo, permissions)
	participant.Init(api, mw, participantRepo, eventRepo, authRepo, permissions, deps.Notifier)
}

// Run starts the HTTP server and blocks until ctx is cancelled, then drains it.
func Run(ctx context.Context, cfg *config.Config) error {
	if cfg.App.MigrateOnStart {
		if err := database.RunMigrations(cfg.Database.URL()); err != nil {
			return err
		}
	}

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	redisCache, err := cache.InitCache(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}
	defer redisCache.Close()

	queueClient := queue.NewClient(cfg.Redis)
	defer queueClient.Close()

	notifications := notification.Init(queueClient)

	e := NewEcho(cfg)
	Mount(e, Dependencies{
		DB:       db,
		Cache:    redisCache,
		Notifier: notifications,
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server:Run:Listening", "addr", addr, "env", cfg.App.Env)
		if err := e.Start(addr); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("Server:Run:ShuttingDown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server:Run:Shutdown", "error", err)
	}
	notifications.Close()
	return nil
}
