package cmd

import (
	"context"
	"fmt"
	"log"
	httpNet "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"trendbot/internal/delivery/http"
	"trendbot/internal/delivery/telegram"
	"trendbot/internal/repository"
	"trendbot/internal/service"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the market trend bot",
	Run:   Start,
}

func Start(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}

	repo := repository.NewRepository(appDep.cfg, appDep.cache, appDep.db.DB, appDep.log)
	services := service.NewService(appDep.cfg, appDep.log, repo, appDep.bot)

	httpHandler := http.NewHttpAPIHandler(ctx, appDep.cfg, appDep.echo, appDep.validator, appDep.log, appDep.bot, services)
	telegramHandler := telegram.NewTelegramBotHandler(ctx, appDep.cfg, appDep.log, appDep.bot, services)

	apiServer := NewHTTPServer(ctx, appDep, httpHandler)
	go func() {
		if err := apiServer.Start(); err != nil && err != httpNet.ErrServerClosed {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	go func() {
		telegramHandler.Start()
	}()

	if err := services.SchedulerService.Start(ctx); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	<-ctx.Done()
	appDep.log.Info("Shutting down gracefully...")

	services.SchedulerService.Stop()
	telegramHandler.Stop()

	if err := apiServer.Stop(); err != nil {
		log.Fatalf("Failed to stop HTTP server: %v", err)
	}

	if err := appDep.Close(); err != nil {
		log.Fatalf("Failed to close app dependency: %v", err)
	}
}

type HTTPServer struct {
	ctx     context.Context
	appDep  *AppDependency
	handler *http.HttpAPIHandler
}

func NewHTTPServer(ctx context.Context, appDep *AppDependency, handler *http.HttpAPIHandler) *HTTPServer {
	return &HTTPServer{
		ctx:     ctx,
		appDep:  appDep,
		handler: handler,
	}
}

func (s *HTTPServer) Start() error {
	s.appDep.log.Info("Starting HTTP server", zap.Int("port", s.appDep.cfg.API.Port))
	s.appDep.echo.Use(middleware.Recover())
	s.appDep.echo.Use(middleware.RequestID())
	s.handler.SetupRoutes()
	return s.appDep.echo.Start(fmt.Sprintf(":%d", s.appDep.cfg.API.Port))
}

func (s *HTTPServer) Stop() error {
	s.appDep.log.Info("Shutting down HTTP server")

	// The root context is already canceled at this point; use a fresh one
	// so shutdown still gets its grace period.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.appDep.echo.Shutdown(ctx); err != nil {
		s.appDep.log.Error("Error when stopping HTTP server", zap.Error(err))
		return err
	}
	return nil
}
