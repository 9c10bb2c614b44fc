package http

import (
	"context"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gopkg.in/telebot.v3"

	"trendbot/config"
	"trendbot/internal/service"
	"trendbot/pkg/logger"
)

type HttpAPIHandler struct {
	ctx       context.Context
	cfg       *config.Config
	echo      *echo.Echo
	validator *goValidator.Validate
	log       *logger.Logger
	bot       *telebot.Bot
	service   *service.Service
}

func NewHttpAPIHandler(
	ctx context.Context,
	cfg *config.Config,
	e *echo.Echo,
	validator *goValidator.Validate,
	log *logger.Logger,
	bot *telebot.Bot,
	service *service.Service,
) *HttpAPIHandler {
	return &HttpAPIHandler{
		ctx:       ctx,
		cfg:       cfg,
		echo:      e,
		validator: validator,
		log:       log,
		bot:       bot,
		service:   service,
	}
}

func (h *HttpAPIHandler) SetupRoutes() {
	base := h.echo.Group("/api/v1")
	base.GET("/report", h.getReport)
	base.GET("/news", h.getNews)
	base.POST("/telegram/webhook", h.telegramWebhook)
}
