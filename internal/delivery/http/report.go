package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gopkg.in/telebot.v3"

	"trendbot/internal/domain"
	"trendbot/internal/dto"
	"trendbot/pkg/logger"
)

type reportResponse struct {
	Symbol       string               `json:"symbol"`
	CurrentPrice float64              `json:"current_price"`
	StartPrice   float64              `json:"start_price"`
	ShortMA      float64              `json:"short_ma"`
	LongMA       float64              `json:"long_ma"`
	IsBullish    bool                 `json:"is_bullish"`
	PriceChange  float64              `json:"price_change_pct"`
	News         []domain.NewsArticle `json:"news"`
	GeneratedAt  time.Time            `json:"generated_at"`
}

type newsQuery struct {
	Sentiment string `query:"sentiment" validate:"required,oneof=bullish bearish"`
}

func (h *HttpAPIHandler) getReport(c echo.Context) error {
	report := h.service.ReportService.GenerateReport(c.Request().Context())
	if report.Analysis == nil {
		return c.JSON(http.StatusServiceUnavailable,
			dto.NewBaseResponse(http.StatusServiceUnavailable, "market data unavailable", nil))
	}

	resp := reportResponse{
		Symbol:       h.cfg.Market.Symbol,
		CurrentPrice: report.Analysis.CurrentPrice,
		StartPrice:   report.Analysis.StartPrice,
		ShortMA:      report.Analysis.ShortMA,
		LongMA:       report.Analysis.LongMA,
		IsBullish:    report.Analysis.IsBullish,
		PriceChange:  report.Analysis.PriceChangePct(),
		News:         report.News,
		GeneratedAt:  report.GeneratedAt,
	}
	return c.JSON(http.StatusOK, dto.NewBaseResponse(http.StatusOK, "ok", resp))
}

func (h *HttpAPIHandler) getNews(c echo.Context) error {
	var q newsQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}
	if err := h.validator.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	articles := h.service.NewsService.ResolveNews(c.Request().Context(), q.Sentiment == string(domain.SentimentBullish))
	return c.JSON(http.StatusOK, dto.NewBaseResponse(http.StatusOK, "ok", articles))
}

func (h *HttpAPIHandler) telegramWebhook(c echo.Context) error {
	var update telebot.Update
	if err := c.Bind(&update); err != nil {
		h.log.ErrorContext(h.ctx, "Cannot bind webhook update", logger.ErrorField(err))
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}
	h.bot.ProcessUpdate(update)
	return c.JSON(http.StatusOK, dto.NewBaseResponse(http.StatusOK, "ok", nil))
}
