package cmd

import (
	"context"
	"time"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gopkg.in/telebot.v3"

	"trendbot/config"
	"trendbot/pkg/cache"
	"trendbot/pkg/logger"
	"trendbot/pkg/postgres"
)

// AppDependency owns the process-wide handles: config, logger, the durable
// store, the fast cache and the bot. It is constructed once at startup and
// closed once at shutdown; everything else borrows references from it.
type AppDependency struct {
	cfg       *config.Config
	log       *logger.Logger
	db        *postgres.DB
	cache     cache.Cache
	bot       *telebot.Bot
	echo      *echo.Echo
	validator *goValidator.Validate
}

func NewAppDependency(ctx context.Context) (*AppDependency, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return nil, err
	}

	db, err := postgres.NewDB(cfg.DB, log)
	if err != nil {
		log.Error("Failed to connect to database", zap.Error(err))
		return nil, err
	}

	c, err := cache.New(cfg.Cache)
	if err != nil {
		log.Error("Failed to create cache", zap.Error(err))
		return nil, err
	}

	pref := telebot.Settings{
		Token:  cfg.Telegram.BotToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) {
			log.Error("Telegram bot error", zap.Error(err))
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		log.Error("Failed to create telegram bot", zap.Error(err))
		return nil, err
	}

	return &AppDependency{
		cfg:       cfg,
		log:       log,
		db:        db,
		cache:     c,
		bot:       bot,
		echo:      echo.New(),
		validator: goValidator.New(),
	}, nil
}

func (d *AppDependency) Close() error {
	d.log.Info("Closing app dependency")
	if d.cache != nil {
		if err := d.cache.Close(); err != nil {
			d.log.Error("Failed to close cache", zap.Error(err))
		}
	}
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}
