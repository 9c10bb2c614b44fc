package service

import (
	"bytes"
	"context"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
	"gopkg.in/telebot.v3"

	"trendbot/config"
	"trendbot/pkg/logger"
)

// SchedulerService pushes the periodic report to every allow-listed chat on
// the configured cron spec. An empty spec disables scheduling.
type SchedulerService struct {
	cfg           *config.Config
	log           *logger.Logger
	reportService ReportService
	bot           *telebot.Bot
	cron          *cron.Cron
}

func NewSchedulerService(cfg *config.Config, log *logger.Logger, reportService ReportService, bot *telebot.Bot) *SchedulerService {
	return &SchedulerService{
		cfg:           cfg,
		log:           log,
		reportService: reportService,
		bot:           bot,
		cron:          cron.New(),
	}
}

func (s *SchedulerService) Start(ctx context.Context) error {
	if s.cfg.Scheduler.CronSpec == "" {
		s.log.Info("Report scheduler is disabled")
		return nil
	}

	_, err := s.cron.AddFunc(s.cfg.Scheduler.CronSpec, func() {
		s.pushReport(ctx)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info("Report scheduler started", logger.StringField("cron_spec", s.cfg.Scheduler.CronSpec))
	return nil
}

func (s *SchedulerService) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.log.Info("Report scheduler stopped")
}

func (s *SchedulerService) pushReport(ctx context.Context) {
	reportCtx, cancel := context.WithTimeout(ctx, s.cfg.Telegram.TimeoutDuration)
	defer cancel()

	report := s.reportService.GenerateReport(reportCtx)

	g, _ := errgroup.WithContext(reportCtx)
	g.SetLimit(4)
	for _, chatID := range s.cfg.Telegram.AllowedChatIDs {
		g.Go(func() error {
			s.sendReport(chatID, report)
			return nil
		})
	}
	// Send failures are per-chat and already logged; nothing propagates.
	_ = g.Wait()
}

func (s *SchedulerService) sendReport(chatID int64, report *Report) {
	recipient := &telebot.Chat{ID: chatID}

	if report.Chart != nil {
		photo := &telebot.Photo{
			File:    telebot.FromReader(bytes.NewReader(report.Chart)),
			Caption: "Market Trend Visualization",
		}
		if _, err := s.bot.Send(recipient, photo); err != nil {
			s.log.Error("Failed to send scheduled chart",
				logger.IntField("chat_id", int(chatID)),
				logger.ErrorField(err))
		}
	}

	if _, err := s.bot.Send(recipient, report.Text, &telebot.SendOptions{ParseMode: telebot.ModeMarkdown}); err != nil {
		s.log.Error("Failed to send scheduled report",
			logger.IntField("chat_id", int(chatID)),
			logger.ErrorField(err))
	}
}
