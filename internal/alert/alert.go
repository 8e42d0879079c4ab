package alert

import (
	"fmt"
	"math"

	"asesor-telegram-bot/internal/database"
	"asesor-telegram-bot/internal/telegram"
	"asesor-telegram-bot/lib/helpers"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// QuoteProvider supplies the most recent daily close for a ticker.
type QuoteProvider interface {
	LatestClose(ticker string) (float64, error)
}

// Notifier delivers alert notifications to users.
type Notifier interface {
	SendMessage(m telegram.Message) error
}

// Service sweeps the alerts table on a fixed interval and notifies users
// whose percent-change threshold has been crossed since the last observed
// price.
type Service struct {
	store           *database.Store
	market          QuoteProvider
	notifier        Notifier
	intervalMinutes int
	cron            *cron.Cron

	// OnNotify, when set, is called once per delivered notification.
	OnNotify func()
}

func NewService(store *database.Store, market QuoteProvider, notifier Notifier, intervalMinutes int) *Service {
	return &Service{
		store:           store,
		market:          market,
		notifier:        notifier,
		intervalMinutes: intervalMinutes,
	}
}

// Start schedules the sweep. SkipIfStillRunning guarantees a tick never
// overlaps itself: a slow sweep makes the next one a no-op instead of a
// concurrent run.
func (s *Service) Start() error {
	s.cron = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DiscardLogger),
	))

	spec := fmt.Sprintf("@every %dm", s.intervalMinutes)
	if _, err := s.cron.AddFunc(spec, s.CheckAlerts); err != nil {
		return fmt.Errorf("failed to schedule alert checker: %w", err)
	}

	s.cron.Start()
	log.Infof("🚀 Alert service started, checking every %d minutes.", s.intervalMinutes)
	return nil
}

// Stop halts the schedule. A tick already in flight runs to completion.
func (s *Service) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// CheckAlerts runs one sweep over every stored alert. A failure on one
// row is logged and never aborts the rest of the batch.
func (s *Service) CheckAlerts() {
	log.Debug("🔄 Checking alerts...")

	alerts, err := s.store.GetAllAlerts()
	if err != nil {
		log.Errorf("❌ Failed to fetch alerts from the database: %v", err)
		return
	}

	for _, alert := range alerts {
		price, err := s.market.LatestClose(alert.Ticker)
		if err != nil {
			log.Warnf("⚠️ No price data for ticker %s: %v", alert.Ticker, err)
			continue
		}
		if alert.LastPrice == 0 {
			log.Warnf("⚠️ Alert for %s (chat %d) has no reference price, skipping", alert.Ticker, alert.ChatID)
			continue
		}

		change := ((price - alert.LastPrice) / alert.LastPrice) * 100
		if math.Abs(change) < alert.Threshold {
			continue
		}

		message := fmt.Sprintf("🔔 *%s* se movió *%s%%*",
			helpers.EscapeMarkdownV2(alert.Ticker),
			helpers.FormatPercent(change, true),
		)

		err = s.notifier.SendMessage(telegram.Message{
			ChatID: int(alert.ChatID),
			Text:   message,
		})
		if err != nil {
			log.Errorf("❌ Failed to send alert notification to chat %d: %v", alert.ChatID, err)
		} else if s.OnNotify != nil {
			s.OnNotify()
		}

		if err := s.store.UpdateAlertPrice(alert.ChatID, alert.Ticker, price); err != nil {
			log.Errorf("❌ Failed to update alert price for %s (chat %d): %v", alert.Ticker, alert.ChatID, err)
		}
	}

	log.Debug("✅ Alert check completed.")
}
