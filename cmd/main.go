package main

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"asesor-telegram-bot/config"
	"asesor-telegram-bot/internal/alert"
	"asesor-telegram-bot/internal/commands"
	"asesor-telegram-bot/internal/database"
	"asesor-telegram-bot/internal/estimator"
	"asesor-telegram-bot/internal/market"
	"asesor-telegram-bot/internal/news"
	"asesor-telegram-bot/internal/report"
	"asesor-telegram-bot/internal/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/leonelquinteros/gotext"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
	log "github.com/sirupsen/logrus"
)

type BotMetrics struct {
	MessagesHandled   prometheus.Counter
	CommandsProcessed prometheus.Counter
	AlertsTriggered   prometheus.Counter
	UsersRegistered   prometheus.Gauge
	MessagesPerChat   *prometheus.CounterVec
	ChatCounts        map[int64]float64
	Mutex             sync.Mutex
}

var (
	metrics = NewBotMetrics()
)

func init() {
	config.InitConfig()
	setupLogging()
}

func NewBotMetrics() *BotMetrics {
	metrics := &BotMetrics{
		MessagesHandled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "asesor",
			Subsystem: "telegram_bot",
			Name:      "messages_handled",
			Help:      "The total number of handled messages",
		}),
		CommandsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "asesor",
			Subsystem: "telegram_bot",
			Name:      "commands_processed",
			Help:      "The total number of processed intents",
		}),
		AlertsTriggered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "asesor",
			Subsystem: "telegram_bot",
			Name:      "alerts_triggered",
			Help:      "The total number of price alert notifications sent",
		}),
		UsersRegistered: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "asesor",
			Subsystem: "telegram_bot",
			Name:      "users_registered",
			Help:      "The current number of registered users",
		}),
		MessagesPerChat: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "asesor",
				Subsystem: "telegram_bot",
				Name:      "messages_per_chat",
				Help:      "The total number of messages handled per chat",
			},
			[]string{"chat_id"},
		),
		ChatCounts: make(map[int64]float64),
	}

	prometheus.MustRegister(metrics.MessagesHandled)
	prometheus.MustRegister(metrics.CommandsProcessed)
	prometheus.MustRegister(metrics.AlertsTriggered)
	prometheus.MustRegister(metrics.UsersRegistered)
	prometheus.MustRegister(metrics.MessagesPerChat)

	return metrics
}

func main() {
	gotext.Configure("locales", strings.ToLower(config.GetString("lang")), "default")

	store, err := database.Open(config.GetString("db_path"))
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	loadMetricsFromDB(store)

	marketClient := market.NewClient()
	newsClient := news.NewClient(config.GetString("finnhub_api_key"))
	est := estimator.New(marketClient)
	reporter := report.NewGenerator(store, est)
	handler := commands.NewHandler(store, marketClient, est, newsClient, reporter)

	bot, err := telegram.NewBot(telegram.BotConfig{
		Token:          config.GetString("telegram_bot_token"),
		Debug:          config.GetBool("debug"),
		UpdatesTimeout: 60,
	}, handler, store)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	alertService := alert.NewService(store, marketClient, bot, config.GetInt("check_interval_minutes"))
	alertService.OnNotify = metrics.AlertsTriggered.Inc
	if err := alertService.Start(); err != nil {
		log.Fatalf("Failed to start alert service: %v", err)
	}

	updates, err := bot.GetUpdatesChannel()
	if err != nil {
		log.Fatalf("Failed to get updates channel: %v", err)
	}

	go handleUpdates(bot, updates)

	go func() {
		for {
			time.Sleep(5 * time.Minute)
			saveMetricsToDB(store)
		}
	}()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		alertService.Stop()
		saveMetricsToDB(store)
		log.Println("Metrics saved, shutting down...")
		os.Exit(0)
	}()

	if err := launchMetricsAndHealthServer(config.GetInt("metrics_port")); err != nil {
		log.Fatalf("Failed to start metrics and health server: %v", err)
	}
}

func setupLogging() {
	log.SetLevel(log.ErrorLevel)
	if config.GetBool("debug") {
		log.SetLevel(log.DebugLevel)
	}
	log.Debug("Starting telegram bot...")
}

func handleUpdates(bot *telegram.Bot, updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		if update.Message == nil || update.Message.Text == "" {
			log.Debug("Received non-text update")
			continue
		}

		metrics.MessagesHandled.Inc()
		trackChatMessage(update.Message.Chat.ID)

		handleMessage(bot, update)
	}
}

func handleMessage(bot *telegram.Bot, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			stackBuf := make([]byte, 1024)
			stackSize := runtime.Stack(stackBuf, false)
			stackTrace := bytes.TrimRight(stackBuf[:stackSize], "\x00")
			log.Errorf("Recovered from panic: %v\nStack trace: %s", r, stackTrace)
		}
	}()

	text := bot.HandleUpdate(update)
	if text == "" {
		metrics.CommandsProcessed.Inc()
		return
	}

	err := bot.SendMessage(telegram.Message{
		ChatID:    int(update.Message.Chat.ID),
		Text:      text,
		MessageID: update.Message.MessageID,
	})

	if err != nil {
		log.Errorf("Failed to send message: %v", err)
	} else {
		metrics.CommandsProcessed.Inc()
	}
}

func trackChatMessage(chatID int64) {
	metrics.Mutex.Lock()
	defer metrics.Mutex.Unlock()

	metrics.ChatCounts[chatID]++
	metrics.MessagesPerChat.WithLabelValues(fmt.Sprintf("%d", chatID)).Inc()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func launchMetricsAndHealthServer(port int) error {
	http.Handle("/metrics", promhttp.Handler())
	http.HandleFunc("/health", healthCheckHandler)

	log.Infof("Launching metrics and health endpoint on :%d", port)
	return http.ListenAndServe(fmt.Sprintf(":%d", port), http.DefaultServeMux)
}

func loadMetricsFromDB(store *database.Store) {
	metrics.Mutex.Lock()
	defer metrics.Mutex.Unlock()

	messagesHandled, _ := store.GetMetric("messages_handled")
	commandsProcessed, _ := store.GetMetric("commands_processed")
	alertsTriggered, _ := store.GetMetric("alerts_triggered")

	metrics.MessagesHandled.Add(messagesHandled)
	metrics.CommandsProcessed.Add(commandsProcessed)
	metrics.AlertsTriggered.Add(alertsTriggered)

	if users, err := store.CountUsers(); err == nil {
		metrics.UsersRegistered.Set(float64(users))
	}

	perChat, _ := store.GetMetricsWithLabels("messages_per_chat")
	for chatIDStr, value := range perChat["chat_id"] {
		chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
		if err != nil {
			log.Printf("Failed to parse chatID %s: %v", chatIDStr, err)
			continue
		}
		metrics.ChatCounts[chatID] = value
		metrics.MessagesPerChat.WithLabelValues(chatIDStr).Add(value)
	}

	log.Println("Metrics loaded from database.")
}

func saveMetricsToDB(store *database.Store) {
	metrics.Mutex.Lock()
	defer metrics.Mutex.Unlock()

	store.SaveMetric("messages_handled", "", "", GetMetricValue(metrics.MessagesHandled))
	store.SaveMetric("commands_processed", "", "", GetMetricValue(metrics.CommandsProcessed))
	store.SaveMetric("alerts_triggered", "", "", GetMetricValue(metrics.AlertsTriggered))

	for chatID, count := range metrics.ChatCounts {
		store.SaveMetric("messages_per_chat", "chat_id", fmt.Sprintf("%d", chatID), count)
	}

	if users, err := store.CountUsers(); err == nil {
		metrics.UsersRegistered.Set(float64(users))
	}

	log.Println("Metrics saved to database.")
}

func GetMetricValue(metric prometheus.Collector) float64 {
	var metricValue float64
	metricChan := make(chan prometheus.Metric, 1)
	metric.Collect(metricChan)
	close(metricChan)

	metricProto := &dto.Metric{}
	if err := (<-metricChan).Write(metricProto); err != nil {
		log.Printf("Failed to read metric value: %v", err)
		return 0
	}

	if metricProto.Counter != nil {
		metricValue = metricProto.Counter.GetValue()
	} else if metricProto.Gauge != nil {
		metricValue = metricProto.Gauge.GetValue()
	}
	return metricValue
}
