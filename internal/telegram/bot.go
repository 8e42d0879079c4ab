package telegram

import (
	"strings"

	"asesor-telegram-bot/lib/helpers"
	"asesor-telegram-bot/lib/translation"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// IntentHandler implements the conversational intents the bot dispatches to.
type IntentHandler interface {
	CommandAnalyze(text string) string
	CommandAddHolding(chatID int64, text string) string
	CommandListPortfolio(chatID int64) string
	CommandReport(chatID int64) (string, []byte, error)
	CommandNews(text string) string
	CommandChart(text string) ([]byte, string, error)
	CommandCreateAlert(chatID int64, text string) string
}

// UserRegistry records chats on /start.
type UserRegistry interface {
	RegisterUser(chatID int64) error
}

// NewBot creates new telegram bot
func NewBot(c BotConfig, handler IntentHandler, registry UserRegistry) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(c.Token)
	if err != nil {
		return nil, errors.Wrap(err, "could not create telegram bot")
	}

	bot.Debug = c.Debug

	return &Bot{
		Bot:      bot,
		Config:   c,
		handler:  handler,
		registry: registry,
	}, nil
}

// GetUpdatesChannel gets new updates
func (b *Bot) GetUpdatesChannel() (tgbotapi.UpdatesChannel, error) {
	updatesConfig := tgbotapi.NewUpdate(0)
	if b.Config.UpdatesTimeout > 0 {
		updatesConfig.Timeout = b.Config.UpdatesTimeout
	}
	return b.Bot.GetUpdatesChan(updatesConfig), nil
}

// SendMessage sends a telegram message
func (b *Bot) SendMessage(m Message) error {
	msg := tgbotapi.NewMessage(int64(m.ChatID), m.Text)
	msg.ReplyToMessageID = m.MessageID
	msg.DisableWebPagePreview = true
	msg.ParseMode = "MarkdownV2"
	_, err := b.Bot.Send(msg)
	return errors.Wrapf(err, "could not send message: %v", m)
}

// HandleUpdate processes one inbound message and returns the reply text.
// Intents that transmit a document or photo themselves return "".
func (b *Bot) HandleUpdate(u tgbotapi.Update) string {
	chatID := u.Message.Chat.ID

	if u.Message.IsCommand() {
		log.Debugf("received command: %s", u.Message.Command())

		switch u.Message.Command() {
		case "start":
			if err := b.registry.RegisterUser(chatID); err != nil {
				log.Errorf("failed to register user %d: %v", chatID, err)
			}
			return menuText()
		default:
			return menuText()
		}
	}

	text := strings.ToLower(u.Message.Text)
	if strings.TrimSpace(text) == "" {
		return ""
	}

	// Ordered substring matching, first intent wins.
	switch {
	case strings.Contains(text, "agrega"):
		return b.handler.CommandAddHolding(chatID, text)
	case strings.Contains(text, "portafolio"):
		return b.handler.CommandListPortfolio(chatID)
	case strings.Contains(text, "reporte"):
		b.sendReport(u, chatID)
		return ""
	case strings.Contains(text, "noticias"):
		return b.handler.CommandNews(text)
	case strings.Contains(text, "grafica") || strings.Contains(text, "gráfico"):
		b.sendChart(u, chatID, text)
		return ""
	case strings.Contains(text, "avisa"):
		return b.handler.CommandCreateAlert(chatID, text)
	default:
		return b.handler.CommandAnalyze(text)
	}
}

func (b *Bot) sendReport(u tgbotapi.Update, chatID int64) {
	filename, data, err := b.handler.CommandReport(chatID)
	if err != nil {
		log.Errorf("failed to generate report for chat %d: %v", chatID, err)
		b.replyError(u, chatID, translation.Translate("No pude generar el reporte, intenta de nuevo."))
		return
	}

	document := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  filename,
		Bytes: data,
	})
	document.ReplyToMessageID = u.Message.MessageID
	if _, err := b.Bot.Send(document); err != nil {
		log.Errorf("failed to send report to chat %d: %v", chatID, err)
	}
}

func (b *Bot) sendChart(u tgbotapi.Update, chatID int64, text string) {
	chartData, caption, err := b.handler.CommandChart(text)
	if err != nil {
		log.Errorf("failed to render chart for chat %d: %v", chatID, err)
		b.replyError(u, chatID, translation.Translate("No pude generar el gráfico, intenta de nuevo."))
		return
	}

	if chartData == nil {
		// Caption carries the resolution or no-data reply.
		if err := b.SendMessage(Message{
			ChatID:    int(chatID),
			MessageID: u.Message.MessageID,
			Text:      caption,
		}); err != nil {
			log.Errorf("failed to send chart reply: %v", err)
		}
		return
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{
		Name:  "chart.png",
		Bytes: chartData,
	})
	photo.Caption = caption
	photo.ParseMode = "MarkdownV2"
	photo.ReplyToMessageID = u.Message.MessageID
	if _, err := b.Bot.Send(photo); err != nil {
		log.Errorf("failed to send chart to chat %d: %v", chatID, err)
	}
}

func (b *Bot) replyError(u tgbotapi.Update, chatID int64, text string) {
	if err := b.SendMessage(Message{
		ChatID:    int(chatID),
		MessageID: u.Message.MessageID,
		Text:      helpers.EscapeMarkdownV2(text),
	}); err != nil {
		log.Errorf("failed to send error reply: %v", err)
	}
}

func menuText() string {
	return helpers.EscapeMarkdownV2(translation.Translate(
		"🤖 Soy tu asesor de inversión.\n\n" +
			"Ejemplos:\n" +
			"• Analiza Tesla con 5000\n" +
			"• Agrega Tesla 3000\n" +
			"• Ver portafolio\n" +
			"• Reporte PDF\n" +
			"• Noticias Apple\n" +
			"• Grafica Nvidia\n" +
			"• Avisa Tesla 5"))
}
