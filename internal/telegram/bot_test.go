package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
)

type recordingHandler struct {
	calls []string
}

func (h *recordingHandler) CommandAnalyze(text string) string {
	h.calls = append(h.calls, "analyze")
	return "analyze-reply"
}

func (h *recordingHandler) CommandAddHolding(chatID int64, text string) string {
	h.calls = append(h.calls, "add")
	return "add-reply"
}

func (h *recordingHandler) CommandListPortfolio(chatID int64) string {
	h.calls = append(h.calls, "list")
	return "list-reply"
}

func (h *recordingHandler) CommandReport(chatID int64) (string, []byte, error) {
	h.calls = append(h.calls, "report")
	return "portafolio_42.pdf", []byte("%PDF"), nil
}

func (h *recordingHandler) CommandNews(text string) string {
	h.calls = append(h.calls, "news")
	return "news-reply"
}

func (h *recordingHandler) CommandChart(text string) ([]byte, string, error) {
	h.calls = append(h.calls, "chart")
	return nil, "chart-caption", nil
}

func (h *recordingHandler) CommandCreateAlert(chatID int64, text string) string {
	h.calls = append(h.calls, "alert")
	return "alert-reply"
}

type recordingRegistry struct {
	registered []int64
}

func (r *recordingRegistry) RegisterUser(chatID int64) error {
	r.registered = append(r.registered, chatID)
	return nil
}

func textUpdate(text string) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			Text: text,
			Chat: &tgbotapi.Chat{ID: 42},
		},
	}
}

func commandUpdate(text string) tgbotapi.Update {
	u := textUpdate(text)
	u.Message.Entities = []tgbotapi.MessageEntity{
		{Type: "bot_command", Offset: 0, Length: len(text)},
	}
	return u
}

func newTestBot() (*Bot, *recordingHandler, *recordingRegistry) {
	handler := &recordingHandler{}
	registry := &recordingRegistry{}
	return &Bot{handler: handler, registry: registry}, handler, registry
}

func TestHandleUpdateStartRegistersUser(t *testing.T) {
	bot, _, registry := newTestBot()

	reply := bot.HandleUpdate(commandUpdate("/start"))

	assert.Equal(t, []int64{42}, registry.registered)
	assert.Contains(t, reply, "asesor de inversión")
}

func TestHandleUpdateIntentOrder(t *testing.T) {
	cases := []struct {
		text   string
		intent string
		reply  string
	}{
		{"Agrega Tesla 3000", "add", "add-reply"},
		{"ver portafolio", "list", "list-reply"},
		{"Noticias Apple", "news", "news-reply"},
		{"Avisa Tesla 5", "alert", "alert-reply"},
		{"Analiza Tesla con 5000", "analyze", "analyze-reply"},
		{"hola", "analyze", "analyze-reply"},
	}

	for _, c := range cases {
		bot, handler, _ := newTestBot()

		reply := bot.HandleUpdate(textUpdate(c.text))

		assert.Equal(t, []string{c.intent}, handler.calls, "text %q", c.text)
		assert.Equal(t, c.reply, reply, "text %q", c.text)
	}
}

func TestHandleUpdateAgregaWinsOverPortafolio(t *testing.T) {
	bot, handler, _ := newTestBot()

	bot.HandleUpdate(textUpdate("agrega tesla 3000 al portafolio"))

	assert.Equal(t, []string{"add"}, handler.calls)
}

func TestHandleUpdateBlankText(t *testing.T) {
	bot, handler, _ := newTestBot()

	reply := bot.HandleUpdate(textUpdate("   "))

	assert.Empty(t, handler.calls)
	assert.Equal(t, "", reply)
}
