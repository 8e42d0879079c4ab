package commands

import (
	"fmt"
	"strings"

	"asesor-telegram-bot/internal/resolver"
	"asesor-telegram-bot/lib/helpers"
	"asesor-telegram-bot/lib/translation"

	log "github.com/sirupsen/logrus"
)

// CommandNews handles the "noticias" intent: up to two recent headlines
// for the mentioned company.
func (h *Handler) CommandNews(text string) string {
	ticker, ok := resolver.Resolve(text)
	if !ok {
		return helpers.EscapeMarkdownV2(translation.Translate("No identifiqué la empresa."))
	}

	items, err := h.news.Recent(ticker)
	if err != nil {
		log.Errorf("failed to fetch news for %s: %v", ticker, err)
		return helpers.EscapeMarkdownV2(translation.Translate("No pude consultar las noticias, intenta de nuevo."))
	}

	if len(items) == 0 {
		return fmt.Sprintf(
			helpers.EscapeMarkdownV2(translation.Translate("Sin noticias recientes de %s.")),
			helpers.EscapeMarkdownV2(ticker),
		)
	}

	var list strings.Builder
	list.WriteString("📰 *")
	list.WriteString(helpers.EscapeMarkdownV2(ticker))
	list.WriteString("*\n\n")
	for _, item := range items {
		list.WriteString(fmt.Sprintf("▫️ %s\n",
			helpers.EscapeMarkdownV2(item.Headline)))
	}

	return list.String()
}
