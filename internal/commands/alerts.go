package commands

import (
	"fmt"

	"asesor-telegram-bot/internal/resolver"
	"asesor-telegram-bot/internal/types"
	"asesor-telegram-bot/lib/helpers"
	"asesor-telegram-bot/lib/translation"

	log "github.com/sirupsen/logrus"
)

// CommandCreateAlert handles the "avisa" intent: register a percent-move
// alert for a company, seeded with the current close so the first sweep
// measures from now.
func (h *Handler) CommandCreateAlert(chatID int64, text string) string {
	ticker, ok := resolver.Resolve(text)
	if !ok {
		return helpers.EscapeMarkdownV2(translation.Translate("No identifiqué la empresa."))
	}

	threshold, found := ExtractAmount(text)
	if !found || threshold <= 0 {
		return helpers.EscapeMarkdownV2(translation.Translate("No encontré el porcentaje. Ejemplo: Avisa Tesla 5"))
	}

	price, err := h.market.LatestClose(ticker)
	if err != nil {
		return helpers.EscapeMarkdownV2(translation.Translate("No hay datos históricos para esa empresa."))
	}

	err = h.store.InsertAlert(types.Alert{
		ChatID:    chatID,
		Ticker:    ticker,
		Threshold: threshold,
		LastPrice: price,
	})
	if err != nil {
		log.Errorf("failed to create alert for chat %d: %v", chatID, err)
		return helpers.EscapeMarkdownV2(translation.Translate("No pude guardar la alerta, intenta de nuevo."))
	}

	return fmt.Sprintf(
		helpers.EscapeMarkdownV2(translation.Translate("🔔 Te aviso cuando %s se mueva %s%% desde $%s.")),
		helpers.EscapeMarkdownV2(ticker),
		helpers.FormatPercent(threshold, true),
		helpers.FormatPriceUS(price, true),
	)
}
