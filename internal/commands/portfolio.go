package commands

import (
	"fmt"
	"strings"

	"asesor-telegram-bot/internal/resolver"
	"asesor-telegram-bot/internal/types"
	"asesor-telegram-bot/lib/helpers"
	"asesor-telegram-bot/lib/translation"

	log "github.com/sirupsen/logrus"
)

// CommandAddHolding handles the "agrega" intent. A mention that resolves
// to no ticker is rejected rather than stored, and a missing amount is an
// explicit reply, never a crash.
func (h *Handler) CommandAddHolding(chatID int64, text string) string {
	ticker, ok := resolver.Resolve(text)
	if !ok {
		return helpers.EscapeMarkdownV2(translation.Translate("No identifiqué la empresa."))
	}

	amount, found := ExtractAmount(text)
	if !found {
		return helpers.EscapeMarkdownV2(translation.Translate("No encontré el monto. Ejemplo: Agrega Tesla 3000"))
	}

	err := h.store.InsertHolding(types.Holding{
		ChatID: chatID,
		Ticker: ticker,
		Amount: amount,
	})
	if err != nil {
		log.Errorf("failed to add holding for chat %d: %v", chatID, err)
		return helpers.EscapeMarkdownV2(translation.Translate("No pude guardar el registro, intenta de nuevo."))
	}

	return fmt.Sprintf(
		helpers.EscapeMarkdownV2(translation.Translate("%s agregado al portafolio.")),
		helpers.EscapeMarkdownV2(ticker),
	)
}

// CommandListPortfolio handles the "portafolio" intent: one line per
// holding, duplicates listed separately.
func (h *Handler) CommandListPortfolio(chatID int64) string {
	holdings, err := h.store.GetHoldingsByChatID(chatID)
	if err != nil {
		log.Errorf("failed to list portfolio for chat %d: %v", chatID, err)
		return helpers.EscapeMarkdownV2(translation.Translate("No pude leer tu portafolio, intenta de nuevo."))
	}

	if len(holdings) == 0 {
		return helpers.EscapeMarkdownV2(translation.Translate("Tu portafolio está vacío."))
	}

	var list strings.Builder
	list.WriteString("📊 *")
	list.WriteString(helpers.EscapeMarkdownV2(translation.Translate("Tu portafolio:")))
	list.WriteString("*\n\n")
	for _, holding := range holdings {
		list.WriteString(fmt.Sprintf("%s: $%s\n",
			helpers.EscapeMarkdownV2(holding.Ticker),
			helpers.FormatMoney(holding.Amount, true),
		))
	}

	return list.String()
}

// CommandReport renders the portfolio PDF for a chat. The caller is
// responsible for transmitting the document.
func (h *Handler) CommandReport(chatID int64) (string, []byte, error) {
	return h.report.Generate(chatID)
}
