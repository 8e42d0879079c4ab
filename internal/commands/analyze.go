package commands

import (
	"fmt"

	"asesor-telegram-bot/internal/estimator"
	"asesor-telegram-bot/internal/market"
	"asesor-telegram-bot/internal/resolver"
	"asesor-telegram-bot/lib/helpers"
	"asesor-telegram-bot/lib/translation"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// CommandAnalyze handles the fallback intent: resolve a company from free
// text, take the first integer as the invested amount (1000 when absent)
// and reply with the full estimation.
func (h *Handler) CommandAnalyze(text string) string {
	ticker, ok := resolver.Resolve(text)
	if !ok {
		return helpers.EscapeMarkdownV2(translation.Translate("No identifiqué la empresa."))
	}

	amount, found := ExtractAmount(text)
	if !found {
		amount = defaultAmount
	}

	estimation, err := h.estimator.Estimate(ticker, amount)
	if err != nil {
		if errors.Is(err, market.ErrNoData) {
			return helpers.EscapeMarkdownV2(translation.Translate("No hay datos históricos para esa empresa."))
		}
		log.Errorf("analysis failed for %s: %v", ticker, err)
		return helpers.EscapeMarkdownV2(translation.Translate("No pude completar el análisis, intenta de nuevo."))
	}

	return fmt.Sprintf(
		"📈 *%s*\n"+
			"Precio: *$%s*\n"+
			"Riesgo: *%s*\n"+
			"Volatilidad anual: *%s%%*\n\n"+
			"Corto plazo: *$%s*\n"+
			"Medio plazo: *$%s*\n"+
			"Largo plazo: *$%s*\n\n"+
			"_%s_",
		helpers.EscapeMarkdownV2(estimation.Ticker),
		helpers.FormatPriceUS(estimation.Price, true),
		estimation.Risk,
		helpers.FormatPercent(estimation.Volatility, true),
		helpers.FormatMoney(estimation.Short, true),
		helpers.FormatMoney(estimation.Medium, true),
		helpers.FormatMoney(estimation.Long, true),
		helpers.EscapeMarkdownV2(estimator.Comment(estimation.Risk)),
	)
}
