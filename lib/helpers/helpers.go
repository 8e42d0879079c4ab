package helpers

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"strings"
)

func EscapeMarkdownV2(text string) string {
	charactersToEscape := []string{".", "-", "_", "*", "[", "]", "(", ")", "~", "`", ">", "#", "+", "=", "|", "{", "}", "!"}

	for _, char := range charactersToEscape {
		text = strings.ReplaceAll(text, char, "\\"+char)
	}
	return text
}

func FormatPriceUS(price float64, escapeMarkdown bool) string {
	decimals := 2

	if price >= 1000 {
		decimals = 2
	} else if price < 0.01 {
		decimals = 6
	}

	thousandSeparator := ","

	p := message.NewPrinter(language.English)
	withCommaThousandSep := p.Sprintf("%.*f", decimals, price)
	formatted := strings.ReplaceAll(withCommaThousandSep, ",", thousandSeparator)

	if escapeMarkdown {
		return EscapeMarkdownV2(formatted)
	}
	return formatted
}

// FormatMoney renders an invested amount with a thousands separator and
// no decimals when the value is whole.
func FormatMoney(amount float64, escapeMarkdown bool) string {
	p := message.NewPrinter(language.English)

	var formatted string
	if amount == float64(int64(amount)) {
		formatted = p.Sprintf("%d", int64(amount))
	} else {
		formatted = p.Sprintf("%.2f", amount)
	}

	if escapeMarkdown {
		return EscapeMarkdownV2(formatted)
	}
	return formatted
}

func FormatPercent(value float64, escapeMarkdown bool) string {
	p := message.NewPrinter(language.English)
	formatted := p.Sprintf("%.2f", value)

	if escapeMarkdown {
		return EscapeMarkdownV2(formatted)
	}
	return formatted
}
