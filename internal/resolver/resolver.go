package resolver

import (
	"regexp"
	"strings"
)

// mapping is one company-name pattern and the ticker it resolves to.
type mapping struct {
	Name   string
	Ticker string
}

// tickerTable is scanned in order; the first pattern found as a substring
// of the normalized text wins. Order is part of the contract.
var tickerTable = []mapping{
	{"tesla", "TSLA"},
	{"apple", "AAPL"},
	{"amazon", "AMZN"},
	{"google", "GOOGL"},
	{"alphabet", "GOOGL"},
	{"meta", "META"},
	{"facebook", "META"},
	{"microsoft", "MSFT"},
	{"nvidia", "NVDA"},
	{"netflix", "NFLX"},
	{"coca cola", "KO"},
	{"berkshire hathaway", "BRK-B"},
	{"sp 500", "^GSPC"},
	{"nasdaq", "^IXIC"},
	{"dow jones", "^DJI"},
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9\s]`)

// Normalize lower-cases the text, maps "&" to "and" and strips everything
// outside letters, digits and whitespace.
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = strings.ReplaceAll(text, "&", "and")
	return nonAlnum.ReplaceAllString(text, "")
}

// Resolve maps a free-text company mention to its ticker symbol.
func Resolve(text string) (string, bool) {
	normalized := Normalize(text)

	for _, m := range tickerTable {
		if strings.Contains(normalized, m.Name) {
			return m.Ticker, true
		}
	}
	return "", false
}
