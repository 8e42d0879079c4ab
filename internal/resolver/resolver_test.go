package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveKnownCompanies(t *testing.T) {
	cases := []struct {
		text   string
		ticker string
	}{
		{"Analiza Tesla con 5000", "TSLA"},
		{"que opinas de apple?", "AAPL"},
		{"AMAZON", "AMZN"},
		{"dame datos de google", "GOOGL"},
		{"alphabet a largo plazo", "GOOGL"},
		{"meta con 2000", "META"},
		{"facebook", "META"},
		{"Microsoft!!!", "MSFT"},
		{"nvidia", "NVDA"},
		{"netflix para mi retiro", "NFLX"},
		{"quiero Coca Cola", "KO"},
		{"Berkshire Hathaway", "BRK-B"},
		{"el sp 500", "^GSPC"},
		{"nasdaq", "^IXIC"},
		{"dow jones hoy", "^DJI"},
	}

	for _, c := range cases {
		ticker, ok := Resolve(c.text)
		assert.True(t, ok, "expected a match for %q", c.text)
		assert.Equal(t, c.ticker, ticker, "text %q", c.text)
	}
}

func TestResolveUnknownCompany(t *testing.T) {
	for _, text := range []string{"", "analiza intel con 5000", "hola", "12345"} {
		ticker, ok := Resolve(text)
		assert.False(t, ok, "text %q", text)
		assert.Equal(t, "", ticker)
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	first, ok1 := Resolve("Analiza Tesla con 5000")
	second, ok2 := Resolve("Analiza Tesla con 5000")

	assert.Equal(t, ok1, ok2)
	assert.Equal(t, first, second)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "sandp 500", Normalize("S&P 500!"))
	assert.Equal(t, "cocacola", Normalize("Coca-Cola"))
}
