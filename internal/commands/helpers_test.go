package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractAmount(t *testing.T) {
	amount, ok := ExtractAmount("Analiza Tesla con 5000")
	assert.True(t, ok)
	assert.Equal(t, 5000.0, amount)
}

func TestExtractAmountFirstIntegerWins(t *testing.T) {
	amount, ok := ExtractAmount("agrega tesla 3000 o 4000")
	assert.True(t, ok)
	assert.Equal(t, 3000.0, amount)
}

func TestExtractAmountMissing(t *testing.T) {
	amount, ok := ExtractAmount("agrega tesla")
	assert.False(t, ok)
	assert.Equal(t, 0.0, amount)
}
