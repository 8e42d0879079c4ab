package commands

import (
	"regexp"
	"strconv"
)

var integerRe = regexp.MustCompile(`\d+`)

// defaultAmount is assumed when an analysis request names no amount.
const defaultAmount = 1000

// ExtractAmount returns the first integer literal in the text.
func ExtractAmount(text string) (float64, bool) {
	match := integerRe.FindString(text)
	if match == "" {
		return 0, false
	}

	amount, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return amount, true
}
