package commands

import (
	"bytes"
	"fmt"
	"time"

	"asesor-telegram-bot/internal/resolver"
	"asesor-telegram-bot/lib/helpers"
	"asesor-telegram-bot/lib/translation"

	"github.com/pkg/errors"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// CommandChart renders the five-year closing-price series for a company
// mention as a PNG. Returns nil chart data with a caption when the text
// cannot be answered with a chart.
func (h *Handler) CommandChart(text string) ([]byte, string, error) {
	ticker, ok := resolver.Resolve(text)
	if !ok {
		return nil, helpers.EscapeMarkdownV2(translation.Translate("No identifiqué la empresa.")), nil
	}

	closes, err := h.market.History(ticker)
	if err != nil {
		return nil, helpers.EscapeMarkdownV2(translation.Translate("No hay datos históricos para esa empresa.")), nil
	}

	xValues := make([]time.Time, len(closes))
	yValues := make([]float64, len(closes))
	for i, c := range closes {
		xValues[i] = c.Date
		yValues[i] = c.Price
	}

	graph := chart.Chart{
		Width:  1280,
		Height: 720,
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: ticker,
				Style: chart.Style{
					StrokeColor: drawing.Color{R: 0, G: 122, B: 255, A: 255},
					FillColor:   drawing.Color{R: 0, G: 122, B: 255, A: 25},
				},
				XValues: xValues,
				YValues: yValues,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, "", errors.Wrapf(err, "could not render chart for %s", ticker)
	}

	caption := fmt.Sprintf(
		helpers.EscapeMarkdownV2(translation.Translate("Cierres diarios de %s, últimos 5 años.")),
		helpers.EscapeMarkdownV2(ticker),
	)
	return buf.Bytes(), caption, nil
}
