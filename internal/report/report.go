package report

import (
	"bytes"
	"fmt"

	"asesor-telegram-bot/internal/database"
	"asesor-telegram-bot/internal/types"

	"github.com/dustin/go-humanize"
	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Estimator analyzes one holding for the report.
type Estimator interface {
	Estimate(ticker string, amount float64) (*types.Estimation, error)
}

// Generator renders a user's portfolio into a one-page PDF.
type Generator struct {
	store     *database.Store
	estimator Estimator
}

func NewGenerator(store *database.Store, estimator Estimator) *Generator {
	return &Generator{store: store, estimator: estimator}
}

// Generate builds the portfolio report for one chat. Holdings whose
// estimation fails are omitted from the document. The filename is
// deterministic per chat so re-generating replaces the previous report.
func (g *Generator) Generate(chatID int64) (string, []byte, error) {
	holdings, err := g.store.GetHoldingsByChatID(chatID)
	if err != nil {
		return "", nil, errors.Wrap(err, "could not read portfolio")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 12, "Reporte de Portafolio", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 11)
	for _, holding := range holdings {
		estimation, err := g.estimator.Estimate(holding.Ticker, holding.Amount)
		if err != nil {
			log.Debugf("skipping %s in report for chat %d: %v", holding.Ticker, chatID, err)
			continue
		}

		line := fmt.Sprintf("%s - Riesgo: %s - Precio: $%s - Invertido: $%s",
			estimation.Ticker,
			estimation.Risk,
			humanize.Commaf(estimation.Price),
			humanize.Commaf(holding.Amount),
		)
		pdf.CellFormat(0, 8, line, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return "", nil, errors.Wrap(err, "could not render portfolio PDF")
	}

	filename := fmt.Sprintf("portafolio_%d.pdf", chatID)
	return filename, buf.Bytes(), nil
}
