package commands

import (
	"asesor-telegram-bot/internal/database"
	"asesor-telegram-bot/internal/types"
)

// MarketProvider is the slice of the market gateway the intents use.
type MarketProvider interface {
	History(ticker string) ([]types.Close, error)
	LatestClose(ticker string) (float64, error)
}

// EstimatorProvider analyzes a ticker for an invested amount.
type EstimatorProvider interface {
	Estimate(ticker string, amount float64) (*types.Estimation, error)
}

// NewsProvider returns recent headlines for a ticker.
type NewsProvider interface {
	Recent(ticker string) ([]types.NewsItem, error)
}

// ReportProvider renders the portfolio document for a chat.
type ReportProvider interface {
	Generate(chatID int64) (string, []byte, error)
}

// Handler implements the conversational intents over the shared store and
// the external gateways.
type Handler struct {
	store     *database.Store
	market    MarketProvider
	estimator EstimatorProvider
	news      NewsProvider
	report    ReportProvider
}

func NewHandler(store *database.Store, market MarketProvider, estimator EstimatorProvider, news NewsProvider, report ReportProvider) *Handler {
	return &Handler{
		store:     store,
		market:    market,
		estimator: estimator,
		news:      news,
		report:    report,
	}
}
