package types

import "time"

// Alert is a standing request to be notified when a ticker moves by at
// least Threshold percent since LastPrice.
type Alert struct {
	ChatID    int64   `json:"chat_id"`
	Ticker    string  `json:"ticker"`
	Threshold float64 `json:"threshold"`
	LastPrice float64 `json:"last_price"`
}

// Holding is one portfolio row. Duplicate (chat, ticker) rows are allowed
// and are reported independently.
type Holding struct {
	ChatID int64   `json:"chat_id"`
	Ticker string  `json:"ticker"`
	Amount float64 `json:"amount"`
}

// Close is one daily closing price.
type Close struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// RiskTier classifies annualized volatility into three levels.
type RiskTier string

const (
	RiskLow    RiskTier = "Bajo"
	RiskMedium RiskTier = "Medio"
	RiskHigh   RiskTier = "Alto"
)

// Estimation is the result of analyzing one ticker with an invested amount.
// Derived fresh on every request, never persisted.
type Estimation struct {
	Ticker     string   `json:"ticker"`
	Price      float64  `json:"price"`
	Risk       RiskTier `json:"risk"`
	Volatility float64  `json:"volatility"` // annualized, as a percentage
	Short      float64  `json:"short"`
	Medium     float64  `json:"medium"`
	Long       float64  `json:"long"`
}

// NewsItem is one headline returned by the news provider.
type NewsItem struct {
	Headline string `json:"headline"`
	Source   string `json:"source"`
	URL      string `json:"url"`
}
