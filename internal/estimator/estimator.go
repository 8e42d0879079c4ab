package estimator

import (
	"math"

	"asesor-telegram-bot/internal/market"
	"asesor-telegram-bot/internal/types"

	"github.com/pkg/errors"
)

// tradingDaysPerYear is the annualization factor for daily returns.
const tradingDaysPerYear = 252

// Volatility boundaries are strict greater-than on the raw annualized value.
const (
	highRiskVolatility   = 0.35
	mediumRiskVolatility = 0.20
)

// HistoryProvider supplies the daily closing series for a ticker.
type HistoryProvider interface {
	History(ticker string) ([]types.Close, error)
}

// Estimator derives risk/return figures from historical closes.
type Estimator struct {
	market HistoryProvider
}

func New(market HistoryProvider) *Estimator {
	return &Estimator{market: market}
}

// Estimate analyzes a ticker for an invested amount. Returns
// market.ErrNoData when the provider has no history for the symbol.
func (e *Estimator) Estimate(ticker string, amount float64) (*types.Estimation, error) {
	closes, err := e.market.History(ticker)
	if err != nil {
		return nil, err
	}
	if len(closes) < 2 {
		return nil, errors.Wrapf(market.ErrNoData, "not enough closes for %s", ticker)
	}

	returns := dailyReturns(closes)
	annual := mean(returns) * tradingDaysPerYear
	volatility := stdev(returns) * math.Sqrt(tradingDaysPerYear)
	price := closes[len(closes)-1].Price

	medium := amount * annual

	return &types.Estimation{
		Ticker:     ticker,
		Price:      round2(price),
		Risk:       RiskTier(volatility),
		Volatility: round2(volatility * 100),
		Short:      round2(medium * 0.5),
		Medium:     round2(medium),
		Long:       round2(medium * 1.5),
	}, nil
}

// RiskTier classifies a raw annualized volatility. Both boundaries are
// exclusive: exactly 0.35 is Medium, exactly 0.20 is Low.
func RiskTier(volatility float64) types.RiskTier {
	switch {
	case volatility > highRiskVolatility:
		return types.RiskHigh
	case volatility > mediumRiskVolatility:
		return types.RiskMedium
	default:
		return types.RiskLow
	}
}

// Comment gives the fixed advisory sentence for a risk tier.
func Comment(tier types.RiskTier) string {
	switch tier {
	case types.RiskHigh:
		return "Es una acción con potencial, pero hay que tolerar volatilidad."
	case types.RiskMedium:
		return "Buen balance entre riesgo y crecimiento."
	default:
		return "Perfil defensivo, ideal para estabilidad."
	}
}

// dailyReturns computes simple percent changes between consecutive closes,
// dropping the undefined first entry.
func dailyReturns(closes []types.Close) []float64 {
	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		prev := closes[i-1].Price
		if prev == 0 {
			continue
		}
		returns = append(returns, (closes[i].Price-prev)/prev)
	}
	return returns
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdev is the sample standard deviation (n-1 denominator).
func stdev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var sum float64
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
