package estimator

import (
	"testing"
	"time"

	"asesor-telegram-bot/internal/market"
	"asesor-telegram-bot/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubHistory struct {
	closes map[string][]types.Close
}

func (s *stubHistory) History(ticker string) ([]types.Close, error) {
	closes, ok := s.closes[ticker]
	if !ok {
		return nil, market.ErrNoData
	}
	return closes, nil
}

func closesFromPrices(prices ...float64) []types.Close {
	start := time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC)
	closes := make([]types.Close, len(prices))
	for i, p := range prices {
		closes[i] = types.Close{Date: start.AddDate(0, 0, i), Price: p}
	}
	return closes
}

func TestEstimateZeroVariance(t *testing.T) {
	est := New(&stubHistory{closes: map[string][]types.Close{
		"TSLA": closesFromPrices(100, 100, 100, 100),
	}})

	result, err := est.Estimate("TSLA", 1000)
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.Volatility)
	assert.Equal(t, types.RiskLow, result.Risk)
	assert.Equal(t, 100.0, result.Price)
	assert.Equal(t, 0.0, result.Medium)
}

func TestEstimateProjectionLinearity(t *testing.T) {
	// One return of +10%: annual = 0.1 * 252 = 25.2.
	est := New(&stubHistory{closes: map[string][]types.Close{
		"TSLA": closesFromPrices(100, 110),
	}})

	result, err := est.Estimate("TSLA", 1000)
	require.NoError(t, err)

	assert.Equal(t, 25200.0, result.Medium)
	assert.Equal(t, result.Medium*0.5, result.Short)
	assert.Equal(t, result.Medium*1.5, result.Long)
	assert.Equal(t, 110.0, result.Price)
}

func TestEstimateNoData(t *testing.T) {
	est := New(&stubHistory{closes: map[string][]types.Close{}})

	result, err := est.Estimate("ZZZZ", 1000)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, market.ErrNoData)
}

func TestEstimateSingleCloseIsNoData(t *testing.T) {
	est := New(&stubHistory{closes: map[string][]types.Close{
		"TSLA": closesFromPrices(100),
	}})

	_, err := est.Estimate("TSLA", 1000)
	assert.ErrorIs(t, err, market.ErrNoData)
}

func TestRiskTierBoundaries(t *testing.T) {
	// Strict greater-than at both boundaries.
	assert.Equal(t, types.RiskLow, RiskTier(0.0))
	assert.Equal(t, types.RiskLow, RiskTier(0.20))
	assert.Equal(t, types.RiskMedium, RiskTier(0.21))
	assert.Equal(t, types.RiskMedium, RiskTier(0.35))
	assert.Equal(t, types.RiskHigh, RiskTier(0.36))
}

func TestComment(t *testing.T) {
	assert.Equal(t, "Es una acción con potencial, pero hay que tolerar volatilidad.", Comment(types.RiskHigh))
	assert.Equal(t, "Buen balance entre riesgo y crecimiento.", Comment(types.RiskMedium))
	assert.Equal(t, "Perfil defensivo, ideal para estabilidad.", Comment(types.RiskLow))
}

func TestStdevIsSample(t *testing.T) {
	// Sample stdev of {1, 3} is sqrt(2), not 1.
	assert.InDelta(t, 1.4142, stdev([]float64{1, 3}), 0.0001)
}
