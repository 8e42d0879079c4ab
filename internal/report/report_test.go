package report

import (
	"path/filepath"
	"testing"

	"asesor-telegram-bot/internal/database"
	"asesor-telegram-bot/internal/market"
	"asesor-telegram-bot/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEstimator struct {
	estimations map[string]*types.Estimation
}

func (s *stubEstimator) Estimate(ticker string, amount float64) (*types.Estimation, error) {
	estimation, ok := s.estimations[ticker]
	if !ok {
		return nil, market.ErrNoData
	}
	return estimation, nil
}

func openTestStore(t *testing.T) *database.Store {
	t.Helper()

	store, err := database.Open(filepath.Join(t.TempDir(), "bot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestGenerateDeterministicFilename(t *testing.T) {
	store := openTestStore(t)
	generator := NewGenerator(store, &stubEstimator{})

	filename, data, err := generator.Generate(42)
	require.NoError(t, err)
	assert.Equal(t, "portafolio_42.pdf", filename)
	assert.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestGenerateOmitsFailedEstimations(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.InsertHolding(types.Holding{ChatID: 42, Ticker: "TSLA", Amount: 3000}))
	require.NoError(t, store.InsertHolding(types.Holding{ChatID: 42, Ticker: "ZZZZ", Amount: 1000}))

	estimator := &stubEstimator{estimations: map[string]*types.Estimation{
		"TSLA": {Ticker: "TSLA", Price: 293.4, Risk: types.RiskHigh},
	}}
	generator := NewGenerator(store, estimator)

	// ZZZZ has no data; the report renders with only the TSLA line and
	// produces a valid document either way.
	_, withBoth, err := generator.Generate(42)
	require.NoError(t, err)
	assert.NotEmpty(t, withBoth)

	emptyStore := openTestStore(t)
	emptyGenerator := NewGenerator(emptyStore, estimator)
	_, withNone, err := emptyGenerator.Generate(42)
	require.NoError(t, err)

	// The skipped holding contributes nothing beyond what an absent row would.
	assert.Greater(t, len(withBoth), len(withNone))
}
