package database

import (
	"path/filepath"
	"testing"

	"asesor-telegram-bot/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "bot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestRegisterUserIdempotent(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.RegisterUser(42))
	require.NoError(t, store.RegisterUser(42))

	count, err := store.CountUsers()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestHoldingDuplicatesAccumulate(t *testing.T) {
	store := openTestStore(t)

	holding := types.Holding{ChatID: 42, Ticker: "TSLA", Amount: 3000}
	require.NoError(t, store.InsertHolding(holding))
	require.NoError(t, store.InsertHolding(holding))

	holdings, err := store.GetHoldingsByChatID(42)
	require.NoError(t, err)
	require.Len(t, holdings, 2)
	assert.Equal(t, holding, holdings[0])
	assert.Equal(t, holding, holdings[1])
}

func TestHoldingsEmptyForUnknownChat(t *testing.T) {
	store := openTestStore(t)

	holdings, err := store.GetHoldingsByChatID(99)
	require.NoError(t, err)
	assert.Empty(t, holdings)
}

func TestAlertRoundTrip(t *testing.T) {
	store := openTestStore(t)

	alert := types.Alert{ChatID: 42, Ticker: "TSLA", Threshold: 5, LastPrice: 100}
	require.NoError(t, store.InsertAlert(alert))

	alerts, err := store.GetAllAlerts()
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, alert, alerts[0])

	require.NoError(t, store.UpdateAlertPrice(42, "TSLA", 106))

	alerts, err = store.GetAllAlerts()
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, 106.0, alerts[0].LastPrice)
}

func TestAlertsByChatID(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.InsertAlert(types.Alert{ChatID: 1, Ticker: "TSLA", Threshold: 5, LastPrice: 100}))
	require.NoError(t, store.InsertAlert(types.Alert{ChatID: 2, Ticker: "AAPL", Threshold: 3, LastPrice: 200}))

	alerts, err := store.GetAlertsByChatID(1)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "TSLA", alerts[0].Ticker)
}

func TestMetricsRoundTrip(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.SaveMetric("messages_handled", "", "", 7))
	require.NoError(t, store.SaveMetric("messages_handled", "", "", 9))

	value, err := store.GetMetric("messages_handled")
	require.NoError(t, err)
	assert.Equal(t, 9.0, value)

	missing, err := store.GetMetric("does_not_exist")
	require.NoError(t, err)
	assert.Equal(t, 0.0, missing)
}

func TestMetricsWithLabels(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.SaveMetric("messages_per_chat", "chat_id", "42", 3))
	require.NoError(t, store.SaveMetric("messages_per_chat", "chat_id", "7", 1))

	labeled, err := store.GetMetricsWithLabels("messages_per_chat")
	require.NoError(t, err)
	assert.Equal(t, 3.0, labeled["chat_id"]["42"])
	assert.Equal(t, 1.0, labeled["chat_id"]["7"])
}
