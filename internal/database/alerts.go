package database

import (
	"fmt"
	"log"

	"asesor-telegram-bot/internal/types"
)

// InsertAlert saves an alert to the database. Duplicate (chat, ticker)
// alerts are allowed; there is no uniqueness constraint.
func (s *Store) InsertAlert(a types.Alert) error {
	query := `
	INSERT INTO alerts (chat_id, ticker, threshold, last_price)
	VALUES (?, ?, ?, ?);`

	_, err := s.db.Exec(query, a.ChatID, a.Ticker, a.Threshold, a.LastPrice)
	if err != nil {
		return fmt.Errorf("failed to insert alert: %w", err)
	}

	log.Printf("Alert inserted: ChatID: %d, Ticker: %s, Threshold: %.2f, LastPrice: %.2f",
		a.ChatID, a.Ticker, a.Threshold, a.LastPrice)
	return nil
}

// GetAllAlerts fetches every alert row for the scheduler sweep.
func (s *Store) GetAllAlerts() ([]types.Alert, error) {
	query := `SELECT chat_id, ticker, threshold, last_price FROM alerts;`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	var alerts []types.Alert
	for rows.Next() {
		var alert types.Alert
		if err := rows.Scan(&alert.ChatID, &alert.Ticker, &alert.Threshold, &alert.LastPrice); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		alerts = append(alerts, alert)
	}

	return alerts, rows.Err()
}

// UpdateAlertPrice resets the last observed price after a notification.
func (s *Store) UpdateAlertPrice(chatID int64, ticker string, price float64) error {
	query := `UPDATE alerts SET last_price = ? WHERE chat_id = ? AND ticker = ?;`

	if _, err := s.db.Exec(query, price, chatID, ticker); err != nil {
		return fmt.Errorf("failed to update alert price: %w", err)
	}
	return nil
}

// GetAlertsByChatID fetches all alerts belonging to one chat.
func (s *Store) GetAlertsByChatID(chatID int64) ([]types.Alert, error) {
	query := `SELECT chat_id, ticker, threshold, last_price FROM alerts WHERE chat_id = ?;`

	rows, err := s.db.Query(query, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts for chat ID %d: %w", chatID, err)
	}
	defer rows.Close()

	var alerts []types.Alert
	for rows.Next() {
		var alert types.Alert
		if err := rows.Scan(&alert.ChatID, &alert.Ticker, &alert.Threshold, &alert.LastPrice); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		alerts = append(alerts, alert)
	}

	return alerts, rows.Err()
}
