package database

import (
	"fmt"
	"log"

	"asesor-telegram-bot/internal/types"
)

// InsertHolding appends a portfolio row. Duplicate (chat, ticker) rows
// accumulate and are reported independently; they are never merged.
func (s *Store) InsertHolding(h types.Holding) error {
	query := `INSERT INTO portfolio (chat_id, ticker, amount) VALUES (?, ?, ?);`

	if _, err := s.db.Exec(query, h.ChatID, h.Ticker, h.Amount); err != nil {
		return fmt.Errorf("failed to insert holding: %w", err)
	}

	log.Printf("Holding inserted: ChatID: %d, Ticker: %s, Amount: %.2f",
		h.ChatID, h.Ticker, h.Amount)
	return nil
}

// GetHoldingsByChatID fetches all portfolio rows for one chat, in
// insertion order.
func (s *Store) GetHoldingsByChatID(chatID int64) ([]types.Holding, error) {
	query := `SELECT chat_id, ticker, amount FROM portfolio WHERE chat_id = ?;`

	rows, err := s.db.Query(query, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio for chat ID %d: %w", chatID, err)
	}
	defer rows.Close()

	var holdings []types.Holding
	for rows.Next() {
		var holding types.Holding
		if err := rows.Scan(&holding.ChatID, &holding.Ticker, &holding.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		holdings = append(holdings, holding)
	}

	return holdings, rows.Err()
}
