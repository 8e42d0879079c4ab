package database

import "fmt"

// RegisterUser records a chat as a known user. Safe to call on every
// /start; the insert is idempotent.
func (s *Store) RegisterUser(chatID int64) error {
	query := `INSERT OR IGNORE INTO users (chat_id) VALUES (?);`

	if _, err := s.db.Exec(query, chatID); err != nil {
		return fmt.Errorf("failed to register user %d: %w", chatID, err)
	}
	return nil
}

// CountUsers returns how many chats have registered.
func (s *Store) CountUsers() (int64, error) {
	var count int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM users;`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
