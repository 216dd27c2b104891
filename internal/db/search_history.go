package db

import (
	"time"
)

// SearchHistory represents a saved search query
type SearchHistory struct {
	ID          int64
	Query       string
	Kind        string
	ResultCount int
	CreatedAt   time.Time
}

// AddSearchHistory adds a search to history
func AddSearchHistory(query, kind string, resultCount int) error {
	if kind == "" {
		kind = "book"
	}
	_, err := database.Exec(`
		INSERT INTO search_history (query, kind, result_count)
		VALUES (?, ?, ?)`,
		query, kind, resultCount,
	)
	return err
}

// GetSearchHistory retrieves recent search history
func GetSearchHistory(limit int) ([]*SearchHistory, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := database.Query(`
		SELECT id, query, kind, result_count, created_at
		FROM search_history
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []*SearchHistory
	for rows.Next() {
		h := &SearchHistory{}
		if err := rows.Scan(&h.ID, &h.Query, &h.Kind, &h.ResultCount, &h.CreatedAt); err != nil {
			return nil, err
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

// GetUniqueSearchHistory retrieves unique recent searches (no duplicates)
func GetUniqueSearchHistory(limit int) ([]*SearchHistory, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := database.Query(`
		SELECT id, query, kind, result_count, created_at
		FROM search_history
		WHERE id IN (
			SELECT MAX(id) FROM search_history GROUP BY kind, query
		)
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []*SearchHistory
	for rows.Next() {
		h := &SearchHistory{}
		if err := rows.Scan(&h.ID, &h.Query, &h.Kind, &h.ResultCount, &h.CreatedAt); err != nil {
			return nil, err
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

// ClearSearchHistory removes all search history
func ClearSearchHistory() error {
	_, err := database.Exec(`DELETE FROM search_history`)
	return err
}

// DeleteSearchHistoryOlderThan removes history older than the given duration
func DeleteSearchHistoryOlderThan(d time.Duration) error {
	cutoff := time.Now().Add(-d)
	_, err := database.Exec(`DELETE FROM search_history WHERE created_at < ?`, cutoff)
	return err
}
