package mysql

import (
	"database/sql"

	domain "github.com/seongmin2223/resumepro/internal/domain/resumes"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHistory(row rowScanner) (*domain.History, error) {
	var h domain.History
	if err := row.Scan(&h.ID, &h.UserEmail, &h.UserResume, &h.AIResponse, &h.CreatedAt); err != nil {
		return nil, err
	}
	return &h, nil
}

func collectHistories(rows *sql.Rows) ([]*domain.History, error) {
	defer rows.Close()

	var out []*domain.History
	for rows.Next() {
		h, err := scanHistory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// defaultLimit caps unbounded listings
func defaultLimit(limit int) int {
	if limit <= 0 {
		return 100
	}
	return limit
}
