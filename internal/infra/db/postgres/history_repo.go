package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	domain "github.com/seongmin2223/resumepro/internal/domain/resumes"
)

type HistoryRepository struct {
	db *sql.DB
}

func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Save inserts a history record; the id comes from the BIGSERIAL sequence
// and created_at is stamped at persist time. Both are written back onto
// the passed record.
func (r *HistoryRepository) Save(ctx context.Context, h *domain.History) error {
	const q = `
INSERT INTO resume_history (user_email, user_resume, ai_response, created_at)
VALUES ($1,$2,$3,$4)
RETURNING id;
`
	created := time.Now()
	var id int64
	if err := r.db.QueryRowContext(ctx, q, h.UserEmail, h.UserResume, h.AIResponse, created).Scan(&id); err != nil {
		return err
	}
	h.ID = domain.HistoryID(id)
	h.CreatedAt = created
	return nil
}

func (r *HistoryRepository) Get(ctx context.Context, id domain.HistoryID) (*domain.History, error) {
	const q = `
SELECT id, user_email, user_resume, ai_response, created_at
FROM resume_history
WHERE id=$1 LIMIT 1;
`
	var h domain.History
	err := r.db.QueryRowContext(ctx, q, id).Scan(&h.ID, &h.UserEmail, &h.UserResume, &h.AIResponse, &h.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *HistoryRepository) Latest(ctx context.Context, limit int) ([]*domain.History, error) {
	const q = `
SELECT id, user_email, user_resume, ai_response, created_at
FROM resume_history
ORDER BY created_at DESC, id DESC LIMIT $1;
`
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (r *HistoryRepository) LatestByOwner(ctx context.Context, owner string, limit int) ([]*domain.History, error) {
	const q = `
SELECT id, user_email, user_resume, ai_response, created_at
FROM resume_history
WHERE user_email=$1 ORDER BY created_at DESC, id DESC LIMIT $2;
`
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx, q, owner, limit)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (r *HistoryRepository) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM resume_history;`).Scan(&n)
	return n, err
}

func collect(rows *sql.Rows) ([]*domain.History, error) {
	defer rows.Close()

	var out []*domain.History
	for rows.Next() {
		var h domain.History
		if err := rows.Scan(&h.ID, &h.UserEmail, &h.UserResume, &h.AIResponse, &h.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &h)
	}
	return out, rows.Err()
}
