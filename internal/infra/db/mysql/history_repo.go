package mysql

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

// Save inserts a history record. The id comes from AUTO_INCREMENT and
// created_at is stamped here, at persist time; both are written back onto
// the passed record. Records are never updated after insert.
func (r *HistoryRepository) Save(ctx context.Context, h *domain.History) error {
	const q = `
INSERT INTO resume_history (user_email, user_resume, ai_response, created_at)
VALUES (?,?,?,?);
`
	created := time.Now()
	res, err := r.db.ExecContext(ctx, q, h.UserEmail, h.UserResume, h.AIResponse, created)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = domain.HistoryID(id)
	h.CreatedAt = created
	return nil
}

// Get by ID
func (r *HistoryRepository) Get(ctx context.Context, id domain.HistoryID) (*domain.History, error) {
	const q = `
SELECT id, user_email, user_resume, ai_response, created_at
FROM resume_history
WHERE id=? LIMIT 1;
`
	h, err := scanHistory(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return h, err
}

// Latest returns all owners' records, newest first
func (r *HistoryRepository) Latest(ctx context.Context, limit int) ([]*domain.History, error) {
	const q = `
SELECT id, user_email, user_resume, ai_response, created_at
FROM resume_history
ORDER BY created_at DESC, id DESC LIMIT ?;
`
	rows, err := r.db.QueryContext(ctx, q, defaultLimit(limit))
	if err != nil {
		return nil, err
	}
	return collectHistories(rows)
}

// LatestByOwner returns one owner's records, newest first. An owner with
// no records yields an empty slice, not an error.
func (r *HistoryRepository) LatestByOwner(ctx context.Context, owner string, limit int) ([]*domain.History, error) {
	const q = `
SELECT id, user_email, user_resume, ai_response, created_at
FROM resume_history
WHERE user_email=? ORDER BY created_at DESC, id DESC LIMIT ?;
`
	rows, err := r.db.QueryContext(ctx, q, owner, defaultLimit(limit))
	if err != nil {
		return nil, err
	}
	return collectHistories(rows)
}

func (r *HistoryRepository) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM resume_history;`).Scan(&n)
	return n, err
}
