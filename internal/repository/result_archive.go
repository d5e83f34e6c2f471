package repository

import (
	"context"
	"fmt"

	"skillsage/internal/domain"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const resultSchema = `
CREATE TABLE IF NOT EXISTS assessment_results (
	id              TEXT PRIMARY KEY,
	user_id         TEXT NOT NULL,
	skill           TEXT NOT NULL,
	final_score     REAL NOT NULL,
	questions_asked INTEGER NOT NULL,
	correct_answers INTEGER NOT NULL,
	final_level     REAL NOT NULL,
	finished_at     TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_assessment_results_user ON assessment_results(user_id);
`

// SQLXResultArchive implements domain.ResultArchive over sqlite via sqlx.
type SQLXResultArchive struct {
	db *sqlx.DB
}

// NewSQLXResultArchive opens (or creates) the sqlite archive at path and
// applies the schema.
func NewSQLXResultArchive(path string) (*SQLXResultArchive, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open result archive at %s: %w", path, err)
	}
	if _, err := db.Exec(resultSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply result archive schema: %w", err)
	}
	return &SQLXResultArchive{db: db}, nil
}

// NewSQLXResultArchiveWithDB wraps an existing connection; used by tests.
func NewSQLXResultArchiveWithDB(db *sqlx.DB) *SQLXResultArchive {
	return &SQLXResultArchive{db: db}
}

// SaveResult implements domain.ResultArchive.
func (r *SQLXResultArchive) SaveResult(ctx context.Context, result *domain.AssessmentResult) error {
	query := `INSERT INTO assessment_results
		(id, user_id, skill, final_score, questions_asked, correct_answers, final_level, finished_at)
		VALUES (:id, :user_id, :skill, :final_score, :questions_asked, :correct_answers, :final_level, :finished_at)`

	if _, err := r.db.NamedExecContext(ctx, query, result); err != nil {
		return fmt.Errorf("failed to save assessment result: %w", err)
	}
	return nil
}

// ResultsByUser implements domain.ResultArchive, newest first.
func (r *SQLXResultArchive) ResultsByUser(ctx context.Context, userID string) ([]*domain.AssessmentResult, error) {
	query := `SELECT id, user_id, skill, final_score, questions_asked, correct_answers, final_level, finished_at
		FROM assessment_results WHERE user_id = ? ORDER BY finished_at DESC`

	results := []*domain.AssessmentResult{}
	if err := r.db.SelectContext(ctx, &results, query, userID); err != nil {
		return nil, fmt.Errorf("failed to load assessment results: %w", err)
	}
	return results, nil
}

// Close releases the underlying database handle.
func (r *SQLXResultArchive) Close() error {
	return r.db.Close()
}

var _ domain.ResultArchive = (*SQLXResultArchive)(nil)
