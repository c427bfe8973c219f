package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"wordleclub/database"
	"wordleclub/service"
)

// summaryRepository implements service.SummaryRepository
type summaryRepository struct {
	q Queryable
}

// NewSummaryRepository creates a new summary repository
func NewSummaryRepository(db *database.DB) service.SummaryRepository {
	return &summaryRepository{q: db.Pool}
}

func newSummaryRepositoryWithTx(tx pgx.Tx) service.SummaryRepository {
	return &summaryRepository{q: tx}
}

// Upsert attaches or overwrites the narrative for a day
func (r *summaryRepository) Upsert(ctx context.Context, groupID uuid.UUID, day, summary string) error {
	query := `
		INSERT INTO daily_summaries (group_id, day, summary)
		VALUES ($1, $2, $3)
		ON CONFLICT (group_id, day) DO UPDATE SET
			summary = EXCLUDED.summary,
			updated_at = NOW()`

	if _, err := r.q.Exec(ctx, query, groupID, day, summary); err != nil {
		return fmt.Errorf("failed to upsert daily summary: %w", err)
	}
	return nil
}

// Get returns the narrative for a day, or "" when none is cached
func (r *summaryRepository) Get(ctx context.Context, groupID uuid.UUID, day string) (string, error) {
	query := `
		SELECT summary
		FROM daily_summaries
		WHERE group_id = $1 AND day = $2`

	var summary string
	err := r.q.QueryRow(ctx, query, groupID, day).Scan(&summary)
	if err == pgx.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get daily summary: %w", err)
	}
	return summary, nil
}
