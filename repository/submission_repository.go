package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"wordleclub/database"
	"wordleclub/models"
	"wordleclub/service"
)

// submissionRow is a local struct for database mapping
type submissionRow struct {
	ID           int64     `db:"id"`
	Player       string    `db:"player"`
	Day          time.Time `db:"day"`
	PuzzleNumber int       `db:"puzzle_number"`
	Score        int       `db:"score"`
	Grid         string    `db:"grid"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r *submissionRow) toDomain() *models.Submission {
	return &models.Submission{
		ID:           r.ID,
		Player:       r.Player,
		Day:          r.Day.Format(models.DayFormat),
		Score:        r.Score,
		Grid:         r.Grid,
		PuzzleNumber: r.PuzzleNumber,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// submissionRepository implements service.SubmissionRepository
type submissionRepository struct {
	q Queryable
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db *database.DB) service.SubmissionRepository {
	return &submissionRepository{q: db.Pool}
}

func newSubmissionRepositoryWithTx(tx pgx.Tx) service.SubmissionRepository {
	return &submissionRepository{q: tx}
}

// Upsert writes a submission, replacing any existing entry for the same
// (group, player, day). The unique constraint makes resubmission overwrite
// instead of append.
func (r *submissionRepository) Upsert(ctx context.Context, groupID uuid.UUID, sub *models.Submission) error {
	query := `
		INSERT INTO submissions (group_id, player, day, puzzle_number, score, grid)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (group_id, player, day) DO UPDATE SET
			puzzle_number = EXCLUDED.puzzle_number,
			score = EXCLUDED.score,
			grid = EXCLUDED.grid,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err := r.q.QueryRow(ctx, query,
		groupID,
		sub.Player,
		sub.Day,
		sub.PuzzleNumber,
		sub.Score,
		sub.Grid,
	).Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert submission: %w", err)
	}

	return nil
}

// GetDay returns the full result set for one day, cached summary included
func (r *submissionRepository) GetDay(ctx context.Context, groupID uuid.UUID, day string) (*models.DailyResultSet, error) {
	query := `
		SELECT id, player, day, puzzle_number, score, grid, created_at, updated_at
		FROM submissions
		WHERE group_id = $1 AND day = $2`

	rows, err := r.q.Query(ctx, query, groupID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to query day submissions: %w", err)
	}
	defer rows.Close()

	set := models.NewDailyResultSet()
	for rows.Next() {
		var row submissionRow
		err := rows.Scan(
			&row.ID,
			&row.Player,
			&row.Day,
			&row.PuzzleNumber,
			&row.Score,
			&row.Grid,
			&row.CreatedAt,
			&row.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		set.Put(row.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating submissions: %w", err)
	}

	summary, err := r.getSummary(ctx, groupID, day)
	if err != nil {
		return nil, err
	}
	set.Summary = summary

	return set, nil
}

// GetHistory returns a snapshot of every day's results for a group
func (r *submissionRepository) GetHistory(ctx context.Context, groupID uuid.UUID) (models.History, error) {
	query := `
		SELECT id, player, day, puzzle_number, score, grid, created_at, updated_at
		FROM submissions
		WHERE group_id = $1
		ORDER BY day, player`

	rows, err := r.q.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	history := make(models.History)
	for rows.Next() {
		var row submissionRow
		err := rows.Scan(
			&row.ID,
			&row.Player,
			&row.Day,
			&row.PuzzleNumber,
			&row.Score,
			&row.Grid,
			&row.CreatedAt,
			&row.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}

		sub := row.toDomain()
		set := history[sub.Day]
		if set == nil {
			set = models.NewDailyResultSet()
			history[sub.Day] = set
		}
		set.Put(sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history: %w", err)
	}

	if err := r.attachSummaries(ctx, groupID, history); err != nil {
		return nil, err
	}

	return history, nil
}

// GetSubmittedPlayers returns the players with a submission for a day
func (r *submissionRepository) GetSubmittedPlayers(ctx context.Context, groupID uuid.UUID, day string) ([]string, error) {
	query := `
		SELECT player
		FROM submissions
		WHERE group_id = $1 AND day = $2
		ORDER BY player`

	rows, err := r.q.Query(ctx, query, groupID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to query submitted players: %w", err)
	}
	defer rows.Close()

	var players []string
	for rows.Next() {
		var player string
		if err := rows.Scan(&player); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, player)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating submitted players: %w", err)
	}

	return players, nil
}

func (r *submissionRepository) getSummary(ctx context.Context, groupID uuid.UUID, day string) (string, error) {
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

func (r *submissionRepository) attachSummaries(ctx context.Context, groupID uuid.UUID, history models.History) error {
	query := `
		SELECT day, summary
		FROM daily_summaries
		WHERE group_id = $1`

	rows, err := r.q.Query(ctx, query, groupID)
	if err != nil {
		return fmt.Errorf("failed to query daily summaries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var day time.Time
		var summary string
		if err := rows.Scan(&day, &summary); err != nil {
			return fmt.Errorf("failed to scan daily summary: %w", err)
		}
		if set := history[day.Format(models.DayFormat)]; set != nil {
			set.Summary = summary
		}
	}
	return rows.Err()
}
