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

// groupRow is a local struct for database mapping
type groupRow struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Slug      string    `db:"slug"`
	CreatedAt time.Time `db:"created_at"`
}

func (r *groupRow) toDomain(roster []string) *models.Group {
	return &models.Group{
		ID:        r.ID,
		Name:      r.Name,
		Slug:      r.Slug,
		Roster:    roster,
		CreatedAt: r.CreatedAt,
	}
}

// groupRepository implements service.GroupRepository
type groupRepository struct {
	q Queryable
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(db *database.DB) service.GroupRepository {
	return &groupRepository{q: db.Pool}
}

func newGroupRepositoryWithTx(tx pgx.Tx) service.GroupRepository {
	return &groupRepository{q: tx}
}

// Create persists a new group together with its initial roster
func (r *groupRepository) Create(ctx context.Context, group *models.Group) error {
	query := `
		INSERT INTO groups (id, name, slug)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	err := r.q.QueryRow(ctx, query, group.ID, group.Name, group.Slug).Scan(&group.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}

	for _, player := range group.Roster {
		if err := r.AddMember(ctx, group.ID, player); err != nil {
			return err
		}
	}

	return nil
}

// GetBySlug retrieves a group by its slug, roster included
func (r *groupRepository) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	query := `
		SELECT id, name, slug, created_at
		FROM groups
		WHERE slug = $1`

	var row groupRow
	err := r.q.QueryRow(ctx, query, slug).Scan(&row.ID, &row.Name, &row.Slug, &row.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	roster, err := r.getRoster(ctx, row.ID)
	if err != nil {
		return nil, err
	}

	return row.toDomain(roster), nil
}

// GetAll returns every group with its roster
func (r *groupRepository) GetAll(ctx context.Context) ([]*models.Group, error) {
	query := `
		SELECT id, name, slug, created_at
		FROM groups
		ORDER BY created_at`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}
	defer rows.Close()

	var groupRows []groupRow
	for rows.Next() {
		var row groupRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Slug, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groupRows = append(groupRows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating groups: %w", err)
	}

	groups := make([]*models.Group, 0, len(groupRows))
	for i := range groupRows {
		roster, err := r.getRoster(ctx, groupRows[i].ID)
		if err != nil {
			return nil, err
		}
		groups = append(groups, groupRows[i].toDomain(roster))
	}

	return groups, nil
}

// AddMember appends a player to a group's roster
func (r *groupRepository) AddMember(ctx context.Context, groupID uuid.UUID, player string) error {
	query := `
		INSERT INTO group_members (group_id, player)
		VALUES ($1, $2)`

	if _, err := r.q.Exec(ctx, query, groupID, player); err != nil {
		return fmt.Errorf("failed to add group member: %w", err)
	}
	return nil
}

// getRoster returns the roster in join order, capped at the maximum size
func (r *groupRepository) getRoster(ctx context.Context, groupID uuid.UUID) ([]string, error) {
	query := `
		SELECT player
		FROM group_members
		WHERE group_id = $1
		ORDER BY joined_at, id
		LIMIT $2`

	rows, err := r.q.Query(ctx, query, groupID, models.MaxRosterSize)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster: %w", err)
	}
	defer rows.Close()

	var roster []string
	for rows.Next() {
		var player string
		if err := rows.Scan(&player); err != nil {
			return nil, fmt.Errorf("failed to scan roster entry: %w", err)
		}
		roster = append(roster, player)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roster: %w", err)
	}

	return roster, nil
}
