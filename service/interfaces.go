package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"wordleclub/events"
	"wordleclub/models"
)

// GroupRepository defines the interface for group and roster data access
type GroupRepository interface {
	// Create persists a new group together with its initial roster
	Create(ctx context.Context, group *models.Group) error

	// GetBySlug retrieves a group by its slug, roster included.
	// Returns (nil, nil) when no group exists.
	GetBySlug(ctx context.Context, slug string) (*models.Group, error)

	// GetAll returns every group with its roster
	GetAll(ctx context.Context) ([]*models.Group, error)

	// AddMember appends a player to a group's roster
	AddMember(ctx context.Context, groupID uuid.UUID, player string) error
}

// SubmissionRepository defines the interface for daily submission data access
type SubmissionRepository interface {
	// Upsert writes a submission, replacing any existing entry for the same
	// (group, player, day)
	Upsert(ctx context.Context, groupID uuid.UUID, sub *models.Submission) error

	// GetDay returns the full result set for one day, cached summary included.
	// The set is empty (never nil) when nobody has submitted.
	GetDay(ctx context.Context, groupID uuid.UUID, day string) (*models.DailyResultSet, error)

	// GetHistory returns a snapshot of every day's results for a group
	GetHistory(ctx context.Context, groupID uuid.UUID) (models.History, error)

	// GetSubmittedPlayers returns the players with a submission for a day
	GetSubmittedPlayers(ctx context.Context, groupID uuid.UUID, day string) ([]string, error)
}

// SummaryRepository defines the interface for cached daily narratives
type SummaryRepository interface {
	// Upsert attaches or overwrites the narrative for a day
	Upsert(ctx context.Context, groupID uuid.UUID, day, summary string) error

	// Get returns the narrative for a day, or "" when none is cached
	Get(ctx context.Context, groupID uuid.UUID, day string) (string, error)
}

// EventPublisher publishes events from within a unit of work; they are
// delivered only after the transaction commits
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork bundles the repositories bound to a single transaction
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	GroupRepository() GroupRepository
	SubmissionRepository() SubmissionRepository
	SummaryRepository() SummaryRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory creates units of work
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// GroupService defines the interface for group operations
type GroupService interface {
	// CreateGroup creates a group with the creator as its first roster member
	CreateGroup(ctx context.Context, name, creator string) (*models.Group, error)

	// GetGroup retrieves a group by slug
	GetGroup(ctx context.Context, slug string) (*models.Group, error)

	// Groups returns every group
	Groups(ctx context.Context) ([]*models.Group, error)

	// JoinGroup adds a player to a group's roster
	JoinGroup(ctx context.Context, slug, player string) (*models.Group, error)

	// RecordSubmission parses pasted share text and stores the result for the
	// current day, overwriting any earlier submission by the same player
	RecordSubmission(ctx context.Context, slug, player, shareText string, now time.Time) (*models.Submission, error)

	// GetBoard returns the reveal-gated view of one day
	GetBoard(ctx context.Context, slug, day string, now time.Time) (*models.Board, error)

	// GetHistory returns a snapshot of the group's full history
	GetHistory(ctx context.Context, slug string) (models.History, error)

	// PlayerStats computes a player's lifetime statistics
	PlayerStats(ctx context.Context, slug, player string, now time.Time) (*models.PlayerStats, error)

	// HeadToHead computes pairwise statistics for two players
	HeadToHead(ctx context.Context, slug, playerA, playerB string) (*models.HeadToHeadStats, error)

	// AttachSummary caches the narrative summary for a day
	AttachSummary(ctx context.Context, slug, day, summary string) error
}

// RecapService generates the one-paragraph narrative for a revealed day
type RecapService interface {
	// GenerateDailyRecap returns the recap text, or ErrRecapUnavailable when
	// the external service fails. Failures are never retried automatically.
	GenerateDailyRecap(ctx context.Context, groupName, day string, entries []models.ScoreboardEntry) (string, error)
}

// ReactionService looks up a reaction image for a submission outcome
type ReactionService interface {
	// LookupReaction returns a gif URL, or "" when none is available.
	// Lookup failures degrade silently.
	LookupReaction(ctx context.Context, isWinner bool) string
}
