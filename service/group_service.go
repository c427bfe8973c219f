package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gosimple/slug"
	log "github.com/sirupsen/logrus"

	"wordleclub/events"
	"wordleclub/models"
)

// groupService implements the GroupService interface
type groupService struct {
	uowFactory UnitOfWorkFactory
	policy     *RevealPolicy
}

// NewGroupService creates a new group service
func NewGroupService(uowFactory UnitOfWorkFactory, policy *RevealPolicy) GroupService {
	return &groupService{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// CreateGroup creates a group with the creator as its first roster member
func (s *groupService) CreateGroup(ctx context.Context, name, creator string) (*models.Group, error) {
	group, err := models.NewGroup(name, slug.Make(name), creator)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	existing, err := uow.GroupRepository().GetBySlug(ctx, group.Slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing group: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("a group named %q already exists", name)
	}

	if err := uow.GroupRepository().Create(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	uow.EventBus().Publish(events.GroupCreatedEvent{
		GroupID: group.ID,
		Slug:    group.Slug,
		Name:    group.Name,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"group":   group.Slug,
		"creator": creator,
	}).Info("Group created")

	return group, nil
}

// GetGroup retrieves a group by slug
func (s *groupService) GetGroup(ctx context.Context, slug string) (*models.Group, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	group, err := s.requireGroup(ctx, uow, slug)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return group, nil
}

// Groups returns every group
func (s *groupService) Groups(ctx context.Context) ([]*models.Group, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	groups, err := uow.GroupRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return groups, nil
}

// JoinGroup adds a player to a group's roster
func (s *groupService) JoinGroup(ctx context.Context, slug, player string) (*models.Group, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	group, err := s.requireGroup(ctx, uow, slug)
	if err != nil {
		return nil, err
	}

	// Validates emptiness, duplicates and the roster cap
	if err := group.AddMember(player); err != nil {
		return nil, err
	}

	if err := uow.GroupRepository().AddMember(ctx, group.ID, player); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	uow.EventBus().Publish(events.MemberJoinedEvent{
		GroupID: group.ID,
		Slug:    group.Slug,
		Player:  player,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"group":  group.Slug,
		"player": player,
	}).Info("Player joined group")

	return group, nil
}

// RecordSubmission parses pasted share text and stores the result for the
// current day. Resubmission overwrites the player's earlier entry for the
// same day; it never appends a second one.
func (s *groupService) RecordSubmission(ctx context.Context, slug, player, shareText string, now time.Time) (*models.Submission, error) {
	parsed, err := ParseShareText(shareText)
	if err != nil {
		return nil, err
	}

	day := DayKey(now, s.policy.Location())
	sub, err := models.NewSubmission(player, day, parsed.PuzzleNumber, parsed.Score, parsed.Grid)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	group, err := s.requireGroup(ctx, uow, slug)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(player) {
		return nil, ErrNotMember
	}

	if err := uow.SubmissionRepository().Upsert(ctx, group.ID, sub); err != nil {
		return nil, fmt.Errorf("failed to store submission: %w", err)
	}

	uow.EventBus().Publish(events.SubmissionRecordedEvent{
		GroupID: group.ID,
		Slug:    group.Slug,
		Player:  player,
		Day:     day,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"group":        group.Slug,
		"player":       player,
		"day":          day,
		"puzzleNumber": sub.PuzzleNumber,
		"score":        sub.ScoreLabel(),
	}).Info("Submission recorded")

	return sub, nil
}

// GetBoard returns the reveal-gated view of one day. The reveal decision is
// recomputed on every call since the clock advances independently of writes.
func (s *groupService) GetBoard(ctx context.Context, slug, day string, now time.Time) (*models.Board, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	group, err := s.requireGroup(ctx, uow, slug)
	if err != nil {
		return nil, err
	}

	set, err := uow.SubmissionRepository().GetDay(ctx, group.ID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to load day results: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	board := &models.Board{
		Day:       day,
		Submitted: set.Players(),
	}
	board.Revealed = s.policy.ShouldReveal(group.Roster, board.Submitted, day, now)
	if board.Revealed {
		board.Entries = BuildScoreboard(set)
		board.Summary = set.Summary
	}
	return board, nil
}

// GetHistory returns a snapshot of the group's full history
func (s *groupService) GetHistory(ctx context.Context, slug string) (models.History, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	group, err := s.requireGroup(ctx, uow, slug)
	if err != nil {
		return nil, err
	}

	history, err := uow.SubmissionRepository().GetHistory(ctx, group.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return history, nil
}

// PlayerStats computes a player's lifetime statistics from a history snapshot
func (s *groupService) PlayerStats(ctx context.Context, slug, player string, now time.Time) (*models.PlayerStats, error) {
	history, err := s.GetHistory(ctx, slug)
	if err != nil {
		return nil, err
	}
	return ComputePlayerStats(history, player, now, s.policy.Location()), nil
}

// HeadToHead computes pairwise statistics for two players
func (s *groupService) HeadToHead(ctx context.Context, slug, playerA, playerB string) (*models.HeadToHeadStats, error) {
	history, err := s.GetHistory(ctx, slug)
	if err != nil {
		return nil, err
	}
	return ComputeHeadToHead(history, playerA, playerB)
}

// AttachSummary caches the narrative summary for a day
func (s *groupService) AttachSummary(ctx context.Context, slug, day, summary string) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	group, err := s.requireGroup(ctx, uow, slug)
	if err != nil {
		return err
	}

	if err := uow.SummaryRepository().Upsert(ctx, group.ID, day, summary); err != nil {
		return fmt.Errorf("failed to store summary: %w", err)
	}

	uow.EventBus().Publish(events.SummaryAttachedEvent{
		GroupID: group.ID,
		Slug:    group.Slug,
		Day:     day,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *groupService) requireGroup(ctx context.Context, uow UnitOfWork, slug string) (*models.Group, error) {
	group, err := uow.GroupRepository().GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	return group, nil
}
