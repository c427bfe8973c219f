package handlers

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"wordleclub/models"
)

// MockGroupService is a mock implementation of service.GroupService
type MockGroupService struct {
	mock.Mock
}

func (m *MockGroupService) CreateGroup(ctx context.Context, name, creator string) (*models.Group, error) {
	args := m.Called(ctx, name, creator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockGroupService) GetGroup(ctx context.Context, slug string) (*models.Group, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockGroupService) Groups(ctx context.Context) ([]*models.Group, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Group), args.Error(1)
}

func (m *MockGroupService) JoinGroup(ctx context.Context, slug, player string) (*models.Group, error) {
	args := m.Called(ctx, slug, player)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockGroupService) RecordSubmission(ctx context.Context, slug, player, shareText string, now time.Time) (*models.Submission, error) {
	args := m.Called(ctx, slug, player, shareText, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Submission), args.Error(1)
}

func (m *MockGroupService) GetBoard(ctx context.Context, slug, day string, now time.Time) (*models.Board, error) {
	args := m.Called(ctx, slug, day, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Board), args.Error(1)
}

func (m *MockGroupService) GetHistory(ctx context.Context, slug string) (models.History, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.History), args.Error(1)
}

func (m *MockGroupService) PlayerStats(ctx context.Context, slug, player string, now time.Time) (*models.PlayerStats, error) {
	args := m.Called(ctx, slug, player, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlayerStats), args.Error(1)
}

func (m *MockGroupService) HeadToHead(ctx context.Context, slug, playerA, playerB string) (*models.HeadToHeadStats, error) {
	args := m.Called(ctx, slug, playerA, playerB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.HeadToHeadStats), args.Error(1)
}

func (m *MockGroupService) AttachSummary(ctx context.Context, slug, day, summary string) error {
	args := m.Called(ctx, slug, day, summary)
	return args.Error(0)
}

// MockReactionService is a mock implementation of service.ReactionService
type MockReactionService struct {
	mock.Mock
}

func (m *MockReactionService) LookupReaction(ctx context.Context, isWinner bool) string {
	args := m.Called(ctx, isWinner)
	return args.String(0)
}
