package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wordleclub/events"
	"wordleclub/models"
)

const shareTextFixture = "Wordle 1,234 4/6\n\n🟨⬛⬛⬛⬛\n🟩🟨⬛⬛⬛\n🟩🟩🟩⬛⬛\n🟩🟩🟩🟩🟩"

func testGroup(t *testing.T, members ...string) *models.Group {
	t.Helper()
	group, err := models.NewGroup("Morning Crew", "morning-crew", members[0])
	require.NoError(t, err)
	for _, member := range members[1:] {
		require.NoError(t, group.AddMember(member))
	}
	return group
}

func newGroupServiceMocks(t *testing.T) (*MockUnitOfWork, *MockUnitOfWorkFactory, *MockGroupRepository, *MockSubmissionRepository, *MockSummaryRepository, *MockEventPublisher) {
	t.Helper()
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockGroupRepo := new(MockGroupRepository)
	mockSubmissionRepo := new(MockSubmissionRepository)
	mockSummaryRepo := new(MockSummaryRepository)
	mockBus := new(MockEventPublisher)

	mockUoW.SetRepositories(mockGroupRepo, mockSubmissionRepo, mockSummaryRepo, mockBus)
	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", mock.Anything).Return(nil)
	mockUoW.On("Rollback").Return(nil).Maybe()

	return mockUoW, mockFactory, mockGroupRepo, mockSubmissionRepo, mockSummaryRepo, mockBus
}

func newTestGroupService(t *testing.T, factory UnitOfWorkFactory) GroupService {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return NewGroupService(factory, NewRevealPolicy(loc, 13))
}

func TestGroupService_CreateGroup(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, mockGroupRepo, _, _, mockBus := newGroupServiceMocks(t)

	mockGroupRepo.On("GetBySlug", ctx, "morning-crew").Return(nil, nil)
	mockGroupRepo.On("Create", ctx, mock.MatchedBy(func(g *models.Group) bool {
		return g.Name == "Morning Crew" && g.Slug == "morning-crew" && len(g.Roster) == 1 && g.Roster[0] == "alice"
	})).Return(nil)
	mockBus.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		created, ok := e.(events.GroupCreatedEvent)
		return ok && created.Slug == "morning-crew"
	})).Return()
	mockUoW.On("Commit").Return(nil)

	service := newTestGroupService(t, mockFactory)
	group, err := service.CreateGroup(ctx, "Morning Crew", "alice")

	require.NoError(t, err)
	assert.Equal(t, "morning-crew", group.Slug)
	assert.Equal(t, []string{"alice"}, group.Roster)

	mockGroupRepo.AssertExpectations(t)
	mockBus.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
}

func TestGroupService_CreateGroup_DuplicateName(t *testing.T) {
	ctx := context.Background()
	_, mockFactory, mockGroupRepo, _, _, _ := newGroupServiceMocks(t)

	existing := testGroup(t, "bob")
	mockGroupRepo.On("GetBySlug", ctx, "morning-crew").Return(existing, nil)

	service := newTestGroupService(t, mockFactory)
	_, err := service.CreateGroup(ctx, "Morning Crew", "alice")

	assert.Error(t, err)
	mockGroupRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGroupService_JoinGroup(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, mockGroupRepo, _, _, mockBus := newGroupServiceMocks(t)

	group := testGroup(t, "alice")
	mockGroupRepo.On("GetBySlug", ctx, "morning-crew").Return(group, nil)
	mockGroupRepo.On("AddMember", ctx, group.ID, "bob").Return(nil)
	mockBus.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		joined, ok := e.(events.MemberJoinedEvent)
		return ok && joined.Player == "bob"
	})).Return()
	mockUoW.On("Commit").Return(nil)

	service := newTestGroupService(t, mockFactory)
	updated, err := service.JoinGroup(ctx, "morning-crew", "bob")

	require.NoError(t, err)
	assert.Contains(t, updated.Roster, "bob")
	mockGroupRepo.AssertExpectations(t)
}

func TestGroupService_JoinGroup_RosterFull(t *testing.T) {
	ctx := context.Background()
	_, mockFactory, mockGroupRepo, _, _, _ := newGroupServiceMocks(t)

	members := make([]string, models.MaxRosterSize)
	for i := range members {
		members[i] = string(rune('a' + i))
	}
	group := testGroup(t, members...)
	mockGroupRepo.On("GetBySlug", ctx, "morning-crew").Return(group, nil)

	service := newTestGroupService(t, mockFactory)
	_, err := service.JoinGroup(ctx, "morning-crew", "latecomer")

	assert.Error(t, err)
	mockGroupRepo.AssertNotCalled(t, "AddMember", mock.Anything, mock.Anything, mock.Anything)
}

func TestGroupService_JoinGroup_NotFound(t *testing.T) {
	ctx := context.Background()
	_, mockFactory, mockGroupRepo, _, _, _ := newGroupServiceMocks(t)

	mockGroupRepo.On("GetBySlug", ctx, "nope").Return(nil, nil)

	service := newTestGroupService(t, mockFactory)
	_, err := service.JoinGroup(ctx, "nope", "bob")

	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestGroupService_RecordSubmission(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, mockGroupRepo, mockSubmissionRepo, _, mockBus := newGroupServiceMocks(t)

	group := testGroup(t, "alice", "bob")
	mockGroupRepo.On("GetBySlug", ctx, "morning-crew").Return(group, nil)
	mockSubmissionRepo.On("Upsert", ctx, group.ID, mock.MatchedBy(func(s *models.Submission) bool {
		return s.Player == "alice" && s.Day == "2026-08-28" && s.PuzzleNumber == 1234 && s.Score == 4
	})).Return(nil)
	mockBus.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		recorded, ok := e.(events.SubmissionRecordedEvent)
		return ok && recorded.Player == "alice" && recorded.Day == "2026-08-28"
	})).Return()
	mockUoW.On("Commit").Return(nil)

	// Noon Eastern on the 28th
	now := time.Date(2026, 8, 28, 16, 0, 0, 0, time.UTC)

	service := newTestGroupService(t, mockFactory)
	sub, err := service.RecordSubmission(ctx, "morning-crew", "alice", shareTextFixture, now)

	require.NoError(t, err)
	assert.Equal(t, 4, sub.Score)
	assert.True(t, sub.Won())
	mockSubmissionRepo.AssertExpectations(t)
	mockBus.AssertExpectations(t)
}

func TestGroupService_RecordSubmission_NotMember(t *testing.T) {
	ctx := context.Background()
	_, mockFactory, mockGroupRepo, mockSubmissionRepo, _, _ := newGroupServiceMocks(t)

	group := testGroup(t, "alice")
	mockGroupRepo.On("GetBySlug", ctx, "morning-crew").Return(group, nil)

	service := newTestGroupService(t, mockFactory)
	_, err := service.RecordSubmission(ctx, "morning-crew", "mallory", shareTextFixture, time.Now())

	assert.ErrorIs(t, err, ErrNotMember)
	mockSubmissionRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
}

func TestGroupService_RecordSubmission_ParseFailureShortCircuits(t *testing.T) {
	ctx := context.Background()
	_, mockFactory, mockGroupRepo, _, _, _ := newGroupServiceMocks(t)

	service := newTestGroupService(t, mockFactory)
	_, err := service.RecordSubmission(ctx, "morning-crew", "alice", "nothing wordle-shaped here", time.Now())

	assert.ErrorIs(t, err, ErrNoHeader)
	// The parser rejects before any transaction is opened
	mockFactory.AssertNotCalled(t, "Create")
	mockGroupRepo.AssertNotCalled(t, "GetBySlug", mock.Anything, mock.Anything)
}

func TestGroupService_GetBoard_HiddenBeforeReveal(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, mockGroupRepo, mockSubmissionRepo, _, _ := newGroupServiceMocks(t)

	group := testGroup(t, "alice", "bob")
	sub, err := models.NewSubmission("alice", "2026-08-28", 1234, 3, "")
	require.NoError(t, err)
	set := models.NewDailyResultSet()
	set.Put(sub)

	mockGroupRepo.On("GetBySlug", ctx, "morning-crew").Return(group, nil)
	mockSubmissionRepo.On("GetDay", ctx, group.ID, "2026-08-28").Return(set, nil)
	mockUoW.On("Commit").Return(nil)

	// 9 AM Eastern, bob hasn't submitted
	now := time.Date(2026, 8, 28, 13, 0, 0, 0, time.UTC)

	service := newTestGroupService(t, mockFactory)
	board, err := service.GetBoard(ctx, "morning-crew", "2026-08-28", now)

	require.NoError(t, err)
	assert.False(t, board.Revealed)
	assert.Equal(t, []string{"alice"}, board.Submitted)
	assert.Empty(t, board.Entries, "scores stay escrowed until reveal")
	assert.Empty(t, board.Summary)
}

func TestGroupService_GetBoard_RevealedOnQuorum(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, mockGroupRepo, mockSubmissionRepo, _, _ := newGroupServiceMocks(t)

	group := testGroup(t, "alice", "bob")
	set := models.NewDailyResultSet()
	for player, score := range map[string]int{"alice": 3, "bob": 5} {
		sub, err := models.NewSubmission(player, "2026-08-28", 1234, score, "")
		require.NoError(t, err)
		set.Put(sub)
	}
	set.Summary = "A tidy morning for the crew."

	mockGroupRepo.On("GetBySlug", ctx, "morning-crew").Return(group, nil)
	mockSubmissionRepo.On("GetDay", ctx, group.ID, "2026-08-28").Return(set, nil)
	mockUoW.On("Commit").Return(nil)

	// Quorum reveals regardless of the cutoff; 9 AM Eastern
	now := time.Date(2026, 8, 28, 13, 0, 0, 0, time.UTC)

	service := newTestGroupService(t, mockFactory)
	board, err := service.GetBoard(ctx, "morning-crew", "2026-08-28", now)

	require.NoError(t, err)
	assert.True(t, board.Revealed)
	require.Len(t, board.Entries, 2)
	assert.Equal(t, "alice", board.Entries[0].Player)
	assert.Equal(t, 1, board.Entries[0].Rank)
	assert.Equal(t, "A tidy morning for the crew.", board.Summary)
}

func TestGroupService_AttachSummary(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, mockGroupRepo, _, mockSummaryRepo, mockBus := newGroupServiceMocks(t)

	group := testGroup(t, "alice")
	mockGroupRepo.On("GetBySlug", ctx, "morning-crew").Return(group, nil)
	mockSummaryRepo.On("Upsert", ctx, group.ID, "2026-08-28", "What a day.").Return(nil)
	mockBus.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		attached, ok := e.(events.SummaryAttachedEvent)
		return ok && attached.Day == "2026-08-28"
	})).Return()
	mockUoW.On("Commit").Return(nil)

	service := newTestGroupService(t, mockFactory)
	err := service.AttachSummary(ctx, "morning-crew", "2026-08-28", "What a day.")

	require.NoError(t, err)
	mockSummaryRepo.AssertExpectations(t)
	mockBus.AssertExpectations(t)
}

func TestGroupService_PlayerStats(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, mockGroupRepo, mockSubmissionRepo, _, _ := newGroupServiceMocks(t)

	group := testGroup(t, "alice")
	history := historyFixture(t, map[string]map[string]int{
		"2026-08-27": {"alice": 3},
		"2026-08-28": {"alice": 4},
	})

	mockGroupRepo.On("GetBySlug", ctx, "morning-crew").Return(group, nil)
	mockSubmissionRepo.On("GetHistory", ctx, group.ID).Return(history, nil)
	mockUoW.On("Commit").Return(nil)

	now := time.Date(2026, 8, 28, 16, 0, 0, 0, time.UTC)

	service := newTestGroupService(t, mockFactory)
	stats, err := service.PlayerStats(ctx, "morning-crew", "alice", now)

	require.NoError(t, err)
	assert.Equal(t, 2, stats.GamesPlayed)
	assert.Equal(t, 2, stats.CurrentStreak)
	assert.Equal(t, 100, stats.WinPercentage)
}
