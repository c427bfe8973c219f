package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"wordleclub/events"
	"wordleclub/models"
)

// MockGroupRepository is a mock implementation of GroupRepository
type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) Create(ctx context.Context, group *models.Group) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockGroupRepository) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockGroupRepository) GetAll(ctx context.Context) ([]*models.Group, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Group), args.Error(1)
}

func (m *MockGroupRepository) AddMember(ctx context.Context, groupID uuid.UUID, player string) error {
	args := m.Called(ctx, groupID, player)
	return args.Error(0)
}

// MockSubmissionRepository is a mock implementation of SubmissionRepository
type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) Upsert(ctx context.Context, groupID uuid.UUID, sub *models.Submission) error {
	args := m.Called(ctx, groupID, sub)
	return args.Error(0)
}

func (m *MockSubmissionRepository) GetDay(ctx context.Context, groupID uuid.UUID, day string) (*models.DailyResultSet, error) {
	args := m.Called(ctx, groupID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailyResultSet), args.Error(1)
}

func (m *MockSubmissionRepository) GetHistory(ctx context.Context, groupID uuid.UUID) (models.History, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.History), args.Error(1)
}

func (m *MockSubmissionRepository) GetSubmittedPlayers(ctx context.Context, groupID uuid.UUID, day string) ([]string, error) {
	args := m.Called(ctx, groupID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockSummaryRepository is a mock implementation of SummaryRepository
type MockSummaryRepository struct {
	mock.Mock
}

func (m *MockSummaryRepository) Upsert(ctx context.Context, groupID uuid.UUID, day, summary string) error {
	args := m.Called(ctx, groupID, day, summary)
	return args.Error(0)
}

func (m *MockSummaryRepository) Get(ctx context.Context, groupID uuid.UUID, day string) (string, error) {
	args := m.Called(ctx, groupID, day)
	return args.String(0), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork. Repositories are
// injected with SetRepositories rather than expectations since the getters
// carry no behavior worth asserting.
type MockUnitOfWork struct {
	mock.Mock

	groupRepo      GroupRepository
	submissionRepo SubmissionRepository
	summaryRepo    SummaryRepository
	eventBus       EventPublisher
}

func (m *MockUnitOfWork) SetRepositories(groups GroupRepository, submissions SubmissionRepository, summaries SummaryRepository, bus EventPublisher) {
	m.groupRepo = groups
	m.submissionRepo = submissions
	m.summaryRepo = summaries
	m.eventBus = bus
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) GroupRepository() GroupRepository {
	return m.groupRepo
}

func (m *MockUnitOfWork) SubmissionRepository() SubmissionRepository {
	return m.submissionRepo
}

func (m *MockUnitOfWork) SummaryRepository() SummaryRepository {
	return m.summaryRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.eventBus
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
