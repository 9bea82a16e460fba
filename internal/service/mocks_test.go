package service_test

import (
	"context"
	"time"

	"hackmate-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockProfileRepo
type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) GetByUserID(ctx context.Context, userID int32) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockProfileRepo) ListMatchable(ctx context.Context, excludeUserID int32) ([]domain.Profile, error) {
	args := m.Called(ctx, excludeUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Profile), args.Error(1)
}

// MockEventRepo
type MockEventRepo struct {
	mock.Mock
}

func (m *MockEventRepo) GetByID(ctx context.Context, id int32) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}
func (m *MockEventRepo) List(ctx context.Context) ([]domain.Event, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Event), args.Error(1)
}

// MockMatchRequestRepo
type MockMatchRequestRepo struct {
	mock.Mock
}

func (m *MockMatchRequestRepo) Create(ctx context.Context, req *domain.MatchRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockMatchRequestRepo) GetByID(ctx context.Context, id int32) (*domain.MatchRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MatchRequest), args.Error(1)
}
func (m *MockMatchRequestRepo) Resolve(ctx context.Context, id int32, status domain.MatchRequestStatus, respondedOn time.Time) error {
	args := m.Called(ctx, id, status, respondedOn)
	return args.Error(0)
}
func (m *MockMatchRequestRepo) AcceptWithTeamJoin(ctx context.Context, requestID, teamID, userID int32, respondedOn time.Time) (*domain.MatchRequest, *domain.Team, error) {
	args := m.Called(ctx, requestID, teamID, userID, respondedOn)
	var req *domain.MatchRequest
	var team *domain.Team
	if args.Get(0) != nil {
		req = args.Get(0).(*domain.MatchRequest)
	}
	if args.Get(1) != nil {
		team = args.Get(1).(*domain.Team)
	}
	return req, team, args.Error(2)
}
func (m *MockMatchRequestRepo) ListByUser(ctx context.Context, userID int32, direction string, status domain.MatchRequestStatus) ([]domain.MatchRequest, error) {
	args := m.Called(ctx, userID, direction, status)
	return args.Get(0).([]domain.MatchRequest), args.Error(1)
}
func (m *MockMatchRequestRepo) FindMutual(ctx context.Context, userID int32) ([]domain.MutualMatch, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.MutualMatch), args.Error(1)
}
func (m *MockMatchRequestRepo) StatusCounts(ctx context.Context, userID int32) (domain.RequestCounts, domain.RequestCounts, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.RequestCounts), args.Get(1).(domain.RequestCounts), args.Error(2)
}
func (m *MockMatchRequestRepo) CancelExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockTeamRepo
type MockTeamRepo struct {
	mock.Mock
}

func (m *MockTeamRepo) Create(ctx context.Context, team *domain.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}
func (m *MockTeamRepo) GetByID(ctx context.Context, id int32) (*domain.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}
func (m *MockTeamRepo) GetByInviteCode(ctx context.Context, code string) (*domain.Team, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}
func (m *MockTeamRepo) AddMember(ctx context.Context, teamID, userID int32, role string) (*domain.Team, error) {
	args := m.Called(ctx, teamID, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}
func (m *MockTeamRepo) RemoveMember(ctx context.Context, teamID, actingUserID, targetUserID int32) (*domain.Team, error) {
	args := m.Called(ctx, teamID, actingUserID, targetUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}
func (m *MockTeamRepo) UpdateCapacity(ctx context.Context, teamID, newMax int32) (*domain.Team, error) {
	args := m.Called(ctx, teamID, newMax)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}
func (m *MockTeamRepo) UpdateInfo(ctx context.Context, team *domain.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}
func (m *MockTeamRepo) ListByEvent(ctx context.Context, eventID int32, status domain.TeamStatus, search string) ([]domain.Team, error) {
	args := m.Called(ctx, eventID, status, search)
	return args.Get(0).([]domain.Team), args.Error(1)
}
func (m *MockTeamRepo) ListByMember(ctx context.Context, userID int32) ([]domain.Team, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Team), args.Error(1)
}
func (m *MockTeamRepo) GetActiveForUser(ctx context.Context, eventID, userID int32) (*domain.Team, error) {
	args := m.Called(ctx, eventID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}
func (m *MockTeamRepo) CompleteForEndedEvents(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}
