package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap/zaptest"

	domain "user-rest-service/internal/domain/user"
	apperrors "user-rest-service/pkg/errors"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id int64, u *domain.User) (*domain.User, error) {
	args := m.Called(ctx, id, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Test helper to build a Service backed by a mock repo
func setupTestService(t *testing.T) (*Service, *MockRepository) {
	mockRepo := new(MockRepository)
	logger := zaptest.NewLogger(t)
	svc := New(mockRepo, logger)
	return svc, mockRepo
}

// ==================== CREATE USER TESTS ====================

func TestCreateUser_Success(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	req := CreateUserRequest{
		Username: "alice",
		Age:      30,
	}

	mockRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.ID == 0 && u.Username == req.Username && u.Age == req.Age
	})).Return(&domain.User{ID: 1, Username: "alice", Age: 30}, nil)

	resp, err := svc.CreateUser(ctx, req)

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, int64(30), resp.Age)

	mockRepo.AssertExpectations(t)
}

func TestCreateUser_RepositoryErrorPassesThrough(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	wantErr := apperrors.NewValidationError("username", "username already exists")
	mockRepo.On("Create", ctx, mock.Anything).Return(nil, wantErr)

	resp, err := svc.CreateUser(ctx, CreateUserRequest{Username: "alice", Age: 30})

	assert.Nil(t, resp)
	// The repository error must reach the caller unchanged so the handler
	// can map it to a status code and pass its message through.
	assert.ErrorIs(t, err, wantErr)

	mockRepo.AssertExpectations(t)
}

// ==================== UPDATE USER TESTS ====================

func TestUpdateUser_Success(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	req := UpdateUserRequest{
		PathID:   1,
		ID:       1,
		Username: "alicia",
		Age:      31,
	}

	mockRepo.On("Update", ctx, int64(1), mock.MatchedBy(func(u *domain.User) bool {
		return u.ID == req.ID && u.Username == req.Username && u.Age == req.Age
	})).Return(&domain.User{ID: 1, Username: "alicia", Age: 31}, nil)

	resp, err := svc.UpdateUser(ctx, req)

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "alicia", resp.Username)
	assert.Equal(t, int64(31), resp.Age)

	mockRepo.AssertExpectations(t)
}

func TestUpdateUser_ForwardsBodyIDForMismatchCheck(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	req := UpdateUserRequest{
		PathID:   1,
		ID:       2,
		Username: "alicia",
		Age:      31,
	}

	wantErr := apperrors.NewValidationError("id", "user id mismatch between path and body")
	mockRepo.On("Update", ctx, int64(1), mock.MatchedBy(func(u *domain.User) bool {
		return u.ID == int64(2)
	})).Return(nil, wantErr)

	resp, err := svc.UpdateUser(ctx, req)

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, wantErr)

	mockRepo.AssertExpectations(t)
}

// ==================== DELETE USER TESTS ====================

func TestDeleteUser_Success(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	mockRepo.On("Delete", ctx, int64(1)).Return(nil)

	resp, err := svc.DeleteUser(ctx, DeleteUserRequest{ID: 1})

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, int64(1), resp.ID)

	mockRepo.AssertExpectations(t)
}

func TestDeleteUser_NotFoundPassesThrough(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	wantErr := apperrors.NewNotFoundError("user", "User not found")
	mockRepo.On("Delete", ctx, int64(42)).Return(wantErr)

	resp, err := svc.DeleteUser(ctx, DeleteUserRequest{ID: 42})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, wantErr)

	mockRepo.AssertExpectations(t)
}

// ==================== GET USER TESTS ====================

func TestGetUser_Success(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	expectedUser := &domain.User{ID: 1, Username: "alice", Age: 30}
	mockRepo.On("GetByID", ctx, int64(1)).Return(expectedUser, nil)

	resp, err := svc.GetUser(ctx, GetUserRequest{ID: 1})

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, expectedUser.ID, resp.ID)
	assert.Equal(t, expectedUser.Username, resp.Username)
	assert.Equal(t, expectedUser.Age, resp.Age)

	mockRepo.AssertExpectations(t)
}

func TestGetUser_NotFoundPassesThrough(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	wantErr := apperrors.NewNotFoundError("user", "User not found")
	mockRepo.On("GetByID", ctx, int64(42)).Return(nil, wantErr)

	resp, err := svc.GetUser(ctx, GetUserRequest{ID: 42})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, wantErr)

	mockRepo.AssertExpectations(t)
}

// ==================== LIST USERS TESTS ====================

func TestListUsers_Success(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	expectedUsers := []domain.User{
		{ID: 1, Username: "alice", Age: 30},
		{ID: 2, Username: "bob", Age: 25},
	}
	mockRepo.On("List", ctx).Return(expectedUsers, nil)

	resp, err := svc.ListUsers(ctx)

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Len(t, resp.Users, 2)
	assert.Equal(t, expectedUsers[0].ID, resp.Users[0].ID)
	assert.Equal(t, expectedUsers[0].Username, resp.Users[0].Username)
	assert.Equal(t, expectedUsers[1].ID, resp.Users[1].ID)

	mockRepo.AssertExpectations(t)
}

func TestListUsers_EmptyStore(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	mockRepo.On("List", ctx).Return([]domain.User{}, nil)

	resp, err := svc.ListUsers(ctx)

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.NotNil(t, resp.Users, "an empty collection must serialize as [], not null")
	assert.Empty(t, resp.Users)

	mockRepo.AssertExpectations(t)
}
