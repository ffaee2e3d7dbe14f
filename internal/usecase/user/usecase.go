package user

import (
	"context"

	"go.uber.org/zap"

	domain "user-rest-service/internal/domain/user"
)

// Repository defines the interface for user data access operations. It
// abstracts the data layer so different implementations (in-memory, SQL)
// can be used interchangeably. Validation, id assignment, and username
// uniqueness are the repository's responsibility: they have to happen
// inside its mutual-exclusion scope to stay atomic under concurrency.
type Repository interface {
	// List returns all users ordered by ascending id.
	List(ctx context.Context) ([]domain.User, error)
	// GetByID retrieves a user by id.
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// Create validates the candidate and stores it under a fresh id.
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	// Update overwrites the user at id with the candidate.
	Update(ctx context.Context, id int64, u *domain.User) (*domain.User, error)
	// Delete removes the user at id.
	Delete(ctx context.Context, id int64) error
}

// Service implements the business logic for user management operations.
// It provides a clean separation between the transport layer and data layer.
type Service struct {
	repo Repository  // Repository for data access
	log  *zap.Logger // Logger for structured logging
}

// New creates a new instance of Service with the provided repository and logger.
func New(r Repository, log *zap.Logger) *Service {
	return &Service{repo: r, log: log}
}

// CreateUser stores a new user. The repository validates the candidate and
// enforces username uniqueness; its errors pass through unchanged so the
// transport layer can map them to status codes.
func (s *Service) CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error) {
	s.log.Info("creating user", zap.String("username", in.Username), zap.Int64("userage", in.Age))

	created, err := s.repo.Create(ctx, &domain.User{
		Username: in.Username,
		Age:      in.Age,
	})
	if err != nil {
		s.log.Warn("create user rejected", zap.String("username", in.Username), zap.Error(err))
		return nil, err
	}

	return &CreateUserResponse{
		ID:       created.ID,
		Username: created.Username,
		Age:      created.Age,
	}, nil
}

// UpdateUser overwrites an existing user with the candidate from the request
// body. The repository checks the path/body id match before anything else.
func (s *Service) UpdateUser(ctx context.Context, in UpdateUserRequest) (*UpdateUserResponse, error) {
	s.log.Info("updating user", zap.Int64("id", in.PathID), zap.String("username", in.Username), zap.Int64("userage", in.Age))

	updated, err := s.repo.Update(ctx, in.PathID, &domain.User{
		ID:       in.ID,
		Username: in.Username,
		Age:      in.Age,
	})
	if err != nil {
		s.log.Warn("update user rejected", zap.Int64("id", in.PathID), zap.Error(err))
		return nil, err
	}

	return &UpdateUserResponse{
		ID:       updated.ID,
		Username: updated.Username,
		Age:      updated.Age,
	}, nil
}

// DeleteUser removes a user by id.
func (s *Service) DeleteUser(ctx context.Context, in DeleteUserRequest) (*DeleteUserResponse, error) {
	s.log.Info("deleting user", zap.Int64("id", in.ID))

	if err := s.repo.Delete(ctx, in.ID); err != nil {
		s.log.Warn("delete user rejected", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}

	return &DeleteUserResponse{ID: in.ID}, nil
}

// GetUser retrieves a user by id.
func (s *Service) GetUser(ctx context.Context, in GetUserRequest) (*GetUserResponse, error) {
	u, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		s.log.Warn("get user failed", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}

	return &GetUserResponse{
		ID:       u.ID,
		Username: u.Username,
		Age:      u.Age,
	}, nil
}

// ListUsers retrieves all users ordered by ascending id.
func (s *Service) ListUsers(ctx context.Context) (*ListUsersResponse, error) {
	domainUsers, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("failed to list users", zap.Error(err))
		return nil, err
	}

	users := make([]User, len(domainUsers))
	for i, du := range domainUsers {
		users[i] = User{
			ID:       du.ID,
			Username: du.Username,
			Age:      du.Age,
		}
	}

	return &ListUsersResponse{Users: users}, nil
}
