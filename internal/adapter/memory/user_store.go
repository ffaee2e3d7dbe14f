package memory

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"go.uber.org/zap"

	"user-rest-service/internal/domain/user"
	apperrors "user-rest-service/pkg/errors"
)

// UserStore implements the Repository interface with an in-process map.
// Records live for the lifetime of the process.
//
// A single RWMutex guards the record map, the username index, and the id
// counter, so every operation is one atomic step. IDs come from a counter
// that only moves forward; an id freed by Delete is never handed out again.
type UserStore struct {
	mu        sync.RWMutex
	users     map[int64]*user.User // records keyed by id
	usernames map[string]struct{}  // every username ever accepted
	lastID    int64
	log       *zap.Logger
	validate  *validator.Validate
}

// NewUserStore creates an empty UserStore.
func NewUserStore(log *zap.Logger) *UserStore {
	validate := validator.New()
	_ = validate.RegisterValidation("notblank", validators.NotBlank)

	// Report fields under their wire names so validation messages can be
	// passed through to clients as-is.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &UserStore{
		users:     make(map[int64]*user.User),
		usernames: make(map[string]struct{}),
		log:       log,
		validate:  validate,
	}
}

// List returns all users ordered by ascending id. IDs are assigned
// monotonically, so this is also insertion order.
func (s *UserStore) List(ctx context.Context) ([]user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]user.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })

	return users, nil
}

// GetByID retrieves a user by id. The returned record is a copy.
func (s *UserStore) GetByID(ctx context.Context, id int64) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		s.log.Warn("user not found", zap.Int64("id", id))
		return nil, apperrors.NewNotFoundError("user", "User not found")
	}

	cp := *u
	return &cp, nil
}

// Create validates the candidate, enforces username uniqueness, assigns the
// next id, and stores the record. Any id carried by the candidate is ignored.
func (s *UserStore) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.validate.Struct(u); err != nil {
		return nil, s.validationError(err)
	}

	if _, taken := s.usernames[u.Username]; taken {
		s.log.Warn("username already exists", zap.String("username", u.Username))
		return nil, apperrors.NewValidationError("username", "username already exists")
	}

	s.lastID++
	stored := &user.User{
		ID:       s.lastID,
		Username: u.Username,
		Age:      u.Age,
	}
	s.users[stored.ID] = stored
	s.usernames[stored.Username] = struct{}{}

	s.log.Info("user created", zap.Int64("id", stored.ID), zap.String("username", stored.Username))

	cp := *stored
	return &cp, nil
}

// Update overwrites the record at id with the candidate's username and age.
// The candidate's id must match the path id; that check comes before the
// existence check, so a mismatch on a missing record still reports mismatch.
//
// The new username is added to the index but the previous one is not
// released, and uniqueness is not re-checked here: once a name has been
// accepted it stays reserved for the lifetime of the process, and a rename
// may land on a name that is still in use.
func (s *UserStore) Update(ctx context.Context, id int64, u *user.User) (*user.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID != id {
		s.log.Warn("user id mismatch", zap.Int64("path_id", id), zap.Int64("body_id", u.ID))
		return nil, apperrors.NewValidationError("id", "user id mismatch between path and body")
	}

	existing, ok := s.users[id]
	if !ok {
		s.log.Warn("user not found", zap.Int64("id", id))
		return nil, apperrors.NewNotFoundError("user", "User not found")
	}

	if err := s.validate.Struct(u); err != nil {
		return nil, s.validationError(err)
	}

	existing.Username = u.Username
	existing.Age = u.Age
	s.usernames[u.Username] = struct{}{}

	s.log.Info("user updated", zap.Int64("id", id), zap.String("username", u.Username))

	cp := *existing
	return &cp, nil
}

// Delete removes the record at id. The username index is left untouched, so
// the deleted user's name remains reserved.
func (s *UserStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		s.log.Warn("user not found", zap.Int64("id", id))
		return apperrors.NewNotFoundError("user", "User not found")
	}

	delete(s.users, id)
	s.log.Info("user deleted", zap.Int64("id", id))

	return nil
}

// validationError converts validator.ValidationErrors into a ValidationError
// whose message reads naturally on the wire.
func (s *UserStore) validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	messages := make([]string, 0, len(verrs))
	for _, e := range verrs {
		switch e.Tag() {
		case "notblank":
			messages = append(messages, fmt.Sprintf("%s must not be blank", e.Field()))
		case "gt":
			messages = append(messages, fmt.Sprintf("%s must be greater than %s", e.Field(), e.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
		}
	}

	s.log.Warn("validation failed", zap.Strings("reasons", messages))
	return apperrors.NewValidationError(verrs[0].Field(), strings.Join(messages, ", "))
}
