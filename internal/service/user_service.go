package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// CreateUserInput carries the caller-supplied fields for a new user.
type CreateUserInput struct {
	Name  string
	Email string
	Role  domain.Role
}

// UpdateUserInput carries a partial patch for an existing user. Nil fields
// are left unchanged.
type UpdateUserInput struct {
	Name        *string
	Email       *string
	Role        *domain.Role
	Active      *bool
	Preferences *domain.Preferences
}

// UserService provides user-related operations. Collection-wide invariants
// (at least one ADMIN at all times) are enforced here, on every path that
// could remove or demote an admin.
type UserService interface {
	// Create validates and stores a new user with default preferences.
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)

	// Get retrieves a user by their ID.
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List returns all users in insertion order.
	List(ctx context.Context) ([]*domain.User, error)

	// Update applies a partial patch to a user. Demoting the last admin is
	// rejected with ErrLastAdmin.
	Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*domain.User, error)

	// Delete removes a user. Deleting the last admin is rejected with
	// ErrLastAdmin.
	Delete(ctx context.Context, id uuid.UUID) error

	// Deactivate marks a user inactive without deleting them.
	Deactivate(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// Authenticate is a stub: it looks the user up by email, requires the
	// account to be active, and records the login time. Credentials are not
	// verified.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface.
type UserServiceImpl struct {
	userStore store.UserStore
	logger    *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(userStore store.UserStore, logger *slog.Logger) UserService {
	return &UserServiceImpl{
		userStore: userStore,
		logger:    logger.With("component", "user_service"),
	}
}

// Create validates and stores a new user.
func (s *UserServiceImpl) Create(
	ctx context.Context,
	input CreateUserInput,
) (*domain.User, error) {
	user, err := domain.NewUser(input.Name, input.Email, input.Role)
	if err != nil {
		s.logger.Debug("user validation failed", "error", err)
		return nil, err
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		if store.IsDuplicateError(err) {
			s.logger.Debug("attempted to create user with existing email", "email", input.Email)
		} else {
			s.logger.Error("failed to store user", "error", err)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Debug("user created", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Get retrieves a user by their ID.
func (s *UserServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by their email address.
func (s *UserServiceImpl) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user by email: %w", err)
	}
	return user, nil
}

// List returns all users in insertion order.
func (s *UserServiceImpl) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Update applies a partial patch to a user.
func (s *UserServiceImpl) Update(
	ctx context.Context,
	id uuid.UUID,
	input UpdateUserInput,
) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	// A role change away from ADMIN is guarded the same way deletion is:
	// the collection must keep at least one admin at all times.
	if input.Role != nil && user.IsAdmin() && *input.Role != domain.RoleAdmin {
		lastAdmin, err := s.isLastAdmin(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if lastAdmin {
			s.logger.Warn("rejected demotion of last admin", "user_id", id)
			return nil, ErrLastAdmin
		}
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.Active != nil {
		user.Active = *input.Active
	}
	if input.Preferences != nil {
		user.Preferences = *input.Preferences
	}

	if result := domain.ValidateUser(user); !result.Valid {
		s.logger.Debug("user update validation failed", "user_id", id, "errors", result.Errors)
		return nil, result.Err()
	}

	user.Touch()

	if err := s.userStore.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Debug("user updated", "user_id", id)
	return user, nil
}

// Delete removes a user, refusing to remove the last admin.
func (s *UserServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to retrieve user: %w", err)
	}

	if user.IsAdmin() {
		lastAdmin, err := s.isLastAdmin(ctx, user.ID)
		if err != nil {
			return err
		}
		if lastAdmin {
			s.logger.Warn("rejected deletion of last admin", "user_id", id)
			return ErrLastAdmin
		}
	}

	if err := s.userStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Debug("user deleted", "user_id", id)
	return nil
}

// Deactivate marks a user inactive. Deactivation is not deletion: an
// inactive admin still counts toward the admin invariant.
func (s *UserServiceImpl) Deactivate(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	user.Active = false
	user.Touch()

	if err := s.userStore.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to deactivate user: %w", err)
	}

	s.logger.Debug("user deactivated", "user_id", id)
	return user, nil
}

// Authenticate is a stub login: the password is accepted without
// verification. The account must exist and be active.
func (s *UserServiceImpl) Authenticate(
	ctx context.Context,
	email, password string,
) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	if !user.Active {
		s.logger.Debug("inactive user attempted login", "user_id", user.ID)
		return nil, ErrUserInactive
	}

	user.RecordLogin()
	user.Touch()

	if err := s.userStore.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// isLastAdmin reports whether the given user is the only ADMIN in the
// collection. Inactive admins count.
func (s *UserServiceImpl) isLastAdmin(ctx context.Context, id uuid.UUID) (bool, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count admins: %w", err)
	}

	for _, user := range users {
		if user.IsAdmin() && user.ID != id {
			return false, nil
		}
	}
	return true, nil
}
