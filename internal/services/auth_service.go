package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/family-graph-api/internal/constants"
	"github.com/yukikurage/family-graph-api/internal/dto"
	"github.com/yukikurage/family-graph-api/internal/models"
	"github.com/yukikurage/family-graph-api/internal/repository"
	"gorm.io/gorm"
)

// AuthService handles account related business logic.
type AuthService struct {
	clock
	store       repository.Store
	credentials *CredentialStore
	sessions    *SessionService
}

// NewAuthService creates a new AuthService.
func NewAuthService(store repository.Store, credentials *CredentialStore, sessions *SessionService) *AuthService {
	return &AuthService{
		store:       store,
		credentials: credentials,
		sessions:    sessions,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Username string
	Password string
	Email    *string
	FullName string
}

// Register creates a new active user.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, newValidationError("username", "username is required")
	}
	if len(username) > constants.MaxUsernameLength {
		return nil, newValidationError("username",
			fmt.Sprintf("username must be at most %d characters", constants.MaxUsernameLength))
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}
	email := normalizeEmail(input.Email)

	if _, err := s.store.Users().FindByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storageError("failed to check username", err)
	}
	if email != nil {
		if _, err := s.store.Users().FindByEmail(ctx, *email); err == nil {
			return nil, ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storageError("failed to check email", err)
		}
	}

	hashed, err := s.credentials.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.timeNow()
	user := &models.User{
		Username:     username,
		PasswordHash: hashed,
		Email:        email,
		FullName:     strings.TrimSpace(input.FullName),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.Users().Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.duplicateUserError(ctx, username)
		}
		return nil, storageError("failed to create user", err)
	}

	return user, nil
}

// duplicateUserError decides which unique column lost a concurrent insert.
func (s *AuthService) duplicateUserError(ctx context.Context, username string) error {
	if _, err := s.store.Users().FindByUsername(ctx, username); err == nil {
		return ErrUsernameTaken
	}
	return ErrEmailTaken
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// LoginResult is the authenticated user and the session issued for them.
type LoginResult struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

// Login verifies credentials and opens a new session.
// Unknown users, wrong passwords and inactive accounts are indistinguishable.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.store.Users().FindByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, storageError("failed to find user", err)
	}

	if !user.IsActive || !s.credentials.Verify(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// Logout revokes the session identified by token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}

// GetProfile retrieves the caller's account.
func (s *AuthService) GetProfile(ctx context.Context, callerID uint64) (*models.User, error) {
	user, err := s.store.Users().FindByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, storageError("failed to find user", err)
	}

	return user, nil
}

// UpdateProfile applies a partial update to the caller's email, full name
// and password.
func (s *AuthService) UpdateProfile(ctx context.Context, callerID uint64, patch dto.UserPatch) (*models.User, error) {
	var updated *models.User

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		user, err := tx.Users().FindByID(ctx, callerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return storageError("failed to find user", err)
		}

		if patch.Email.Set {
			email := normalizeEmail(patch.Email.Ptr())
			if email != nil {
				existing, err := tx.Users().FindByEmail(ctx, *email)
				if err == nil && existing.ID != user.ID {
					return ErrEmailTaken
				}
				if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
					return storageError("failed to check email", err)
				}
			}
			user.Email = email
		}

		if patch.FullName.Set {
			user.FullName = strings.TrimSpace(patch.FullName.Value)
		}

		if patch.Password.Set {
			if patch.Password.Null {
				return newValidationError("password", "password cannot be empty")
			}
			if err := validatePassword(patch.Password.Value); err != nil {
				return err
			}
			hashed, err := s.credentials.Hash(patch.Password.Value)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}
			user.PasswordHash = hashed
		}

		user.UpdatedAt = s.timeNow()
		if err := tx.Users().Update(ctx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrEmailTaken
			}
			return storageError("failed to update user", err)
		}

		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Deactivate disables the caller's account and revokes all of its sessions.
func (s *AuthService) Deactivate(ctx context.Context, callerID uint64) error {
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := tx.Users().FindByID(ctx, callerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return storageError("failed to find user", err)
		}
		if err := tx.Users().SetActive(ctx, callerID, false, s.timeNow()); err != nil {
			return storageError("failed to deactivate user", err)
		}
		return s.sessions.WithStore(tx).RevokeAll(ctx, callerID)
	})
}

func validatePassword(password string) error {
	if len(password) < constants.MinPasswordLength {
		return newValidationError("password",
			fmt.Sprintf("password must be at least %d characters", constants.MinPasswordLength))
	}
	return nil
}

// normalizeEmail trims and lowercases; blank addresses become nil.
func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	normalized := strings.ToLower(strings.TrimSpace(*email))
	if normalized == "" {
		return nil
	}
	return &normalized
}
