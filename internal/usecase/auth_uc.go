package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/rajasharmaa/dttt/internal/domain"
	"github.com/rajasharmaa/dttt/internal/platform/logger"
	"github.com/rajasharmaa/dttt/internal/session"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// EventPublisher emits domain events. Implementations are best effort; the
// usecases log publish failures and continue.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// AuthUsecase implements registration, login, logout and profile management
// on top of the user repository and the session store.
type AuthUsecase struct {
	users    domain.UserRepository
	sessions session.Store
	events   EventPublisher // optional
	logger   *logger.Logger
}

func NewAuthUsecase(users domain.UserRepository, sessions session.Store, events EventPublisher, log *logger.Logger) *AuthUsecase {
	return &AuthUsecase{
		users:    users,
		sessions: sessions,
		events:   events,
		logger:   log.Named("AuthUsecase"),
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// Register creates a new user account and establishes a session for it.
// Returns the created user and the session token.
func (uc *AuthUsecase) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, "", fmt.Errorf("%w: name, email and password are required", domain.ErrInvalidInput)
	}
	if len(in.Password) < MinPasswordLength {
		return nil, "", fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, MinPasswordLength)
	}
	email := strings.ToLower(in.Email)
	if !emailPattern.MatchString(email) {
		return nil, "", fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}

	existing, err := uc.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, "", err
	}
	if existing != nil && existing.Active {
		return nil, "", domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password during registration", zap.Error(err))
		return nil, "", err
	}

	user := &domain.User{
		Name:     in.Name,
		Email:    email,
		Phone:    in.Phone,
		Password: string(hash),
		Role:     domain.RoleUser,
		Active:   true,
	}

	id, err := uc.users.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := uc.sessions.Create(ctx, session.Identity{
		UserID: id.Hex(),
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
	})
	if err != nil {
		uc.logger.Error("Failed to create session after registration", zap.String("user_id", id.Hex()), zap.Error(err))
		return nil, "", err
	}

	if uc.events != nil {
		event := map[string]interface{}{
			"user_id": id.Hex(),
			"email":   user.Email,
		}
		if err := uc.events.Publish(ctx, "user.registered", event); err != nil {
			uc.logger.Warn("Failed to publish user.registered event", zap.Error(err))
		}
	}

	uc.logger.Info("User registered", zap.String("user_id", id.Hex()))
	return user, token, nil
}

// Login verifies credentials and establishes a session. Unknown email, wrong
// password and a deactivated account all return ErrInvalidCredentials.
func (uc *AuthUsecase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	user, err := uc.users.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !user.Active {
		return nil, "", domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := uc.sessions.Create(ctx, session.Identity{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
	})
	if err != nil {
		uc.logger.Error("Failed to create session after login", zap.String("user_id", user.ID.Hex()), zap.Error(err))
		return nil, "", err
	}

	uc.logger.Info("User logged in", zap.String("user_id", user.ID.Hex()))
	return user, token, nil
}

// Logout destroys the caller's session. Destroying an absent session is not
// an error, so logging out twice succeeds.
func (uc *AuthUsecase) Logout(ctx context.Context, token string) error {
	return uc.sessions.Destroy(ctx, token)
}

// GetUser returns the user view for targetID. Only the owning user or an
// admin may look it up; deactivated users read as not found.
func (uc *AuthUsecase) GetUser(ctx context.Context, caller session.Identity, targetID string) (*domain.User, error) {
	id, err := primitive.ObjectIDFromHex(targetID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID format", domain.ErrInvalidInput)
	}

	if caller.Role != domain.RoleAdmin && caller.UserID != targetID {
		return nil, domain.ErrForbidden
	}

	user, err := uc.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.Active {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

type UpdateProfileInput struct {
	Name            *string
	Phone           *string
	CurrentPassword string
	NewPassword     string
}

// UpdateProfile applies name/phone/password changes to targetID. The caller
// must be the owning user or an admin. A non-admin changing the password must
// present the current one. When the owner renames themself, the live session
// picks up the new name.
func (uc *AuthUsecase) UpdateProfile(ctx context.Context, caller session.Identity, callerToken, targetID string, in UpdateProfileInput) (*domain.User, error) {
	id, err := primitive.ObjectIDFromHex(targetID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID format", domain.ErrInvalidInput)
	}

	isAdmin := caller.Role == domain.RoleAdmin
	isOwner := caller.UserID == targetID
	if !isAdmin && !isOwner {
		return nil, domain.ErrForbidden
	}

	patch := domain.UserPatch{Name: in.Name, Phone: in.Phone}

	if in.NewPassword != "" {
		if len(in.NewPassword) < MinPasswordLength {
			return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, MinPasswordLength)
		}
		if !isAdmin {
			if in.CurrentPassword == "" {
				return nil, fmt.Errorf("%w: current password is required to set a new password", domain.ErrInvalidInput)
			}
			user, err := uc.users.FindByID(ctx, id)
			if err != nil {
				return nil, err
			}
			if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.CurrentPassword)); err != nil {
				return nil, domain.ErrInvalidCredentials
			}
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			uc.logger.Error("Failed to hash new password", zap.String("user_id", targetID), zap.Error(err))
			return nil, err
		}
		hashed := string(hash)
		patch.Password = &hashed
	}

	updated, err := uc.users.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	if isOwner && in.Name != nil && *in.Name != "" {
		if err := uc.sessions.Rename(ctx, callerToken, *in.Name); err != nil {
			uc.logger.Warn("Failed to refresh session name after profile update", zap.String("user_id", targetID), zap.Error(err))
		}
	}

	uc.logger.Info("Profile updated", zap.String("user_id", targetID))
	return updated, nil
}
