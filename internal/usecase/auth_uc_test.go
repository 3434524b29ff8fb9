package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/rajasharmaa/dttt/internal/domain"
	"github.com/rajasharmaa/dttt/internal/platform/logger"
	"github.com/rajasharmaa/dttt/internal/session"
)

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepository) Update(ctx context.Context, id primitive.ObjectID, patch domain.UserPatch) (*domain.User, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepository) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSessionStore struct{ mock.Mock }

func (m *MockSessionStore) Create(ctx context.Context, identity session.Identity) (string, error) {
	args := m.Called(ctx, identity)
	return args.String(0), args.Error(1)
}
func (m *MockSessionStore) Resolve(ctx context.Context, token string) (*session.Identity, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Identity), args.Error(1)
}
func (m *MockSessionStore) Destroy(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
func (m *MockSessionStore) Rename(ctx context.Context, token, name string) error {
	args := m.Called(ctx, token, name)
	return args.Error(0)
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func TestAuthUsecase_Register(t *testing.T) {
	ctx := context.Background()
	log := logger.NewNop()

	t.Run("Success", func(t *testing.T) {
		users := new(MockUserRepository)
		sessions := new(MockSessionStore)
		uc := NewAuthUsecase(users, sessions, nil, log)

		id := primitive.NewObjectID()
		users.On("FindByEmail", ctx, "jane@example.com").Return(nil, domain.ErrNotFound).Once()
		users.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(id, nil).Once()
		sessions.On("Create", ctx, mock.AnythingOfType("session.Identity")).Return("token-1", nil).Once()

		user, token, err := uc.Register(ctx, RegisterInput{
			Name:     "Jane",
			Email:    "Jane@Example.com",
			Password: "secret123",
			Phone:    "12345",
		})

		assert.NoError(t, err)
		assert.Equal(t, "token-1", token)
		assert.Equal(t, "jane@example.com", user.Email)
		assert.Equal(t, domain.RoleUser, user.Role)
		assert.True(t, user.Active)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))

		users.AssertExpectations(t)
		sessions.AssertExpectations(t)
	})

	t.Run("MissingFields", func(t *testing.T) {
		users := new(MockUserRepository)
		sessions := new(MockSessionStore)
		uc := NewAuthUsecase(users, sessions, nil, log)

		_, _, err := uc.Register(ctx, RegisterInput{Name: "Jane", Email: "jane@example.com"})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("ShortPassword", func(t *testing.T) {
		users := new(MockUserRepository)
		sessions := new(MockSessionStore)
		uc := NewAuthUsecase(users, sessions, nil, log)

		_, _, err := uc.Register(ctx, RegisterInput{Name: "Jane", Email: "jane@example.com", Password: "abc"})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("BadEmailFormat", func(t *testing.T) {
		users := new(MockUserRepository)
		sessions := new(MockSessionStore)
		uc := NewAuthUsecase(users, sessions, nil, log)

		_, _, err := uc.Register(ctx, RegisterInput{Name: "Jane", Email: "not-an-email", Password: "secret123"})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("EmailTaken", func(t *testing.T) {
		users := new(MockUserRepository)
		sessions := new(MockSessionStore)
		uc := NewAuthUsecase(users, sessions, nil, log)

		existing := &domain.User{ID: primitive.NewObjectID(), Email: "jane@example.com", Active: true}
		users.On("FindByEmail", ctx, "jane@example.com").Return(existing, nil).Once()

		_, _, err := uc.Register(ctx, RegisterInput{Name: "Jane", Email: "jane@example.com", Password: "secret123"})

		assert.ErrorIs(t, err, domain.ErrEmailTaken)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	ctx := context.Background()
	log := logger.NewNop()

	t.Run("Success", func(t *testing.T) {
		users := new(MockUserRepository)
		sessions := new(MockSessionStore)
		uc := NewAuthUsecase(users, sessions, nil, log)

		user := &domain.User{
			ID:       primitive.NewObjectID(),
			Name:     "Jane",
			Email:    "jane@example.com",
			Password: mustHash(t, "secret123"),
			Role:     domain.RoleUser,
			Active:   true,
		}
		users.On("FindByEmail", ctx, "jane@example.com").Return(user, nil).Once()
		sessions.On("Create", ctx, mock.AnythingOfType("session.Identity")).Return("token-2", nil).Once()

		got, token, err := uc.Login(ctx, "Jane@Example.com", "secret123")

		assert.NoError(t, err)
		assert.Equal(t, "token-2", token)
		assert.Equal(t, user.ID, got.ID)
		users.AssertExpectations(t)
		sessions.AssertExpectations(t)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		users := new(MockUserRepository)
		sessions := new(MockSessionStore)
		uc := NewAuthUsecase(users, sessions, nil, log)

		users.On("FindByEmail", ctx, "ghost@example.com").Return(nil, domain.ErrNotFound).Once()

		_, _, err := uc.Login(ctx, "ghost@example.com", "whatever1")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		users := new(MockUserRepository)
		sessions := new(MockSessionStore)
		uc := NewAuthUsecase(users, sessions, nil, log)

		user := &domain.User{
			ID:       primitive.NewObjectID(),
			Email:    "jane@example.com",
			Password: mustHash(t, "secret123"),
			Active:   true,
		}
		users.On("FindByEmail", ctx, "jane@example.com").Return(user, nil).Once()

		_, _, err := uc.Login(ctx, "jane@example.com", "wrongpass")

		// Indistinguishable from an unknown email.
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("DeactivatedAccount", func(t *testing.T) {
		users := new(MockUserRepository)
		sessions := new(MockSessionStore)
		uc := NewAuthUsecase(users, sessions, nil, log)

		user := &domain.User{
			ID:       primitive.NewObjectID(),
			Email:    "jane@example.com",
			Password: mustHash(t, "secret123"),
			Active:   false,
		}
		users.On("FindByEmail", ctx, "jane@example.com").Return(user, nil).Once()

		_, _, err := uc.Login(ctx, "jane@example.com", "secret123")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestAuthUsecase_GetUser(t *testing.T) {
	ctx := context.Background()
	log := logger.NewNop()

	targetID := primitive.NewObjectID()

	t.Run("OwnerCanRead", func(t *testing.T) {
		users := new(MockUserRepository)
		uc := NewAuthUsecase(users, new(MockSessionStore), nil, log)

		user := &domain.User{ID: targetID, Email: "jane@example.com", Active: true}
		users.On("FindByID", ctx, targetID).Return(user, nil).Once()

		caller := session.Identity{UserID: targetID.Hex(), Role: domain.RoleUser}
		got, err := uc.GetUser(ctx, caller, targetID.Hex())

		assert.NoError(t, err)
		assert.Equal(t, targetID, got.ID)
	})

	t.Run("StrangerForbiddenBeforeLookup", func(t *testing.T) {
		users := new(MockUserRepository)
		uc := NewAuthUsecase(users, new(MockSessionStore), nil, log)

		caller := session.Identity{UserID: primitive.NewObjectID().Hex(), Role: domain.RoleUser}
		_, err := uc.GetUser(ctx, caller, targetID.Hex())

		assert.ErrorIs(t, err, domain.ErrForbidden)
		users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("AdminCanReadAnyone", func(t *testing.T) {
		users := new(MockUserRepository)
		uc := NewAuthUsecase(users, new(MockSessionStore), nil, log)

		user := &domain.User{ID: targetID, Active: true}
		users.On("FindByID", ctx, targetID).Return(user, nil).Once()

		caller := session.Identity{UserID: primitive.NewObjectID().Hex(), Role: domain.RoleAdmin}
		got, err := uc.GetUser(ctx, caller, targetID.Hex())

		assert.NoError(t, err)
		assert.Equal(t, targetID, got.ID)
	})

	t.Run("DeactivatedReadsAsNotFound", func(t *testing.T) {
		users := new(MockUserRepository)
		uc := NewAuthUsecase(users, new(MockSessionStore), nil, log)

		user := &domain.User{ID: targetID, Active: false}
		users.On("FindByID", ctx, targetID).Return(user, nil).Once()

		caller := session.Identity{UserID: targetID.Hex(), Role: domain.RoleUser}
		_, err := uc.GetUser(ctx, caller, targetID.Hex())

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("BadID", func(t *testing.T) {
		uc := NewAuthUsecase(new(MockUserRepository), new(MockSessionStore), nil, log)

		caller := session.Identity{UserID: "abc", Role: domain.RoleAdmin}
		_, err := uc.GetUser(ctx, caller, "not-a-hex-id")

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestAuthUsecase_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	log := logger.NewNop()

	targetID := primitive.NewObjectID()
	newName := "Jane Updated"

	t.Run("OwnerRenameRefreshesSession", func(t *testing.T) {
		users := new(MockUserRepository)
		sessions := new(MockSessionStore)
		uc := NewAuthUsecase(users, sessions, nil, log)

		updated := &domain.User{ID: targetID, Name: newName, Active: true}
		users.On("Update", ctx, targetID, mock.AnythingOfType("domain.UserPatch")).Return(updated, nil).Once()
		sessions.On("Rename", ctx, "token-3", newName).Return(nil).Once()

		caller := session.Identity{UserID: targetID.Hex(), Role: domain.RoleUser}
		got, err := uc.UpdateProfile(ctx, caller, "token-3", targetID.Hex(), UpdateProfileInput{Name: &newName})

		assert.NoError(t, err)
		assert.Equal(t, newName, got.Name)
		users.AssertExpectations(t)
		sessions.AssertExpectations(t)
	})

	t.Run("StrangerForbidden", func(t *testing.T) {
		users := new(MockUserRepository)
		uc := NewAuthUsecase(users, new(MockSessionStore), nil, log)

		caller := session.Identity{UserID: primitive.NewObjectID().Hex(), Role: domain.RoleUser}
		_, err := uc.UpdateProfile(ctx, caller, "token", targetID.Hex(), UpdateProfileInput{Name: &newName})

		assert.ErrorIs(t, err, domain.ErrForbidden)
		users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("PasswordChangeNeedsCurrentPassword", func(t *testing.T) {
		users := new(MockUserRepository)
		uc := NewAuthUsecase(users, new(MockSessionStore), nil, log)

		caller := session.Identity{UserID: targetID.Hex(), Role: domain.RoleUser}
		_, err := uc.UpdateProfile(ctx, caller, "token", targetID.Hex(), UpdateProfileInput{NewPassword: "newsecret"})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("PasswordChangeWrongCurrentPassword", func(t *testing.T) {
		users := new(MockUserRepository)
		uc := NewAuthUsecase(users, new(MockSessionStore), nil, log)

		user := &domain.User{ID: targetID, Password: mustHash(t, "secret123"), Active: true}
		users.On("FindByID", ctx, targetID).Return(user, nil).Once()

		caller := session.Identity{UserID: targetID.Hex(), Role: domain.RoleUser}
		_, err := uc.UpdateProfile(ctx, caller, "token", targetID.Hex(), UpdateProfileInput{
			CurrentPassword: "wrong",
			NewPassword:     "newsecret",
		})

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("AdminSkipsCurrentPassword", func(t *testing.T) {
		users := new(MockUserRepository)
		sessions := new(MockSessionStore)
		uc := NewAuthUsecase(users, sessions, nil, log)

		updated := &domain.User{ID: targetID, Active: true}
		users.On("Update", ctx, targetID, mock.MatchedBy(func(p domain.UserPatch) bool {
			return p.Password != nil
		})).Return(updated, nil).Once()

		caller := session.Identity{UserID: primitive.NewObjectID().Hex(), Role: domain.RoleAdmin}
		_, err := uc.UpdateProfile(ctx, caller, "token", targetID.Hex(), UpdateProfileInput{NewPassword: "newsecret"})

		assert.NoError(t, err)
		users.AssertExpectations(t)
		users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		sessions.AssertNotCalled(t, "Rename", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthUsecase_Logout(t *testing.T) {
	ctx := context.Background()
	sessions := new(MockSessionStore)
	uc := NewAuthUsecase(new(MockUserRepository), sessions, nil, logger.NewNop())

	sessions.On("Destroy", ctx, "token-4").Return(nil).Twice()

	assert.NoError(t, uc.Logout(ctx, "token-4"))
	assert.NoError(t, uc.Logout(ctx, "token-4"))
	sessions.AssertExpectations(t)
}
