package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rajasharmaa/dttt/internal/domain"
	"github.com/rajasharmaa/dttt/internal/platform/logger"
)

type MockInquiryRepository struct{ mock.Mock }

func (m *MockInquiryRepository) Create(ctx context.Context, inquiry *domain.Inquiry) error {
	args := m.Called(ctx, inquiry)
	if args.Error(0) == nil {
		inquiry.ID = primitive.NewObjectID()
	}
	return args.Error(0)
}
func (m *MockInquiryRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*domain.Inquiry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Inquiry), args.Error(1)
}
func (m *MockInquiryRepository) Find(ctx context.Context, filter domain.InquiryFilter) ([]*domain.Inquiry, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.Inquiry), args.Get(1).(int64), args.Error(2)
}
func (m *MockInquiryRepository) Update(ctx context.Context, id primitive.ObjectID, patch domain.InquiryPatch) (*domain.Inquiry, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inquiry), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

type MockMailer struct{ mock.Mock }

func (m *MockMailer) SendInquiryNotification(to, fromName, fromEmail, subject, message string) error {
	args := m.Called(to, fromName, fromEmail, subject, message)
	return args.Error(0)
}

func TestInquiryUsecase_Create(t *testing.T) {
	ctx := context.Background()
	log := logger.NewNop()

	input := CreateInquiryInput{
		Name:    "Jane",
		Email:   "jane@example.com",
		Phone:   "12345",
		Subject: "Delivery",
		Message: "When does my order arrive?",
	}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockInquiryRepository)
		uc := NewInquiryUsecase(repo, nil, nil, "", log)

		repo.On("Create", ctx, mock.AnythingOfType("*domain.Inquiry")).Return(nil).Once()

		inquiry, err := uc.Create(ctx, input)

		assert.NoError(t, err)
		assert.Equal(t, domain.InquiryStatusNew, inquiry.Status)
		assert.False(t, inquiry.Read)
		assert.Nil(t, inquiry.UserID)
		repo.AssertExpectations(t)
	})

	t.Run("AuthenticatedSubmitterIsRecorded", func(t *testing.T) {
		repo := new(MockInquiryRepository)
		uc := NewInquiryUsecase(repo, nil, nil, "", log)

		userID := primitive.NewObjectID()
		withUser := input
		withUser.SubmitterUserID = &userID

		repo.On("Create", ctx, mock.AnythingOfType("*domain.Inquiry")).Return(nil).Once()

		inquiry, err := uc.Create(ctx, withUser)

		assert.NoError(t, err)
		assert.NotNil(t, inquiry.UserID)
		assert.Equal(t, userID, *inquiry.UserID)
	})

	t.Run("MissingMessage", func(t *testing.T) {
		repo := new(MockInquiryRepository)
		uc := NewInquiryUsecase(repo, nil, nil, "", log)

		incomplete := input
		incomplete.Message = ""

		_, err := uc.Create(ctx, incomplete)

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("EventAndMailAreBestEffort", func(t *testing.T) {
		repo := new(MockInquiryRepository)
		events := new(MockEventPublisher)
		mail := new(MockMailer)
		uc := NewInquiryUsecase(repo, events, mail, "admin@example.com", log)

		repo.On("Create", ctx, mock.AnythingOfType("*domain.Inquiry")).Return(nil).Once()
		events.On("Publish", ctx, "inquiry.created", mock.Anything).Return(assert.AnError).Once()
		mail.On("SendInquiryNotification", "admin@example.com", input.Name, input.Email, input.Subject, input.Message).Return(assert.AnError).Once()

		inquiry, err := uc.Create(ctx, input)

		assert.NoError(t, err)
		assert.NotNil(t, inquiry)
		events.AssertExpectations(t)
		mail.AssertExpectations(t)
	})
}

func TestInquiryUsecase_ListForUser(t *testing.T) {
	ctx := context.Background()
	log := logger.NewNop()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockInquiryRepository)
		uc := NewInquiryUsecase(repo, nil, nil, "", log)

		userID := primitive.NewObjectID()
		expected := []*domain.Inquiry{{ID: primitive.NewObjectID(), Subject: "Delivery"}}
		repo.On("FindByUserID", ctx, userID).Return(expected, nil).Once()

		got, err := uc.ListForUser(ctx, userID.Hex())

		assert.NoError(t, err)
		assert.Equal(t, expected, got)
	})

	t.Run("BadID", func(t *testing.T) {
		repo := new(MockInquiryRepository)
		uc := NewInquiryUsecase(repo, nil, nil, "", log)

		_, err := uc.ListForUser(ctx, "nope")

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		repo.AssertNotCalled(t, "FindByUserID", mock.Anything, mock.Anything)
	})
}

func TestInquiryUsecase_ListForAdmin(t *testing.T) {
	ctx := context.Background()
	log := logger.NewNop()

	t.Run("ClampsPageAndLimit", func(t *testing.T) {
		repo := new(MockInquiryRepository)
		uc := NewInquiryUsecase(repo, nil, nil, "", log)

		repo.On("Find", ctx, domain.InquiryFilter{Page: 1, Limit: maxPageSize}).
			Return([]*domain.Inquiry{}, int64(0), nil).Once()

		_, pagination, err := uc.ListForAdmin(ctx, nil, -3, 9999)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), pagination.Page)
		assert.Equal(t, int64(maxPageSize), pagination.Limit)
		repo.AssertExpectations(t)
	})

	t.Run("StatusFilterAndPageCount", func(t *testing.T) {
		repo := new(MockInquiryRepository)
		uc := NewInquiryUsecase(repo, nil, nil, "", log)

		status := "new"
		expected := []*domain.Inquiry{{ID: primitive.NewObjectID(), Status: "new"}}
		repo.On("Find", ctx, domain.InquiryFilter{Status: &status, Page: 2, Limit: 10}).
			Return(expected, int64(25), nil).Once()

		got, pagination, err := uc.ListForAdmin(ctx, &status, 2, 10)

		assert.NoError(t, err)
		assert.Equal(t, expected, got)
		assert.Equal(t, int64(25), pagination.Total)
		assert.Equal(t, int64(3), pagination.Pages)
	})
}

func TestInquiryUsecase_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	log := logger.NewNop()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockInquiryRepository)
		events := new(MockEventPublisher)
		uc := NewInquiryUsecase(repo, events, nil, "", log)

		id := primitive.NewObjectID()
		status := "resolved"
		read := true
		updated := &domain.Inquiry{ID: id, Status: status, Read: read}

		repo.On("Update", ctx, id, domain.InquiryPatch{Status: &status, Read: &read}).Return(updated, nil).Once()
		events.On("Publish", ctx, "inquiry.updated", mock.Anything).Return(nil).Once()

		got, err := uc.UpdateStatus(ctx, id.Hex(), domain.InquiryPatch{Status: &status, Read: &read})

		assert.NoError(t, err)
		assert.Equal(t, "resolved", got.Status)
		assert.True(t, got.Read)
		repo.AssertExpectations(t)
		events.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockInquiryRepository)
		uc := NewInquiryUsecase(repo, nil, nil, "", log)

		id := primitive.NewObjectID()
		status := "resolved"
		repo.On("Update", ctx, id, mock.AnythingOfType("domain.InquiryPatch")).Return(nil, domain.ErrNotFound).Once()

		_, err := uc.UpdateStatus(ctx, id.Hex(), domain.InquiryPatch{Status: &status})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("BadID", func(t *testing.T) {
		repo := new(MockInquiryRepository)
		uc := NewInquiryUsecase(repo, nil, nil, "", log)

		_, err := uc.UpdateStatus(ctx, "not-hex", domain.InquiryPatch{})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})
}
