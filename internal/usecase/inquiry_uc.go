package usecase

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/rajasharmaa/dttt/internal/domain"
	"github.com/rajasharmaa/dttt/internal/mailer"
	"github.com/rajasharmaa/dttt/internal/platform/logger"
)

// InquiryUsecase implements the customer inquiry workflow: public creation,
// per-user listing and the admin queue.
type InquiryUsecase struct {
	repo       domain.InquiryRepository
	events     EventPublisher // optional
	mail       mailer.Mailer  // optional
	notifyAddr string
	logger     *logger.Logger
}

func NewInquiryUsecase(repo domain.InquiryRepository, events EventPublisher, mail mailer.Mailer, notifyAddr string, log *logger.Logger) *InquiryUsecase {
	return &InquiryUsecase{
		repo:       repo,
		events:     events,
		mail:       mail,
		notifyAddr: notifyAddr,
		logger:     log.Named("InquiryUsecase"),
	}
}

type CreateInquiryInput struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
	// SubmitterUserID is the authenticated caller's id, nil for anonymous
	// submissions.
	SubmitterUserID *primitive.ObjectID
}

// Create stores a new inquiry. Duplicates are permitted by design; customers
// may ask twice.
func (uc *InquiryUsecase) Create(ctx context.Context, in CreateInquiryInput) (*domain.Inquiry, error) {
	if in.Name == "" || in.Email == "" || in.Subject == "" || in.Message == "" {
		return nil, fmt.Errorf("%w: name, email, subject and message are required", domain.ErrInvalidInput)
	}

	inquiry := &domain.Inquiry{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Subject: in.Subject,
		Message: in.Message,
		Status:  domain.InquiryStatusNew,
		Read:    false,
		UserID:  in.SubmitterUserID,
	}

	if err := uc.repo.Create(ctx, inquiry); err != nil {
		return nil, err
	}

	if uc.events != nil {
		event := map[string]interface{}{
			"inquiry_id": inquiry.ID.Hex(),
			"email":      inquiry.Email,
			"subject":    inquiry.Subject,
			"status":     inquiry.Status,
			"created_at": inquiry.CreatedAt.Format(time.RFC3339Nano),
		}
		if err := uc.events.Publish(ctx, "inquiry.created", event); err != nil {
			uc.logger.Warn("Failed to publish inquiry.created event", zap.String("inquiry_id", inquiry.ID.Hex()), zap.Error(err))
		}
	}

	if uc.mail != nil && uc.notifyAddr != "" {
		if err := uc.mail.SendInquiryNotification(uc.notifyAddr, inquiry.Name, inquiry.Email, inquiry.Subject, inquiry.Message); err != nil {
			uc.logger.Warn("Failed to send inquiry notification mail", zap.String("inquiry_id", inquiry.ID.Hex()), zap.Error(err))
		}
	}

	uc.logger.Info("Inquiry created", zap.String("inquiry_id", inquiry.ID.Hex()))
	return inquiry, nil
}

// ListForUser returns the caller's own inquiries, newest first. No inquiries
// is an empty list, not an error.
func (uc *InquiryUsecase) ListForUser(ctx context.Context, userID string) ([]*domain.Inquiry, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID format", domain.ErrInvalidInput)
	}
	return uc.repo.FindByUserID(ctx, id)
}

// ListForAdmin returns a page of the inquiry queue, optionally filtered by
// status, newest first.
func (uc *InquiryUsecase) ListForAdmin(ctx context.Context, status *string, page, limit int64) ([]*domain.Inquiry, *Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	} else if limit > maxPageSize {
		limit = maxPageSize
	}

	inquiries, total, err := uc.repo.Find(ctx, domain.InquiryFilter{
		Status: status,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, nil, err
	}

	return inquiries, &Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: (total + limit - 1) / limit,
	}, nil
}

// UpdateStatus applies an admin patch (status and/or read flag) and returns
// the updated inquiry.
func (uc *InquiryUsecase) UpdateStatus(ctx context.Context, inquiryID string, patch domain.InquiryPatch) (*domain.Inquiry, error) {
	id, err := primitive.ObjectIDFromHex(inquiryID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid inquiry ID format", domain.ErrInvalidInput)
	}

	updated, err := uc.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	if uc.events != nil {
		event := map[string]interface{}{
			"inquiry_id": updated.ID.Hex(),
			"status":     updated.Status,
			"read":       updated.Read,
			"updated_at": updated.UpdatedAt.Format(time.RFC3339Nano),
		}
		if err := uc.events.Publish(ctx, "inquiry.updated", event); err != nil {
			uc.logger.Warn("Failed to publish inquiry.updated event", zap.String("inquiry_id", updated.ID.Hex()), zap.Error(err))
		}
	}

	uc.logger.Info("Inquiry updated", zap.String("inquiry_id", updated.ID.Hex()), zap.String("status", updated.Status))
	return updated, nil
}
