package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository interface {
	Create(ctx context.Context, user *User) (primitive.ObjectID, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	Update(ctx context.Context, id primitive.ObjectID, patch UserPatch) (*User, error)
	Deactivate(ctx context.Context, id primitive.ObjectID) error
}

type ProductRepository interface {
	Find(ctx context.Context, filter ProductFilter) ([]*Product, int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*Product, error)
	FindByCategory(ctx context.Context, category string, limit int64) ([]*Product, error)
}

type InquiryRepository interface {
	Create(ctx context.Context, inquiry *Inquiry) error
	FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*Inquiry, error)
	Find(ctx context.Context, filter InquiryFilter) ([]*Inquiry, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, patch InquiryPatch) (*Inquiry, error)
}
