package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rajasharmaa/dttt/internal/domain"
)

// Document mirror structs: the domain entities carry no bson tags, so the
// mapping to stored shapes lives here.

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Phone     string             `bson:"phone,omitempty"`
	Password  string             `bson:"password"`
	Role      string             `bson:"role"`
	Active    bool               `bson:"active"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d *userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:        d.ID,
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		Password:  d.Password,
		Role:      d.Role,
		Active:    d.Active,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func fromDomainUser(u *domain.User) *userDocument {
	return &userDocument{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Password:  u.Password,
		Role:      u.Role,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type productDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Category    string             `bson:"category"`
	Image       string             `bson:"image,omitempty"`
	Active      bool               `bson:"active"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d *productDocument) toDomain() *domain.Product {
	return &domain.Product{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Category:    d.Category,
		Image:       d.Image,
		Active:      d.Active,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func toDomainProducts(docs []*productDocument) []*domain.Product {
	products := make([]*domain.Product, 0, len(docs))
	for _, doc := range docs {
		products = append(products, doc.toDomain())
	}
	return products
}

type inquiryDocument struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty"`
	Name      string              `bson:"name"`
	Email     string              `bson:"email"`
	Phone     string              `bson:"phone,omitempty"`
	Subject   string              `bson:"subject"`
	Message   string              `bson:"message"`
	Status    string              `bson:"status"`
	Read      bool                `bson:"read"`
	UserID    *primitive.ObjectID `bson:"user_id,omitempty"`
	CreatedAt time.Time           `bson:"created_at"`
	UpdatedAt time.Time           `bson:"updated_at"`
}

func (d *inquiryDocument) toDomain() *domain.Inquiry {
	return &domain.Inquiry{
		ID:        d.ID,
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		Subject:   d.Subject,
		Message:   d.Message,
		Status:    d.Status,
		Read:      d.Read,
		UserID:    d.UserID,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func fromDomainInquiry(i *domain.Inquiry) *inquiryDocument {
	return &inquiryDocument{
		ID:        i.ID,
		Name:      i.Name,
		Email:     i.Email,
		Phone:     i.Phone,
		Subject:   i.Subject,
		Message:   i.Message,
		Status:    i.Status,
		Read:      i.Read,
		UserID:    i.UserID,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

func toDomainInquiries(docs []*inquiryDocument) []*domain.Inquiry {
	inquiries := make([]*domain.Inquiry, 0, len(docs))
	for _, doc := range docs {
		inquiries = append(inquiries, doc.toDomain())
	}
	return inquiries
}
