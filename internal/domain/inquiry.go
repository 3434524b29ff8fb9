package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InquiryStatusNew is the status every inquiry starts in. Statuses are an
// open set: admins may assign any follow-on tag (e.g. "in-progress",
// "resolved"), so no closed enumeration is enforced.
const InquiryStatusNew = "new"

// Inquiry is a customer message submitted through the contact form. UserID is
// nil for anonymous submissions. After creation an inquiry is only ever
// mutated by an admin (status, read flag).
type Inquiry struct {
	ID        primitive.ObjectID  `json:"id"`
	Name      string              `json:"name"`
	Email     string              `json:"email"`
	Phone     string              `json:"phone"`
	Subject   string              `json:"subject"`
	Message   string              `json:"message"`
	Status    string              `json:"status"`
	Read      bool                `json:"read"`
	UserID    *primitive.ObjectID `json:"userId"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

// InquiryFilter narrows the admin inquiry queue.
type InquiryFilter struct {
	Status *string
	Page   int64
	Limit  int64
}

// InquiryPatch carries the admin-mutable fields. Nil pointers mean "leave
// unchanged".
type InquiryPatch struct {
	Status *string
	Read   *bool
}
