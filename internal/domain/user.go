package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a registered account. Password holds the bcrypt hash and must never
// reach an outbound representation; handlers serialize View() instead.
type User struct {
	ID        primitive.ObjectID
	Name      string
	Email     string // stored lowercased, unique
	Phone     string
	Password  string // bcrypt hash
	Role      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserView is the outward-facing projection of a User with the password hash
// stripped.
type UserView struct {
	ID        primitive.ObjectID `json:"id"`
	Name      string             `json:"name"`
	Email     string             `json:"email"`
	Phone     string             `json:"phone"`
	Role      string             `json:"role"`
	CreatedAt time.Time          `json:"createdAt"`
}

func (u *User) View() UserView {
	return UserView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// UserPatch carries the mutable profile fields. Nil pointers mean "leave
// unchanged".
type UserPatch struct {
	Name     *string
	Phone    *string
	Password *string // new bcrypt hash
}

// Empty reports whether the patch would change nothing.
func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Phone == nil && p.Password == nil
}
