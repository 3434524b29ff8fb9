package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog item. The catalog is read-only from this service's
// perspective; products are maintained by a separate management process.
type Product struct {
	ID          primitive.ObjectID `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Category    string             `json:"category"`
	Image       string             `json:"image"`
	Active      bool               `json:"active"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// ProductFilter narrows a catalog listing. Search matches name or description
// case-insensitively.
type ProductFilter struct {
	Category string
	Search   string
	Page     int64
	Limit    int64
}
