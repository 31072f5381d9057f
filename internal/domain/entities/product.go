package entities

import "time"

// Product is the catalog item referenced by a checkout. This service only
// reads products (catalog management lives elsewhere).
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (slug-index): slug
type Product struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
}
