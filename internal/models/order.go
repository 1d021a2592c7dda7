package models

import "time"

// Order is the immutable record of a completed checkout. Payment is the
// charged total in cents.
type Order struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Payment   int       `json:"payment"`
	Pizzas    []int     `json:"pizzas"`
	Amounts   []int     `json:"amounts"`
	CreatedAt time.Time `json:"createdAt"`
}
