package models

import "time"

// User represents the application user account. Email doubles as the
// record id, so it never changes after signup.
type User struct {
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"hashedPassword,omitempty"`
	StreetAddress  string    `json:"streetAddress"`
	ActiveCart     string    `json:"activeCart,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Public returns a copy safe to hand back to clients.
func (u User) Public() User {
	u.HashedPassword = ""
	return u
}
