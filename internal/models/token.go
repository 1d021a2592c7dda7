package models

import "time"

// Token is a bearer credential binding a random id to a user's email
// until an absolute expiry.
type Token struct {
	ID      string    `json:"id"`
	Email   string    `json:"email"`
	Expires time.Time `json:"expires"`
}

// ExpiredAt reports whether the token is past its expiry at the given
// instant.
func (t Token) ExpiredAt(now time.Time) bool {
	return !t.Expires.After(now)
}
