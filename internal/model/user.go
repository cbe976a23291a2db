package model

import "time"

// User represents a registered account.
// Hash is a bcrypt hash; the plaintext password is never stored.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Hash      string    `json:"-"`
	CreatedOn time.Time `json:"created_on"`
}
