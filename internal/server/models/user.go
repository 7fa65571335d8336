// Package models holds the persistent entities of the authgate server.
package models

import "time"

// User is the persistent user record. The password hash is opaque to every
// layer above the password package and must never leave the server.
//
// ID is assigned by the repository on insert and immutable afterwards.
// Email and Username are each unique across all records.
type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	FirstName    string
	LastName     string
	CreatedAt    time.Time
}

// Principal is the sanitized projection of a User handed back to callers:
// everything except the password hash.
type Principal struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Principal strips the password hash from a User.
func (u *User) Principal() *Principal {
	return &Principal{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
