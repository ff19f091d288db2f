// Package models holds the client-side session types.
package models

import "time"

// User is the signed-in account as remembered on this device. Token is the
// backend access token and is treated as opaque.
type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Token      string    `json:"token"`
	SignedInAt time.Time `json:"signed_in_at"`
}

// SessionState is a snapshot of the auth service state.
type SessionState struct {
	CurrentUser  *User
	Initializing bool
}

// Authenticated reports whether a user is signed in.
func (s SessionState) Authenticated() bool {
	return s.CurrentUser != nil
}
