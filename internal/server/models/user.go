// Package models holds the backend's persistent types.
package models

import "time"

// User is an account known to the authentication backend. The password is
// never stored; Verifier is derived from it with Salt (see cryptox).
type User struct {
	ID        string
	Email     string
	Name      string
	Salt      []byte
	Verifier  []byte
	CreatedAt time.Time
}
