package api

import "time"

type UserInfo struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password []byte `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password []byte `json:"password"`
}

// AuthResponse is returned by both Register and Login.
type AuthResponse struct {
	User        *UserInfo `json:"user"`
	AccessToken string    `json:"access_token"`
}

type ProfileRequest struct{}

type ProfileResponse struct {
	User *UserInfo `json:"user"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}
