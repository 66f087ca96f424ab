package model

import "time"

// AdminRecord mirrors a row of the admins table. The password hash never
// leaves the service layer.
type AdminRecord struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// AuthUser is the public projection of an admin.
type AuthUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Identity is the payload carried inside a signed token.
type Identity struct {
	UserID   int64
	Username string
	Role     string
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}
