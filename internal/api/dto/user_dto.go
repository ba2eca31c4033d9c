package dto

import "time"

// CreateUserRequest payload for account creation.
type CreateUserRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateUserRequest payload for account updates.
type UpdateUserRequest struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Role    string `json:"role"`
}

// ChangePasswordRequest payload for a password change by the caller.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// UserResponse describes an account; the password hash never leaves
// the service layer.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
