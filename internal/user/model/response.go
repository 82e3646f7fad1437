package model

import (
	"time"

	"github.com/google/uuid"
)

// UserResponse is the default read projection of a user. Password material
// and reset-token fields never appear here.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Photo     *string   `json:"photo,omitempty"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResult pairs a freshly issued bearer token with the user it asserts.
type AuthResult struct {
	Token string
	User  *UserResponse
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Photo:     u.Photo,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
