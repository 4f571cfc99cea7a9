package dto

import "github.com/google/uuid"

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	Language  string    `json:"language"`
}

type UpdateUserRequest struct {
	Name     string `json:"name"`
	Language string `json:"language"`
}
