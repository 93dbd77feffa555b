package dto

import (
	"strings"

	"github.com/hongminglow/recipes-be/internal/models"
)

// RegisterRequest is the body of POST /api/auth/register. Any isAdmin field
// sent by the client is dropped during decoding.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,min=5,max=100,email"`
	Username string `json:"username" validate:"required,alphanum,min=3,max=200"`
	Password string `json:"password" validate:"required,min=3,max=200"`
}

// Normalized returns a copy with whitespace trimmed from email and username.
// The password is kept byte for byte since it is what gets hashed.
func (r RegisterRequest) Normalized() RegisterRequest {
	return RegisterRequest{
		Email:    strings.TrimSpace(r.Email),
		Username: strings.TrimSpace(r.Username),
		Password: r.Password,
	}
}

// ForValidation returns the copy the length rules run against: the password
// is trimmed there only.
func (r RegisterRequest) ForValidation() RegisterRequest {
	r.Password = strings.TrimSpace(r.Password)
	return r
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,min=5,max=100,email"`
	Password string `json:"password" validate:"required,min=3,max=200"`
}

// Normalized trims the email and keeps the password as sent.
func (r LoginRequest) Normalized() LoginRequest {
	return LoginRequest{
		Email:    strings.TrimSpace(r.Email),
		Password: r.Password,
	}
}

// ForValidation returns a copy with the password trimmed for the length rules.
func (r LoginRequest) ForValidation() LoginRequest {
	r.Password = strings.TrimSpace(r.Password)
	return r
}

// AuthResponse flattens the account fields next to the issued token.
type AuthResponse struct {
	models.Account
	Token string `json:"token"`
}
