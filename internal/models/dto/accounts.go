package dto

import "strings"

// UpdateAccountRequest is the body of PUT /api/users/{id}. All fields are
// required, mirroring the registration rules.
type UpdateAccountRequest struct {
	Email    string `json:"email" validate:"required,min=5,max=100,email"`
	Username string `json:"username" validate:"required,alphanum,min=3,max=200"`
	Password string `json:"password" validate:"required,min=3,max=200"`
}

// Normalized trims email and username; the password is kept as sent.
func (r UpdateAccountRequest) Normalized() UpdateAccountRequest {
	return UpdateAccountRequest{
		Email:    strings.TrimSpace(r.Email),
		Username: strings.TrimSpace(r.Username),
		Password: r.Password,
	}
}

// ForValidation returns a copy with the password trimmed for the length rules.
func (r UpdateAccountRequest) ForValidation() UpdateAccountRequest {
	r.Password = strings.TrimSpace(r.Password)
	return r
}

// MessageResponse is returned by operations that have nothing else to report.
type MessageResponse struct {
	Message string `json:"message"`
}
