package models

import "time"

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Account captures application-facing fields for a registered identity.
type Account struct {
	ID           string    `json:"_id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Role names the privilege tier of the account.
func (a Account) Role() string {
	if a.IsAdmin {
		return RoleAdmin
	}
	return RoleMember
}
