package model

import "github.com/google/uuid"

var (
	// RoleAdmin marks a dashboard administrator
	RoleAdmin = "admin"
)

// User is a dashboard principal. The public site has no accounts;
// the only users are admins bootstrapped from the environment.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username string    `gorm:"type:text;uniqueIndex" json:"username"`
	Password string    `gorm:"type:text" json:"-"`
	Role     string    `gorm:"type:text" json:"role"`
}

// AdminResponse is the login response payload.
type AdminResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}
