package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a user in the system
type User struct {
	ID             int64     `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Email          string    `json:"email" db:"email"`
	PasswordHash   string    `json:"-" db:"password"` // '-' means don't send in JSON response
	CompanyName    string    `json:"company_name" db:"company_name"`
	ProfilePicture *string   `json:"profile_picture" db:"profile_picture"`
	Role           string    `json:"role" db:"role"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// Actor identifies who performed a mutation. It is attached to every audit record.
type Actor struct {
	UserID    int64
	IPAddress string
}
