package domain

import "time"

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User models a storefront account.
type User struct {
	ID           string    `json:"id"`
	DisplayName  string    `json:"name"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Session returns the read-only view of the user that the storefront keeps.
func (u *User) Session() Session {
	return Session{DisplayName: u.DisplayName, Username: u.Username, Email: u.Email, Role: u.Role}
}

// Session identifies whoever is shopping. The zero value is a guest.
type Session struct {
	DisplayName string `json:"name"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Role        string `json:"role,omitempty"`
}

// IsGuest reports whether nobody is logged in.
func (s Session) IsGuest() bool {
	return s.Username == ""
}

// Greeting is the name shown in the welcome banner.
func (s Session) Greeting() string {
	if s.DisplayName != "" {
		return s.DisplayName
	}
	return s.Username
}
