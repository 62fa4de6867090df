package domain

import (
	"strings"
	"time"

	"github.com/diagnosis/luxstay/internal/utils"
)

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt"`
}

// Identifier is the owner tag written on bookings: the username, or the email
// when the username is empty.
func (u *User) Identifier() string {
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}

// Matches reports whether identifier names u by username or email, ignoring case.
func (u *User) Matches(identifier string) bool {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return false
	}
	return strings.EqualFold(u.Username, identifier) || strings.EqualFold(u.Email, identifier)
}

// UserInfo is the user without credentials.
type UserInfo struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) Public() UserInfo {
	return UserInfo{ID: u.ID, Username: u.Username, Email: u.Email, CreatedAt: u.CreatedAt}
}

type Session struct {
	User  *User
	Token string
}

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *SignupRequest) Normalize() {
	r.Username = utils.NormalizeString(r.Username)
	r.Email = utils.NormalizeEmail(r.Email)
}

func (r *SignupRequest) Validate() error {
	if r.Username == "" {
		return Invalid("username", "username is required")
	}
	if r.Email == "" {
		return Invalid("email", "email is required")
	}
	if r.Password == "" {
		return Invalid("password", "password is required")
	}
	if !utils.IsValidEmail(r.Email) {
		return Invalid("email", "please enter a valid email address")
	}
	return nil
}

type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Identifier) == "" || r.Password == "" {
		return Invalid("identifier", "please enter your username or email and password")
	}
	return nil
}
