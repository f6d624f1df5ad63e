package types

import (
	"time"

	"github.com/google/uuid"
)

// User represents the core identity record.
//
// Username and email are globally unique and stored lowercased. RefreshToken
// mirrors the single currently-valid refresh token for the user: issuing a
// new one replaces it, logout clears it. That column is the server-side
// revocation mechanism the token signature alone cannot provide.
type User struct {
	ID           uuid.UUID  `json:"id"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	Password     string     `json:"-"` // bcrypt hash, never exposed
	Role         Role       `json:"role"`
	Active       bool       `json:"active"`
	RefreshToken *string    `json:"-"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// TouristProfile holds the tourist-specific attributes keyed by the
// owning user's ID. A row appears the first time the tourist saves
// their profile, not at registration.
type TouristProfile struct {
	UserID      uuid.UUID `json:"user_id"`
	Nationality string    `json:"nationality,omitempty"`
	Preferences string    `json:"preferences,omitempty"`
	Interests   []string  `json:"interests"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserProfile is the self-service view returned by /users/me.
type UserProfile struct {
	ID        uuid.UUID  `json:"id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      Role       `json:"role"`
	Active    bool       `json:"active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (u *User) Profile() UserProfile {
	return UserProfile{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		Active:    u.Active,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
	}
}
