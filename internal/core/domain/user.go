package domain

import "time"

// User models a registered account. PasswordHash holds the bcrypt digest only.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Subject returns the token subject derived from the user.
func (u *User) Subject() TokenSubject {
	return TokenSubject{UserID: u.ID, Email: u.Email, Role: u.Role}
}
