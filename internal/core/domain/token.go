package domain

import "time"

// TokenSubject is the identity embedded in a token before iat/exp are stamped.
type TokenSubject struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}

// TokenPayload is what a verified or decoded token yields. Access and refresh
// tokens share this shape and differ only by lifetime.
type TokenPayload struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}

// Expired reports whether the payload is past its expiry at now.
func (p *TokenPayload) Expired(now time.Time) bool {
	return !p.ExpiresAt.After(now)
}

// TokenPair is returned on login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
