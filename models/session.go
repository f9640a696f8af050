package models

import "time"

// Session tracks one issued token. The primary key doubles as the JWT
// jti claim, so logout can revoke a token before it expires.
type Session struct {
	ID        string     `json:"id" gorm:"primaryKey;size:36"`
	UserDNI   string     `json:"user_id" gorm:"index;size:9;not null"`
	ExpiresAt time.Time  `json:"expires_at" gorm:"not null"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Live reports whether the session still authenticates requests.
func (s *Session) Live(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
