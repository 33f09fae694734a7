package entity

import "time"

// User is the profile the backend keeps for an account
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// SessionClaims are the two claims read from an unverified session token
type SessionClaims struct {
	UserID    int64
	ExpiresAt time.Time
}

// Expired reports whether the claims have lapsed at now
func (c SessionClaims) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}
