package models

import "time"

// RevokedToken records a token identifier (jti) invalidated by logout. Rows
// are append-only: they are consulted on every authenticated request and never
// deleted. Growth is bounded in practice by token lifetime.
type RevokedToken struct {
	ID        int64     `json:"id" db:"id"`
	JTI       string    `json:"jti" db:"jti"`
	RevokedAt time.Time `json:"revokedAt" db:"revoked_at"`
}
