package entity

import (
	"time"
)

// PasswordOTP is the single live reset code for an email address.
// Issuing a new code overwrites the previous one.
type PasswordOTP struct {
	Email     string    `db:"email"`
	Code      string    `db:"otp_code"`
	ExpiresAt time.Time `db:"expires_at"`
	Consumed  bool      `db:"consumed"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
