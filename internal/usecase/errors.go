package usecase

import (
	"errors"
)

// Service errors mapped to HTTP statuses at the adaptor boundary.
// Anything else surfaces as a generic server error.
var (
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateAccount   = errors.New("account already exists")
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidOTP         = errors.New("invalid or expired OTP")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrMailDelivery       = errors.New("failed to send email")
)
