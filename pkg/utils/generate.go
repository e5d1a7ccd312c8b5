package utils

import (
	"crypto/rand"
	"math/big"
	"path/filepath"

	"github.com/google/uuid"
)

// ==================== OTP ====================

// GenerateOTP creates a numeric one-time passcode of the given length.
// Codes guard credential resets, so they come from crypto/rand.
func GenerateOTP(length int) string {
	if length <= 0 {
		length = 6
	}

	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken
			panic(err)
		}
		digits[i] = byte('0' + n.Int64())
	}

	return string(digits)
}

// ==================== UPLOAD FILENAMES ====================

// GenerateUploadName returns a collision-free filename that keeps the
// original extension.
func GenerateUploadName(original string) string {
	return uuid.New().String() + filepath.Ext(original)
}
