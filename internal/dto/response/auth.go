package response

import (
	"time"

	"account-service/internal/data/entity"
)

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type VerifyOTPResponse struct {
	ResetToken string    `json:"reset_token"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// UserResponse is the public view of a user. Credential fields are
// never included.
type UserResponse struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	DateOfBirth      string    `json:"date_of_birth"`
	Email            string    `json:"email"`
	ProfileImagePath *string   `json:"profile_image,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:               user.ID,
		Name:             user.Name,
		DateOfBirth:      user.DateOfBirth.Format("2006-01-02"),
		Email:            user.Email,
		ProfileImagePath: user.ProfileImagePath,
		CreatedAt:        user.CreatedAt,
	}
}
