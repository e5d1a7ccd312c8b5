package entity

import (
	"time"
)

type User struct {
	ID               int64     `db:"id"`
	Name             string    `db:"name"`
	DateOfBirth      time.Time `db:"date_of_birth"`
	Email            string    `db:"email"`
	PasswordHash     string    `db:"password"`
	ProfileImagePath *string   `db:"profile_image"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}
