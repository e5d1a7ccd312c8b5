package repository

import (
	"context"
	"fmt"

	"account-service/internal/data/entity"
	"account-service/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type OTPRepository interface {
	Upsert(ctx context.Context, otp *entity.PasswordOTP) error
	FindByEmail(ctx context.Context, email string) (*entity.PasswordOTP, error)
	MarkConsumed(ctx context.Context, email string) error
}

type otpRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOTPRepository(db database.PgxIface, log *zap.Logger) OTPRepository {
	return &otpRepository{
		db:  db,
		log: log.With(zap.String("repository", "otp")),
	}
}

// Upsert writes the code for an email in a single statement, so concurrent
// issuance cannot create duplicate rows. At most one row per email exists;
// the newest code always wins.
func (r *otpRepository) Upsert(ctx context.Context, otp *entity.PasswordOTP) error {
	query := `
		INSERT INTO password_otps (email, otp_code, expires_at, consumed,
		                           created_at, updated_at)
		VALUES ($1, $2, $3, false, NOW(), NOW())
		ON CONFLICT (email) DO UPDATE
		SET otp_code = EXCLUDED.otp_code,
		    expires_at = EXCLUDED.expires_at,
		    consumed = false,
		    updated_at = NOW()
	`

	_, err := r.db.Exec(ctx, query, otp.Email, otp.Code, otp.ExpiresAt)
	if err != nil {
		r.log.Error("Failed to upsert OTP",
			zap.Error(err),
			zap.String("email", otp.Email),
		)
		return fmt.Errorf("upsert OTP for %s: %w", otp.Email, err)
	}

	return nil
}

func (r *otpRepository) FindByEmail(ctx context.Context, email string) (*entity.PasswordOTP, error) {
	query := `
		SELECT email, otp_code, expires_at, consumed, created_at, updated_at
		FROM password_otps
		WHERE email = $1
	`

	var otp entity.PasswordOTP
	err := r.db.QueryRow(ctx, query, email).Scan(
		&otp.Email,
		&otp.Code,
		&otp.ExpiresAt,
		&otp.Consumed,
		&otp.CreatedAt,
		&otp.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find OTP",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find OTP for %s: %w", email, err)
	}

	return &otp, nil
}

// MarkConsumed burns the code after a successful verification.
func (r *otpRepository) MarkConsumed(ctx context.Context, email string) error {
	query := `
		UPDATE password_otps
		SET consumed = true, updated_at = NOW()
		WHERE email = $1
	`

	result, err := r.db.Exec(ctx, query, email)
	if err != nil {
		r.log.Error("Failed to mark OTP consumed",
			zap.Error(err),
			zap.String("email", email),
		)
		return fmt.Errorf("mark OTP consumed for %s: %w", email, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("OTP for %s not found", email)
	}

	return nil
}
